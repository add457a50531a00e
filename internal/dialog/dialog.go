// Package dialog implements the overlay's colour, font and text prompts
// with native desktop dialogs.
package dialog

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"log"
	"os/exec"
	"strings"
)

// ErrUnavailable means the requested dialog program is not installed.
var ErrUnavailable = errors.New("dialog program unavailable")

// Prompter answers every prompt the overlay can raise.
type Prompter interface {
	Name() string
	PickColor(current color.RGBA) (color.RGBA, bool)
	PickFont(families []string, current string) (string, bool)
	PromptText(title, initial string) (string, bool)
}

var lookPath = exec.LookPath

// errCancelled is returned by run when the program exits non-zero, which
// every supported dialog uses for "closed without choosing".
var errCancelled = errors.New("cancelled")

// run executes a dialog program and returns its trimmed output. Tests
// replace it.
var run = func(name string, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return "", errCancelled
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return strings.TrimRight(stdout.String(), "\r\n"), nil
}

// New returns the prompter named by kind: "kdialog", "zenity", "palette"
// or "auto", which picks the first installed program and falls back to the
// palette.
func New(kind string) (Prompter, error) {
	switch kind {
	case "kdialog", "zenity":
		if _, err := lookPath(kind); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, kind)
		}
		if kind == "kdialog" {
			return Kdialog{}, nil
		}
		return Zenity{}, nil
	case "palette":
		return NewPalette(), nil
	case "", "auto":
		for _, k := range []string{"kdialog", "zenity"} {
			if p, err := New(k); err == nil {
				return p, nil
			}
		}
		return NewPalette(), nil
	}
	return nil, fmt.Errorf("unknown dialog %q", kind)
}

// ask runs a prompt and reports cancellation and failures as !ok. Launch
// failures are logged.
func ask(name string, args ...string) (string, bool) {
	out, err := run(name, args...)
	if err != nil {
		if !errors.Is(err, errCancelled) {
			log.Printf("dialog: %v", err)
		}
		return "", false
	}
	return out, true
}

func promptLabel(title string) string {
	if strings.HasPrefix(strings.ToLower(title), "edit") {
		return "Edit text:"
	}
	return "Enter text:"
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
