package dialog

import (
	"image/color"
	"log"
	"strings"

	"github.com/example/snipshot/internal/theme"
)

// Kdialog prompts with KDE's kdialog.
type Kdialog struct{}

func (Kdialog) Name() string { return "kdialog" }

func (Kdialog) PickColor(current color.RGBA) (color.RGBA, bool) {
	out, ok := ask("kdialog", "--getcolor", "--default", hexColor(current))
	if !ok {
		return current, false
	}
	c, err := theme.ParseColor(strings.TrimSpace(out))
	if err != nil {
		log.Printf("dialog: kdialog colour %q: %v", out, err)
		return current, false
	}
	return c, true
}

func (Kdialog) PickFont(families []string, current string) (string, bool) {
	args := append([]string{"--title", "Choose Font", "--combobox", "Select font:"}, families...)
	args = append(args, "--default", current)
	out, ok := ask("kdialog", args...)
	if !ok || out == "" {
		return current, false
	}
	return out, true
}

func (Kdialog) PromptText(title, initial string) (string, bool) {
	return ask("kdialog", "--title", title, "--inputbox", promptLabel(title), initial)
}
