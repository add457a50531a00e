package dialog

import (
	"fmt"
	"image/color"
	"log"
	"strings"

	"github.com/example/snipshot/internal/theme"
)

// Zenity prompts with GNOME's zenity.
type Zenity struct{}

func (Zenity) Name() string { return "zenity" }

func (Zenity) PickColor(current color.RGBA) (color.RGBA, bool) {
	out, ok := ask("zenity", "--color-selection", "--color="+hexColor(current))
	if !ok {
		return current, false
	}
	c, err := parseZenityColor(out)
	if err != nil {
		log.Printf("dialog: zenity colour %q: %v", out, err)
		return current, false
	}
	return c, true
}

func (Zenity) PickFont(families []string, current string) (string, bool) {
	args := []string{"--list", "--title=Choose Font", "--text=Select font:", "--column=Font"}
	args = append(args, families...)
	out, ok := ask("zenity", args...)
	if !ok || out == "" {
		return current, false
	}
	return out, true
}

func (Zenity) PromptText(title, initial string) (string, bool) {
	return ask("zenity", "--entry", "--title="+title, "--text="+promptLabel(title), "--entry-text="+initial)
}

// parseZenityColor accepts rgb(r,g,b), rgba(r,g,b,a) and #RRGGBB.
func parseZenityColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		return theme.ParseColor(s)
	}
	open, end := strings.IndexByte(s, '('), strings.LastIndexByte(s, ')')
	if open < 0 || end < open {
		return color.RGBA{}, fmt.Errorf("unrecognised colour")
	}
	var r, g, b int
	if _, err := fmt.Sscanf(strings.ReplaceAll(s[open+1:end], " ", ""), "%d,%d,%d", &r, &g, &b); err != nil {
		return color.RGBA{}, err
	}
	for _, v := range []int{r, g, b} {
		if v < 0 || v > 255 {
			return color.RGBA{}, fmt.Errorf("component %d out of range", v)
		}
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}, nil
}
