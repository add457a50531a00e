package dialog

import (
	"image/color"

	"golang.org/x/image/colornames"
)

// PaletteNames are the colours the palette picker cycles through.
var PaletteNames = []string{"red", "orange", "yellow", "limegreen", "deepskyblue", "blue", "magenta", "black", "white"}

// Palette needs no external program: colour and font pickers step to the
// next entry and text prompts are unavailable.
type Palette struct {
	colors []color.RGBA
}

// NewPalette builds a Palette from PaletteNames.
func NewPalette() *Palette {
	p := &Palette{}
	for _, n := range PaletteNames {
		p.colors = append(p.colors, colornames.Map[n])
	}
	return p
}

func (p *Palette) Name() string { return "palette" }

// Colors returns the palette in order.
func (p *Palette) Colors() []color.RGBA {
	return append([]color.RGBA(nil), p.colors...)
}

func (p *Palette) PickColor(current color.RGBA) (color.RGBA, bool) {
	if len(p.colors) == 0 {
		return current, false
	}
	for i, c := range p.colors {
		if c == current {
			return p.colors[(i+1)%len(p.colors)], true
		}
	}
	return p.colors[0], true
}

func (p *Palette) PickFont(families []string, current string) (string, bool) {
	if len(families) == 0 {
		return current, false
	}
	for i, f := range families {
		if f == current {
			return families[(i+1)%len(families)], true
		}
	}
	return families[0], true
}

func (p *Palette) PromptText(string, string) (string, bool) {
	return "", false
}
