package theme

import (
	"image/color"
)

// Theme defines the colours used to paint the capture overlay.
type Theme struct {
	Name string

	// Everything outside the selection.
	Dim color.RGBA

	// Window under the pointer
	HoverFill       color.RGBA
	HoverOutline    color.RGBA
	HoverText       color.RGBA
	HoverTextShadow color.RGBA

	SelectionBorder color.RGBA
	BadgeBackground color.RGBA
	BadgeText       color.RGBA

	Crosshair color.RGBA

	// Magnifier
	MagnifierGrid      color.RGBA
	MagnifierCross     color.RGBA
	MagnifierBorder    color.RGBA
	MagnifierOuterRing color.RGBA

	BannerBackground color.RGBA
	BannerText       color.RGBA

	// Toolbar
	ToolbarBackground      color.RGBA
	ButtonBackground       color.RGBA
	ButtonBackgroundActive color.RGBA
	ButtonBorder           color.RGBA
	ButtonBorderActive     color.RGBA
	ButtonText             color.RGBA
	SwatchBorder           color.RGBA
}

// Default returns the built-in overlay colours.
func Default() *Theme {
	return &Theme{
		Name:                   "Default",
		Dim:                    color.RGBA{0, 0, 0, 100},
		HoverFill:              color.RGBA{100, 150, 255, 80},
		HoverOutline:           color.RGBA{100, 150, 255, 255},
		HoverText:              color.RGBA{255, 255, 255, 255},
		HoverTextShadow:        color.RGBA{0, 0, 0, 100},
		SelectionBorder:        color.RGBA{255, 255, 255, 255},
		BadgeBackground:        color.RGBA{0, 0, 0, 180},
		BadgeText:              color.RGBA{255, 255, 255, 255},
		Crosshair:              color.RGBA{255, 255, 255, 200},
		MagnifierGrid:          color.RGBA{128, 128, 128, 100},
		MagnifierCross:         color.RGBA{255, 0, 0, 255},
		MagnifierBorder:        color.RGBA{255, 255, 255, 255},
		MagnifierOuterRing:     color.RGBA{0, 0, 0, 150},
		BannerBackground:       color.RGBA{0, 0, 0, 200},
		BannerText:             color.RGBA{255, 255, 255, 255},
		ToolbarBackground:      color.RGBA{0, 0, 0, 180},
		ButtonBackground:       color.RGBA{60, 60, 60, 255},
		ButtonBackgroundActive: color.RGBA{100, 150, 255, 255},
		ButtonBorder:           color.RGBA{100, 100, 100, 255},
		ButtonBorderActive:     color.RGBA{150, 200, 255, 255},
		ButtonText:             color.RGBA{255, 255, 255, 255},
		SwatchBorder:           color.RGBA{255, 255, 255, 255},
	}
}

// Clone returns an independent copy of t.
func (t *Theme) Clone() *Theme {
	c := *t
	return &c
}
