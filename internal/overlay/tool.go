// Package overlay implements the interactive selection and annotation
// session: tool modes, pointer and keyboard handling, and the toolbar
// hit regions.
package overlay

import (
	"image/color"

	"github.com/example/snipshot/internal/geom"
)

// Tool is the active drawing mode.
type Tool int

const (
	Crop Tool = iota
	Brush
	Text
	Rect
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{Crop, Brush, Text, Rect}

func (t Tool) String() string {
	switch t {
	case Crop:
		return "Crop"
	case Brush:
		return "Brush"
	case Text:
		return "Text"
	case Rect:
		return "Rect"
	}
	return "Unknown"
}

// Key identifies a non-printing key, or KeyRune for a character.
type Key int

const (
	KeyRune Key = iota
	KeyEscape
	KeyEnter
	KeySpace
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// KeyEvent is a single key press.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Shift bool
}

// Outcome is the terminal state of a session.
type Outcome int

const (
	Pending Outcome = iota
	Committed
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Committed:
		return "committed"
	case Cancelled:
		return "cancelled"
	}
	return "pending"
}

// Thresholds are the drag-versus-click cutoffs, in panel pixels.
type Thresholds struct {
	// CropDrag: a crop release larger than this on either axis is a drag.
	CropDrag float64
	// RectMin: a rectangle must be larger than this on both axes.
	RectMin float64
	// TextClick: a text release moved less than this on both axes is a
	// click that opens the editor.
	TextClick float64
}

// DefaultThresholds returns the stock cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{CropDrag: 5, RectMin: 2, TextClick: 5}
}

const (
	MinBrushWidth = 1
	MaxBrushWidth = 20
	MinFontSize   = 12
	MaxFontSize   = 48
	fontSizeStep  = 2
	arrowStep     = 1
	arrowFastStep = 10
)

// Config holds the initial tool settings of a session.
type Config struct {
	Color             color.RGBA
	BrushWidth        int
	FontSize          int
	FontFamily        string
	Magnifier         geom.MagnifierConfig
	MagnifierAllTools bool
	ShowProcessInfo   bool
	Thresholds        Thresholds
}

// DefaultConfig returns red, a 3px brush and 18px text.
func DefaultConfig() Config {
	return Config{
		Color:           color.RGBA{R: 255, A: 255},
		BrushWidth:      3,
		FontSize:        18,
		FontFamily:      "Go",
		Magnifier:       geom.DefaultMagnifier(),
		ShowProcessInfo: true,
		Thresholds:      DefaultThresholds(),
	}
}

// ColorPicker asks the user for a colour. ok is false when cancelled.
type ColorPicker interface {
	PickColor(current color.RGBA) (c color.RGBA, ok bool)
}

// FontPicker asks the user for a font family.
type FontPicker interface {
	PickFont(families []string, current string) (family string, ok bool)
}

// TextPrompt asks the user for a line of text.
type TextPrompt interface {
	PromptText(title, initial string) (text string, ok bool)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
