package overlay

import "image"

// ControlKind identifies a toolbar control.
type ControlKind int

const (
	ToolButton ControlKind = iota
	SizeDown
	SizeValue
	SizeUp
	ColorButton
	FontButton
)

// Control is one toolbar element and the panel rectangle it occupies.
type Control struct {
	Kind ControlKind
	// Tool is set for ToolButton controls.
	Tool Tool
	Rect image.Rectangle
}

// Clickable reports whether the control reacts to the pointer.
func (c Control) Clickable() bool { return c.Kind != SizeValue }

// Toolbar is the laid out toolbar for one frame.
type Toolbar struct {
	Background image.Rectangle
	Controls   []Control
}

const (
	toolbarY         = 50
	buttonHeight     = 28
	buttonWidth      = 60
	toolbarSpacing   = 10
	sizeButtonWidth  = 24
	sizeValueWidth   = 28
	sizeControlWidth = 80
	colorButtonWidth = 50
	fontButtonWidth  = 80
	toolbarPadding   = 10
	toolbarInset     = 5
)

// ColorSwatch returns the preview square inside a colour button.
func ColorSwatch(button image.Rectangle) image.Rectangle {
	return image.Rect(button.Min.X+5, button.Min.Y+5, button.Min.X+5+buttonHeight-10, button.Min.Y+5+buttonHeight-10)
}

// LayoutToolbar positions the toolbar for a panel of the given width. The
// size control is present for Brush and Text and the font button for Text
// only; the strip keeps the same width either way.
func LayoutToolbar(panelWidth int, tool Tool) Toolbar {
	toolsWidth := len(Tools)*buttonWidth + (len(Tools)-1)*toolbarSpacing
	total := toolsWidth + toolbarSpacing*2 + sizeControlWidth + toolbarSpacing + colorButtonWidth + toolbarSpacing + fontButtonWidth
	startX := panelWidth/2 - total/2

	tb := Toolbar{
		Background: image.Rect(startX-toolbarPadding, toolbarY-toolbarInset, startX-toolbarPadding+total+2*toolbarPadding, toolbarY-toolbarInset+buttonHeight+2*toolbarInset),
	}
	button := func(x, w int) image.Rectangle { return image.Rect(x, toolbarY, x+w, toolbarY+buttonHeight) }

	x := startX
	for _, t := range Tools {
		tb.Controls = append(tb.Controls, Control{Kind: ToolButton, Tool: t, Rect: button(x, buttonWidth)})
		x += buttonWidth + toolbarSpacing
	}

	if tool == Brush || tool == Text {
		x += toolbarSpacing
		tb.Controls = append(tb.Controls, Control{Kind: SizeDown, Rect: button(x, sizeButtonWidth)})
		x += sizeButtonWidth + 2
		tb.Controls = append(tb.Controls, Control{Kind: SizeValue, Rect: button(x, sizeValueWidth)})
		x += sizeValueWidth
		tb.Controls = append(tb.Controls, Control{Kind: SizeUp, Rect: button(x, sizeButtonWidth)})
		x += sizeButtonWidth + toolbarSpacing
	} else {
		x += sizeControlWidth + toolbarSpacing
	}

	x += toolbarSpacing
	tb.Controls = append(tb.Controls, Control{Kind: ColorButton, Rect: button(x, colorButtonWidth)})
	x += colorButtonWidth + toolbarSpacing
	if tool == Text {
		tb.Controls = append(tb.Controls, Control{Kind: FontButton, Rect: button(x, fontButtonWidth)})
	}
	return tb
}

// Hit returns the clickable control under p.
func (tb Toolbar) Hit(p image.Point) (Control, bool) {
	for _, c := range tb.Controls {
		if c.Clickable() && p.In(c.Rect) {
			return c, true
		}
	}
	return Control{}, false
}

// Find returns the first control of the given kind.
func (tb Toolbar) Find(kind ControlKind) (Control, bool) {
	for _, c := range tb.Controls {
		if c.Kind == kind {
			return c, true
		}
	}
	return Control{}, false
}

// FontLabel shortens a family name to fit the font button.
func FontLabel(family string) string {
	r := []rune(family)
	if len(r) > 10 {
		return string(r[:9]) + "..."
	}
	return family
}
