package ui

import (
	"image"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/size"

	"github.com/example/snipshot/internal/geom"
	"github.com/example/snipshot/internal/overlay"
)

// apply feeds one window event to the session and reports whether the
// visible state may have changed.
func apply(s *overlay.Session, e any) bool {
	switch e := e.(type) {
	case mouse.Event:
		return applyMouse(s, e)
	case key.Event:
		ev, ok := translateKey(e)
		if !ok {
			return false
		}
		s.KeyDown(ev)
		return true
	case size.Event:
		if e.WidthPx <= 0 || e.HeightPx <= 0 {
			return false
		}
		s.Resize(image.Pt(e.WidthPx, e.HeightPx))
		return true
	}
	return false
}

func applyMouse(s *overlay.Session, e mouse.Event) bool {
	p := geom.PanelPoint{X: float64(e.X), Y: float64(e.Y)}
	switch {
	case e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft:
		s.PointerDown(p)
	case e.Direction == mouse.DirRelease && e.Button == mouse.ButtonLeft:
		s.PointerUp(p)
	case e.Direction == mouse.DirNone:
		s.PointerMove(p)
	default:
		return false
	}
	return true
}

// translateKey maps a key press onto the session's key model. Releases
// and unmapped keys report false.
func translateKey(e key.Event) (overlay.KeyEvent, bool) {
	if e.Direction == key.DirRelease {
		return overlay.KeyEvent{}, false
	}
	shift := e.Modifiers&key.ModShift != 0
	ev := overlay.KeyEvent{Shift: shift}
	switch e.Code {
	case key.CodeEscape:
		ev.Key = overlay.KeyEscape
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		ev.Key = overlay.KeyEnter
	case key.CodeSpacebar:
		ev.Key = overlay.KeySpace
	case key.CodeLeftArrow:
		ev.Key = overlay.KeyLeft
	case key.CodeRightArrow:
		ev.Key = overlay.KeyRight
	case key.CodeUpArrow:
		ev.Key = overlay.KeyUp
	case key.CodeDownArrow:
		ev.Key = overlay.KeyDown
	default:
		if e.Rune <= 0 || e.Modifiers&(key.ModControl|key.ModAlt|key.ModMeta) != 0 {
			return overlay.KeyEvent{}, false
		}
		ev.Key = overlay.KeyRune
		ev.Rune = e.Rune
	}
	return ev, true
}
