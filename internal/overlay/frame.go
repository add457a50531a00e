package overlay

import (
	"image"
	"image/color"

	"github.com/example/snipshot/internal/annotate"
	"github.com/example/snipshot/internal/geom"
	"github.com/example/snipshot/internal/windows"
)

// Frame is an immutable copy of everything the painter needs. Painting a
// Frame never touches the Session it came from.
type Frame struct {
	Panel  image.Point
	Scales geom.Scales
	Tool   Tool

	Ops []annotate.Operation

	// Stroke is the in-progress brush stroke; it is painted only when it
	// has at least two points.
	Stroke     []geom.PanelPoint
	PendingBox *geom.PanelRect

	Selection    geom.PanelRect
	HasSelection bool

	Hover           *windows.Info
	HoverRect       geom.PanelRect
	ShowProcessInfo bool

	Cursor    *image.Point
	Crosshair bool
	Magnifier *geom.MagnifierLayout

	Banner  string
	Toolbar Toolbar

	Color      color.RGBA
	BrushWidth int
	FontSize   int
	FontFamily string
}

// Instruction banner texts.
const (
	BannerKeyboardSelecting = "Arrows to adjust selection (Shift=faster) | Enter to confirm | ESC to cancel"
	BannerKeyboard          = "Arrows to move (Shift=faster) | Space to start selection | Enter on window | ESC to cancel"
	BannerCrop              = "Click+drag to select | Click on window | Arrow keys for precision | ESC to cancel"
	BannerBrush             = "Click+drag to draw | ESC to cancel"
	BannerText              = "Click to add text | ESC to cancel"
	BannerRect              = "Click+drag to draw rectangle | ESC to cancel"
	BannerDefault           = "ESC to cancel"
)

// Banner picks the instruction text: keyboard selection first, then
// keyboard navigation, then the active tool.
func Banner(keyboard, selecting bool, tool Tool) string {
	switch {
	case keyboard && selecting:
		return BannerKeyboardSelecting
	case keyboard:
		return BannerKeyboard
	}
	switch tool {
	case Crop:
		return BannerCrop
	case Brush:
		return BannerBrush
	case Text:
		return BannerText
	case Rect:
		return BannerRect
	}
	return BannerDefault
}

// Frame snapshots the session for painting and records the toolbar layout
// used by the next pointer event.
func (s *Session) Frame() Frame {
	sc := s.Scales()
	s.layoutToolbar()
	f := Frame{
		Panel:           s.panel,
		Scales:          sc,
		Tool:            s.tool,
		Ops:             s.model.Ops(),
		ShowProcessInfo: s.cfg.ShowProcessInfo,
		Banner:          Banner(s.keyboard, s.selStart != nil, s.tool),
		Toolbar:         s.toolbar,
		Color:           s.color,
		BrushWidth:      s.brushWidth,
		FontSize:        s.fontSize,
		FontFamily:      s.family,
	}
	if len(s.stroke) >= 2 {
		f.Stroke = make([]geom.PanelPoint, len(s.stroke))
		copy(f.Stroke, s.stroke)
	}
	if s.tool == Rect && s.rectStart != nil && s.rectEnd != nil {
		r := geom.SelectionRectangle(s.rectStart, s.rectEnd)
		f.PendingBox = &r
	}
	if s.tool == Crop && s.selStart != nil && s.selEnd != nil {
		f.Selection = s.Selection()
		f.HasSelection = true
	}
	if s.hovered != nil && !s.dragging && !s.keyboard && s.tool == Crop {
		h := *s.hovered
		f.Hover = &h
		f.HoverRect = sc.ToPanelRect(geom.MonitorRect{Rect: h.Rect})
	}
	if s.cursor != nil && s.keyboard {
		c := s.cursor.Image()
		f.Cursor = &c
		f.Crosshair = true
		if s.tool == Crop || s.cfg.MagnifierAllTools {
			if l, ok := geom.LayoutMagnifier(c, s.panel, s.source, sc, s.cfg.Magnifier); ok {
				f.Magnifier = &l
			}
		}
	}
	return f
}
