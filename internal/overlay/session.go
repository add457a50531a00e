package overlay

import (
	"image"
	"image/color"
	"log"
	"math"
	"strings"

	"github.com/example/snipshot/internal/annotate"
	"github.com/example/snipshot/internal/fonts"
	"github.com/example/snipshot/internal/geom"
	"github.com/example/snipshot/internal/windows"
)

// Result is what a committed session produces: the crop rectangle in
// panel space, the scales in effect when it was confirmed and the window
// it came from, if any.
type Result struct {
	Rect   geom.PanelRect
	Scales geom.Scales
	Window *windows.Info
}

type textDrag struct {
	index  int
	start  geom.PanelPoint
	origin geom.PanelPoint
}

// Session is the complete state of one overlay. It is owned by a single
// event loop; none of its methods are safe for concurrent use.
type Session struct {
	source  image.Point
	monitor geom.Rect
	panel   image.Point

	windows *windows.Registry
	model   *annotate.Model

	colorPicker ColorPicker
	fontPicker  FontPicker
	textPrompt  TextPrompt

	cfg Config

	tool     Tool
	selStart *geom.PanelPoint
	selEnd   *geom.PanelPoint
	dragging bool
	keyboard bool
	cursor   *geom.PanelPoint
	hovered  *windows.Info

	stroke    []geom.PanelPoint
	rectStart *geom.PanelPoint
	rectEnd   *geom.PanelPoint
	text      *textDrag

	color      color.RGBA
	brushWidth int
	fontSize   int
	family     string

	toolbar Toolbar

	outcome Outcome
	result  Result
}

// Option configures a Session.
type Option func(*Session)

// WithWindows sets the window registry used for hover and click-to-crop.
func WithWindows(r *windows.Registry) Option { return func(s *Session) { s.windows = r } }

// WithModel sets the operation model, replacing the empty default.
func WithModel(m *annotate.Model) Option { return func(s *Session) { s.model = m } }

// WithConfig sets the initial tool settings.
func WithConfig(cfg Config) Option { return func(s *Session) { s.cfg = cfg } }

// WithColorPicker sets the prompt used by the colour button.
func WithColorPicker(p ColorPicker) Option { return func(s *Session) { s.colorPicker = p } }

// WithFontPicker sets the prompt used by the font button.
func WithFontPicker(p FontPicker) Option { return func(s *Session) { s.fontPicker = p } }

// WithTextPrompt sets the prompt used to add and edit text.
func WithTextPrompt(p TextPrompt) Option { return func(s *Session) { s.textPrompt = p } }

// WithPanel sets the initial panel size. It defaults to the monitor size.
func WithPanel(p image.Point) Option { return func(s *Session) { s.panel = p } }

// NewSession starts a session over a bitmap of size source captured from a
// monitor with the given logical geometry.
func NewSession(source image.Point, monitor geom.Rect, opts ...Option) *Session {
	s := &Session{
		source:  source,
		monitor: monitor,
		panel:   image.Pt(int(monitor.W), int(monitor.H)),
		cfg:     DefaultConfig(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.model == nil {
		s.model = annotate.NewModel()
	}
	s.color = s.cfg.Color
	s.brushWidth = clamp(s.cfg.BrushWidth, MinBrushWidth, MaxBrushWidth)
	s.fontSize = clamp(s.cfg.FontSize, MinFontSize, MaxFontSize)
	s.family = s.cfg.FontFamily
	if !fonts.Has(s.family) {
		s.family = fonts.DefaultFamily
	}
	s.layoutToolbar()
	return s
}

// Resize records a new panel size.
func (s *Session) Resize(panel image.Point) {
	s.panel = panel
	s.layoutToolbar()
}

// Scales returns the conversion factors for the current panel size.
func (s *Session) Scales() geom.Scales {
	return geom.NewScales(s.panel, s.source, s.monitor.W, s.monitor.H)
}

func (s *Session) Tool() Tool                { return s.tool }
func (s *Session) Panel() image.Point        { return s.panel }
func (s *Session) Model() *annotate.Model    { return s.model }
func (s *Session) Outcome() Outcome          { return s.outcome }
func (s *Session) Result() Result            { return s.result }
func (s *Session) Color() color.RGBA         { return s.color }
func (s *Session) BrushWidth() int           { return s.brushWidth }
func (s *Session) FontSize() int             { return s.fontSize }
func (s *Session) FontFamily() string        { return s.family }
func (s *Session) Keyboard() bool            { return s.keyboard }
func (s *Session) Dragging() bool            { return s.dragging }
func (s *Session) Toolbar() Toolbar          { return s.toolbar }
func (s *Session) Hovered() *windows.Info    { return s.hovered }
func (s *Session) Stroke() []geom.PanelPoint { return s.stroke }

// Selection returns the current crop rectangle.
func (s *Session) Selection() geom.PanelRect {
	return geom.SelectionRectangle(s.selStart, s.selEnd)
}

// HasSelection reports whether a selection start point exists.
func (s *Session) HasSelection() bool { return s.selStart != nil }

// Cursor returns the last known pointer or keyboard cursor position.
func (s *Session) Cursor() (geom.PanelPoint, bool) {
	if s.cursor == nil {
		return geom.PanelPoint{}, false
	}
	return *s.cursor, true
}

// Done reports whether the session reached a terminal state.
func (s *Session) Done() bool { return s.outcome != Pending }

// SetTool switches the active tool and drops every in-progress buffer.
func (s *Session) SetTool(t Tool) {
	s.tool = t
	s.resetToolState()
	s.layoutToolbar()
}

// PointerDown handles a primary button press at p.
func (s *Session) PointerDown(p geom.PanelPoint) {
	if s.Done() {
		return
	}
	s.keyboard = false
	if c, ok := s.toolbar.Hit(p.Image()); ok {
		s.handleToolbar(c)
		return
	}
	switch s.tool {
	case Crop:
		s.selStart = ptr(p)
		s.selEnd = ptr(p)
		s.dragging = true
	case Brush:
		s.stroke = append(s.stroke[:0], p)
		s.dragging = true
	case Text:
		if i, ok := s.model.HitTestText(p); ok {
			t, _ := s.model.TextAt(i)
			s.text = &textDrag{index: i, start: p, origin: t.Pos}
			s.dragging = true
			return
		}
		s.addText(p)
	case Rect:
		s.rectStart = ptr(p)
		s.rectEnd = ptr(p)
		s.dragging = true
	}
}

// PointerMove handles pointer motion to p.
func (s *Session) PointerMove(p geom.PanelPoint) {
	if s.Done() {
		return
	}
	if !s.dragging {
		s.cursor = ptr(p)
		if s.tool == Crop {
			s.hovered = s.windowAt(p)
		}
		return
	}
	switch s.tool {
	case Crop:
		s.selEnd = ptr(p)
	case Brush:
		s.stroke = append(s.stroke, p)
	case Text:
		if s.text == nil {
			return
		}
		t, ok := s.model.TextAt(s.text.index)
		if !ok {
			return
		}
		dx, dy := p.Sub(s.text.start)
		t.Pos = s.text.origin.Add(dx, dy)
		s.replace(s.text.index, t)
	case Rect:
		s.rectEnd = ptr(p)
	}
}

// PointerUp handles a primary button release at p.
func (s *Session) PointerUp(p geom.PanelPoint) {
	if s.Done() || !s.dragging {
		return
	}
	s.dragging = false
	th := s.cfg.Thresholds
	switch s.tool {
	case Crop:
		s.selEnd = ptr(p)
		r := s.Selection()
		if r.W > th.CropDrag || r.H > th.CropDrag {
			s.commit(r, nil)
			return
		}
		if w := s.windowAt(p); w != nil {
			s.commit(s.Scales().ToPanelRect(geom.MonitorRect{Rect: w.Rect}), w)
			return
		}
		s.selStart, s.selEnd = nil, nil
	case Brush:
		if len(s.stroke) >= 2 {
			pts := make([]geom.PanelPoint, len(s.stroke))
			copy(pts, s.stroke)
			s.model.Commit(annotate.Stroke{Points: pts, Color: s.color, Width: float64(s.brushWidth)})
		}
		s.stroke = nil
	case Text:
		s.releaseText(p)
	case Rect:
		s.rectEnd = ptr(p)
		r := geom.SelectionRectangle(s.rectStart, s.rectEnd)
		if r.W > th.RectMin && r.H > th.RectMin {
			s.model.Commit(annotate.FilledRect{Rect: r, Color: s.color})
		}
		s.rectStart, s.rectEnd = nil, nil
	}
}

func (s *Session) releaseText(p geom.PanelPoint) {
	drag := s.text
	s.text = nil
	if drag == nil {
		return
	}
	dx, dy := p.Sub(drag.start)
	th := s.cfg.Thresholds.TextClick
	if math.Abs(dx) >= th || math.Abs(dy) >= th {
		return
	}
	t, ok := s.model.TextAt(drag.index)
	if !ok {
		return
	}
	t.Pos = drag.origin
	s.replace(drag.index, t)
	if s.textPrompt == nil {
		return
	}
	edited, ok := s.textPrompt.PromptText("Edit Text", t.Content)
	if !ok {
		return
	}
	if strings.TrimSpace(edited) == "" {
		if err := s.model.Remove(drag.index); err != nil {
			log.Printf("remove text: %v", err)
		}
		return
	}
	t.Content = edited
	s.replace(drag.index, t)
}

func (s *Session) addText(p geom.PanelPoint) {
	if s.textPrompt == nil {
		return
	}
	text, ok := s.textPrompt.PromptText("Add Text", "")
	if !ok || strings.TrimSpace(text) == "" {
		return
	}
	s.model.Commit(annotate.Text{
		Content: text,
		Pos:     p,
		Color:   s.color,
		Size:    float64(s.fontSize),
		Family:  s.family,
	})
}

func (s *Session) replace(i int, t annotate.Text) {
	if err := s.model.Replace(i, t); err != nil {
		log.Printf("replace text: %v", err)
	}
}

// KeyDown handles a key press.
func (s *Session) KeyDown(ev KeyEvent) {
	if s.Done() {
		return
	}
	switch ev.Key {
	case KeyEscape:
		if s.selStart != nil || len(s.stroke) > 0 || s.rectStart != nil {
			s.resetToolState()
			return
		}
		s.outcome = Cancelled
	case KeyLeft, KeyRight, KeyUp, KeyDown:
		if s.tool == Crop {
			s.moveCursor(ev.Key, ev.Shift)
		}
	case KeySpace:
		if s.tool == Crop && s.keyboard && s.cursor != nil && s.selStart == nil {
			s.selStart = ptr(*s.cursor)
			s.selEnd = ptr(*s.cursor)
		}
	case KeyEnter:
		s.confirm()
	case KeyRune:
		s.shortcut(ev.Rune)
	}
}

func (s *Session) confirm() {
	if s.tool != Crop {
		return
	}
	th := s.cfg.Thresholds.CropDrag
	if s.selStart != nil && s.selEnd != nil {
		if r := s.Selection(); r.W > th && r.H > th {
			s.commit(r, nil)
		}
		return
	}
	if s.keyboard && s.cursor != nil {
		if w := s.windowAt(*s.cursor); w != nil {
			s.commit(s.Scales().ToPanelRect(geom.MonitorRect{Rect: w.Rect}), w)
		}
	}
}

func (s *Session) shortcut(r rune) {
	switch r {
	case '1', 'c', 'C':
		s.SetTool(Crop)
	case '2', 'b', 'B':
		s.SetTool(Brush)
	case '3', 't', 'T':
		s.SetTool(Text)
	case '4', 'r', 'R':
		s.SetTool(Rect)
	case '[':
		s.adjustSize(-1)
	case ']':
		s.adjustSize(1)
	}
}

func (s *Session) moveCursor(k Key, fast bool) {
	step := float64(arrowStep)
	if fast {
		step = arrowFastStep
	}
	s.keyboard = true
	if s.cursor == nil {
		s.cursor = &geom.PanelPoint{X: float64(s.panel.X / 2), Y: float64(s.panel.Y / 2)}
	}
	c := *s.cursor
	switch k {
	case KeyUp:
		c.Y = math.Max(0, c.Y-step)
	case KeyDown:
		c.Y = math.Min(float64(s.panel.Y-1), c.Y+step)
	case KeyLeft:
		c.X = math.Max(0, c.X-step)
	case KeyRight:
		c.X = math.Min(float64(s.panel.X-1), c.X+step)
	}
	s.cursor = &c
	if s.selStart != nil {
		s.selEnd = ptr(c)
	}
	s.hovered = s.windowAt(c)
}

func (s *Session) handleToolbar(c Control) {
	switch c.Kind {
	case ToolButton:
		s.tool = c.Tool
	case SizeDown:
		s.adjustSize(-1)
	case SizeUp:
		s.adjustSize(1)
	case ColorButton:
		if s.colorPicker != nil {
			if col, ok := s.colorPicker.PickColor(s.color); ok {
				s.color = col
			}
		}
	case FontButton:
		if s.fontPicker != nil {
			if fam, ok := s.fontPicker.PickFont(fonts.Families(), s.family); ok && fonts.Has(fam) {
				s.family = fam
			}
		}
	}
	s.resetToolState()
	s.layoutToolbar()
}

func (s *Session) adjustSize(dir int) {
	switch s.tool {
	case Brush:
		s.brushWidth = clamp(s.brushWidth+dir, MinBrushWidth, MaxBrushWidth)
	case Text:
		s.fontSize = clamp(s.fontSize+dir*fontSizeStep, MinFontSize, MaxFontSize)
	}
}

func (s *Session) resetToolState() {
	s.selStart, s.selEnd = nil, nil
	s.stroke = nil
	s.rectStart, s.rectEnd = nil, nil
	s.text = nil
	s.dragging = false
}

func (s *Session) commit(r geom.PanelRect, w *windows.Info) {
	s.outcome = Committed
	s.result = Result{Rect: r, Scales: s.Scales(), Window: w}
}

func (s *Session) windowAt(p geom.PanelPoint) *windows.Info {
	w, ok := s.windows.FindWindowAt(p, s.Scales())
	if !ok {
		return nil
	}
	return &w
}

func (s *Session) layoutToolbar() {
	s.toolbar = LayoutToolbar(s.panel.X, s.tool)
}

func ptr(p geom.PanelPoint) *geom.PanelPoint { return &p }
