package geom

import "image"

// Scales converts between panel space and the two other spaces. A Scales
// value describes exactly one panel size; build a new one with NewScales
// whenever the panel is resized.
type Scales struct {
	// SourceX and SourceY are source pixels per panel pixel.
	SourceX, SourceY float64
	// MonitorX and MonitorY are monitor units per panel pixel.
	MonitorX, MonitorY float64
}

// NewScales derives the conversion factors for a panel of the given pixel
// size showing a bitmap of size source captured from a monitor whose logical
// size is monitor. A zero panel dimension yields identity factors on that
// axis.
func NewScales(panel, source image.Point, monitorW, monitorH float64) Scales {
	s := Scales{SourceX: 1, SourceY: 1, MonitorX: 1, MonitorY: 1}
	if panel.X > 0 {
		s.SourceX = float64(source.X) / float64(panel.X)
		s.MonitorX = monitorW / float64(panel.X)
	}
	if panel.Y > 0 {
		s.SourceY = float64(source.Y) / float64(panel.Y)
		s.MonitorY = monitorH / float64(panel.Y)
	}
	return s
}

// Identity is the scale set for a panel that matches both the source and
// the monitor one to one.
func Identity() Scales {
	return Scales{SourceX: 1, SourceY: 1, MonitorX: 1, MonitorY: 1}
}

// ToMonitor converts a panel point into monitor space.
func (s Scales) ToMonitor(p PanelPoint) MonitorPoint {
	return MonitorPoint{X: p.X * s.MonitorX, Y: p.Y * s.MonitorY}
}

// ToPanel converts a monitor point into panel space.
func (s Scales) ToPanel(p MonitorPoint) PanelPoint {
	return PanelPoint{X: div(p.X, s.MonitorX), Y: div(p.Y, s.MonitorY)}
}

// ToMonitorRect converts a panel rectangle into monitor space.
func (s Scales) ToMonitorRect(r PanelRect) MonitorRect {
	return MonitorRect{Rect{
		X: r.X * s.MonitorX,
		Y: r.Y * s.MonitorY,
		W: r.W * s.MonitorX,
		H: r.H * s.MonitorY,
	}}
}

// ToPanelRect converts a monitor rectangle into panel space.
func (s Scales) ToPanelRect(r MonitorRect) PanelRect {
	return PanelRect{Rect{
		X: div(r.X, s.MonitorX),
		Y: div(r.Y, s.MonitorY),
		W: div(r.W, s.MonitorX),
		H: div(r.H, s.MonitorY),
	}}
}

// ToSource converts a panel point into source space.
func (s Scales) ToSource(p PanelPoint) SourcePoint {
	return SourcePoint{X: p.X * s.SourceX, Y: p.Y * s.SourceY}
}

// ToSourceRect converts a panel rectangle into source space.
func (s Scales) ToSourceRect(r PanelRect) SourceRect {
	return SourceRect{Rect{
		X: r.X * s.SourceX,
		Y: r.Y * s.SourceY,
		W: r.W * s.SourceX,
		H: r.H * s.SourceY,
	}}
}

// SourceLength scales a panel length (stroke width, font size) into source
// pixels. The horizontal factor is used for lengths with no axis.
func (s Scales) SourceLength(l float64) float64 { return l * s.SourceX }

func div(v, by float64) float64 {
	if by == 0 {
		return v
	}
	return v / by
}
