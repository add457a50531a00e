// Package geom holds the coordinate spaces used by the overlay and the
// conversions between them.
//
// Three spaces exist at the same time: source space (pixels of the captured
// bitmap), monitor space (logical coordinates reported by the window
// manager) and panel space (pixels of the surface being rendered). Each has
// its own point and rectangle type so a value can only change space through
// a Scales method.
package geom

import (
	"image"
	"math"
)

// Rect is a double precision rectangle. It carries no coordinate space on
// its own; use PanelRect, MonitorRect or SourceRect to label it.
type Rect struct {
	X, Y, W, H float64
}

// R is shorthand for Rect{x, y, w, h}.
func R(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Right returns X+W.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns Y+H.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Contains reports whether (x, y) lies inside r. Both edges are inclusive.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.W && y >= r.Y && y <= r.Y+r.H
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Translate moves r by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// Intersect returns the overlapping part of r and o, or the zero Rect when
// they share no area.
func (r Rect) Intersect(o Rect) Rect {
	x0 := math.Max(r.X, o.X)
	y0 := math.Max(r.Y, o.Y)
	x1 := math.Min(r.Right(), o.Right())
	y1 := math.Min(r.Bottom(), o.Bottom())
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Overlaps reports whether r and o share a positive area. Rectangles that
// only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// Image converts r to an integer rectangle by truncating the origin and the
// far corner independently.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.Right()), int(r.Bottom()))
}

// FromImage converts an integer rectangle.
func FromImage(r image.Rectangle) Rect {
	return Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}
}

// PanelPoint is a point on the rendered surface.
type PanelPoint struct{ X, Y float64 }

// MonitorPoint is a point in monitor-local logical coordinates.
type MonitorPoint struct{ X, Y float64 }

// SourcePoint is a point in captured bitmap pixels.
type SourcePoint struct{ X, Y float64 }

// Image truncates p to an integer point.
func (p PanelPoint) Image() image.Point { return image.Pt(int(p.X), int(p.Y)) }

// Sub returns p-q as a plain offset.
func (p PanelPoint) Sub(q PanelPoint) (dx, dy float64) { return p.X - q.X, p.Y - q.Y }

// Add offsets p by (dx, dy).
func (p PanelPoint) Add(dx, dy float64) PanelPoint { return PanelPoint{X: p.X + dx, Y: p.Y + dy} }

// PanelRect is a rectangle on the rendered surface.
type PanelRect struct{ Rect }

// MonitorRect is a rectangle in monitor-local logical coordinates.
type MonitorRect struct{ Rect }

// SourceRect is a rectangle in captured bitmap pixels.
type SourceRect struct{ Rect }

// Contains reports whether p lies inside r, edges included.
func (r PanelRect) Contains(p PanelPoint) bool { return r.Rect.Contains(p.X, p.Y) }

// Contains reports whether p lies inside r, edges included.
func (r MonitorRect) Contains(p MonitorPoint) bool { return r.Rect.Contains(p.X, p.Y) }

// SelectionRectangle returns the normalised box spanned by start and end.
// The zero rectangle is returned when either point is missing.
func SelectionRectangle(start, end *PanelPoint) PanelRect {
	if start == nil || end == nil {
		return PanelRect{}
	}
	x := math.Min(start.X, end.X)
	y := math.Min(start.Y, end.Y)
	return PanelRect{Rect{
		X: x,
		Y: y,
		W: math.Abs(end.X - start.X),
		H: math.Abs(end.Y - start.Y),
	}}
}
