// Package annotate holds the committed drawing operations of an overlay
// session.
package annotate

import (
	"image/color"

	"github.com/example/snipshot/internal/fonts"
	"github.com/example/snipshot/internal/geom"
)

// Operation is one committed annotation. The set of implementations is
// closed: Stroke, FilledRect and Text.
type Operation interface {
	operation()
}

// Stroke is a freehand line through Points, drawn with round caps and
// joins. Fewer than two points render nothing.
type Stroke struct {
	Points []geom.PanelPoint
	Color  color.RGBA
	Width  float64
}

// FilledRect is a solid rectangle.
type FilledRect struct {
	Rect  geom.PanelRect
	Color color.RGBA
}

// Text is a single line of bold text whose baseline starts at Pos.
type Text struct {
	Content string
	Pos     geom.PanelPoint
	Color   color.RGBA
	Size    float64
	Family  string
}

func (Stroke) operation()     {}
func (FilledRect) operation() {}
func (Text) operation()       {}

// Variants returns one zero value of every Operation implementation. Code
// that switches over operations is tested against this list.
func Variants() []Operation {
	return []Operation{Stroke{}, FilledRect{}, Text{}}
}

// Metrics measures t as it is rendered.
func (t Text) Metrics() fonts.Metrics {
	return fonts.Measure(t.Family, t.Size, fonts.Bold, t.Content)
}

// Bounds returns the box covered by t given its metrics: from the ascent
// line above Pos down to the descent below it.
func (t Text) Bounds(m fonts.Metrics) geom.PanelRect {
	return geom.PanelRect{Rect: geom.R(
		t.Pos.X,
		t.Pos.Y-float64(m.Ascent),
		float64(m.Width),
		float64(m.Height()),
	)}
}
