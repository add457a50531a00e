package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/example/snipshot/internal/annotate"
	"github.com/example/snipshot/internal/fonts"
	"github.com/example/snipshot/internal/geom"
)

// transform maps panel coordinates onto a destination image: convert to
// source space first, then shift by a whole pixel offset.
type transform struct {
	scales geom.Scales
	dx, dy int
}

var identity = transform{scales: geom.Identity()}

func (t transform) point(p geom.PanelPoint) [2]float64 {
	sp := t.scales.ToSource(p)
	return [2]float64{sp.X + float64(t.dx), sp.Y + float64(t.dy)}
}

func (t transform) rect(r geom.PanelRect) image.Rectangle {
	sr := t.scales.ToSourceRect(r)
	x := int(sr.X) + t.dx
	y := int(sr.Y) + t.dy
	return image.Rect(x, y, x+int(sr.W), y+int(sr.H))
}

// DrawOps paints ops onto dst in order, so later operations cover earlier
// ones.
func DrawOps(dst draw.Image, ops []annotate.Operation) {
	drawOps(dst, ops, identity)
}

func drawOps(dst draw.Image, ops []annotate.Operation, t transform) {
	for _, op := range ops {
		drawOp(dst, op, t)
	}
}

func drawOp(dst draw.Image, op annotate.Operation, t transform) {
	switch op := op.(type) {
	case annotate.Stroke:
		drawStroke(dst, op.Points, op.Color, t.scales.SourceLength(op.Width), t)
	case annotate.FilledRect:
		fillRect(dst, t.rect(op.Rect), op.Color)
	case annotate.Text:
		size := op.Size
		if scaled := t.scales.SourceLength(op.Size); scaled != op.Size {
			size = float64(int(scaled))
		}
		if size < 1 {
			size = 1
		}
		face := fonts.Face(op.Family, size, fonts.Bold)
		pos := t.point(op.Pos)
		drawString(dst, face, int(pos[0]), int(pos[1]), op.Content, op.Color)
	default:
		panic(fmt.Sprintf("render: unhandled operation %T", op))
	}
}

func drawStroke(dst draw.Image, points []geom.PanelPoint, col color.Color, width float64, t transform) {
	if len(points) < 2 {
		return
	}
	pts := make([][2]float64, len(points))
	for i, p := range points {
		pts[i] = t.point(p)
	}
	strokePath(dst, col, strokeStyle{width: width, round: true}, polyline(pts))
}
