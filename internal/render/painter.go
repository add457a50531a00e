// Package render paints overlay frames and produces the final annotated
// crop.
package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"

	xdraw "golang.org/x/image/draw"

	"github.com/example/snipshot/internal/fonts"
	"github.com/example/snipshot/internal/geom"
	"github.com/example/snipshot/internal/overlay"
	"github.com/example/snipshot/internal/theme"
)

// Chrome font sizes.
const (
	labelSize  = 12
	badgeSize  = 14
	valueSize  = 12
	familySize = 10
)

// Painter draws overlay frames with a theme.
type Painter struct {
	theme *theme.Theme
}

// NewPainter returns a Painter for th, or the default theme when th is nil.
func NewPainter(th *theme.Theme) *Painter {
	if th == nil {
		th = theme.Default()
	}
	return &Painter{theme: th}
}

// Paint draws one frame of the overlay onto dst, which must start at the
// origin. base is the captured bitmap and is stretched over the panel.
// Paint stops between layers once ctx is done and returns its error; dst
// is then incomplete and should be discarded.
func (p *Painter) Paint(ctx context.Context, dst *image.RGBA, base image.Image, f overlay.Frame) error {
	panel := image.Rect(0, 0, f.Panel.X, f.Panel.Y)
	xdraw.NearestNeighbor.Scale(dst, panel, base, base.Bounds(), draw.Src, nil)

	sel := image.Rectangle{}
	if f.HasSelection {
		sel = selectionPixels(f)
	}
	p.dim(dst, panel, sel)
	if err := ctx.Err(); err != nil {
		return err
	}

	DrawOps(dst, f.Ops)
	if len(f.Stroke) >= 2 {
		drawStroke(dst, f.Stroke, f.Color, float64(f.BrushWidth), identity)
	}
	if f.PendingBox != nil {
		r := f.PendingBox
		fillRect(dst, image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.W), int(r.Y)+int(r.H)), f.Color)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if f.Hover != nil {
		p.hover(dst, f)
	}
	if !sel.Empty() {
		p.selection(dst, f, sel)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if f.Crosshair && f.Cursor != nil {
		p.crosshair(dst, panel, *f.Cursor)
	}
	if f.Magnifier != nil {
		p.magnifier(dst, base, *f.Magnifier)
	}
	p.banner(dst, panel, f.Banner)
	p.toolbar(dst, f)
	return ctx.Err()
}

// selectionPixels converts the selection to whole pixels once, truncating
// both corners, so the dim cut-out and the border agree.
func selectionPixels(f overlay.Frame) image.Rectangle {
	s := f.Selection
	return image.Rect(int(s.X), int(s.Y), int(s.X+s.W), int(s.Y+s.H))
}

func (p *Painter) dim(dst *image.RGBA, panel, sel image.Rectangle) {
	c := p.theme.Dim
	if sel.Empty() {
		fillRect(dst, panel, c)
		return
	}
	fillRect(dst, image.Rect(0, 0, panel.Max.X, sel.Min.Y), c)
	fillRect(dst, image.Rect(0, sel.Max.Y, panel.Max.X, panel.Max.Y), c)
	fillRect(dst, image.Rect(0, sel.Min.Y, sel.Min.X, sel.Max.Y), c)
	fillRect(dst, image.Rect(sel.Max.X, sel.Min.Y, panel.Max.X, sel.Max.Y), c)
}

func (p *Painter) hover(dst *image.RGBA, f overlay.Frame) {
	th := p.theme
	r := f.HoverRect
	box := image.Rect(int(r.X), int(r.Y), int(r.X)+int(r.W), int(r.Y)+int(r.H))
	fillRect(dst, box, th.HoverFill)
	strokeRect(dst, box, th.HoverOutline, 2)

	label := f.Hover.Label()
	if !f.ShowProcessInfo || label == "" {
		return
	}
	face := fonts.Face(fonts.DefaultFamily, labelSize, fonts.Regular)
	m := fonts.MeasureFace(face, label)
	x, y := box.Min.X+5, box.Min.Y+m.Height()
	drawString(dst, face, x, y+1, label, th.HoverTextShadow)
	drawString(dst, face, x, y, label, th.HoverText)
}

func (p *Painter) selection(dst *image.RGBA, f overlay.Frame, sel image.Rectangle) {
	th := p.theme
	if len(f.Ops) > 0 {
		layer := image.NewRGBA(image.Rect(0, 0, sel.Dx(), sel.Dy()))
		drawOps(layer, f.Ops, transform{scales: geom.Identity(), dx: -sel.Min.X, dy: -sel.Min.Y})
		draw.Draw(dst, sel, layer, image.Point{}, draw.Over)
	}
	strokeRect(dst, sel, th.SelectionBorder, 2)

	text := SizeBadge(sel, f)
	face := fonts.Face(fonts.DefaultFamily, badgeSize, fonts.Bold)
	tw := fonts.MeasureFace(face, text).Width
	tx := sel.Min.X + (sel.Dx()-tw)/2
	ty := sel.Max.Y + 20
	fillRoundRect(dst, image.Rect(tx-5, ty-15, tx+tw+5, ty+5), 5, th.BadgeBackground)
	drawString(dst, face, tx, ty, text, th.BadgeText)
}

// SizeBadge is the "W x H" label under a selection, in source pixels.
func SizeBadge(sel image.Rectangle, f overlay.Frame) string {
	sr := f.Scales.ToSourceRect(geom.PanelRect{Rect: geom.FromImage(sel)})
	return fmt.Sprintf("%d x %d", int(sr.W), int(sr.H))
}

func (p *Painter) crosshair(dst *image.RGBA, panel image.Rectangle, c image.Point) {
	st := strokeStyle{width: 1, dash: []float64{5, 5}}
	x := float64(c.X) + 0.5
	y := float64(c.Y) + 0.5
	strokePath(dst, p.theme.Crosshair, st, polyline([][2]float64{{x, 0}, {x, float64(panel.Max.Y)}}))
	strokePath(dst, p.theme.Crosshair, st, polyline([][2]float64{{0, y}, {float64(panel.Max.X), y}}))
}

func (p *Painter) banner(dst *image.RGBA, panel image.Rectangle, text string) {
	if text == "" {
		return
	}
	face := fonts.Face(fonts.DefaultFamily, labelSize, fonts.Regular)
	tw := fonts.MeasureFace(face, text).Width
	x := (panel.Dx() - tw) / 2
	fillRoundRect(dst, image.Rect(x-10, 10, x+tw+10, 35), 10, p.theme.BannerBackground)
	drawString(dst, face, x, 27, text, p.theme.BannerText)
}
