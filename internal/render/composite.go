package render

import (
	"image"
	"image/draw"

	"github.com/example/snipshot/internal/annotate"
	"github.com/example/snipshot/internal/geom"
)

// Composite returns a copy of src with ops painted at source resolution.
// Positions scale by the source factors and stroke widths and font sizes
// by the horizontal factor. src is never modified.
func Composite(src image.Image, ops []annotate.Operation, s geom.Scales) *image.RGBA {
	b := src.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), src, b.Min, draw.Src)
	drawOps(out, ops, transform{scales: s})
	return out
}

// Crop converts a panel rectangle into source pixels and returns an
// independent copy of that region. The origin is clamped into the image
// and the size to at least one pixel, so any rectangle yields a non-empty
// result for a non-empty img.
func Crop(img image.Image, r geom.PanelRect, s geom.Scales) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return image.NewRGBA(image.Rectangle{})
	}
	sr := s.ToSourceRect(r)
	x := clamp(int(sr.X), 0, w-1)
	y := clamp(int(sr.Y), 0, h-1)
	cw := clamp(int(sr.W), 1, w-x)
	ch := clamp(int(sr.H), 1, h-y)

	out := image.NewRGBA(image.Rect(0, 0, cw, ch))
	draw.Draw(out, out.Bounds(), img, b.Min.Add(image.Pt(x, y)), draw.Src)
	return out
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
