package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow added around a saved crop.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns the shadow used by the shadow setting.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  18,
		Offset:  image.Pt(10, 10),
		Opacity: 0.5,
	}
}

// DropShadow places img on a transparent canvas large enough to hold a
// blurred copy of its alpha channel shifted by opts.Offset. The canvas
// always starts at the origin. img is returned unchanged when there is
// nothing to draw.
func DropShadow(img *image.RGBA, opts ShadowOptions) *image.RGBA {
	if img == nil || img.Bounds().Empty() || opts.Opacity <= 0 {
		return img
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	spread := src.Inset(-radius)
	shadow := spread.Add(opts.Offset)
	canvas := src.Union(shadow)
	origin := canvas.Min

	alpha := image.NewGray(image.Rect(0, 0, spread.Dx(), spread.Dy()))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			alpha.SetGray(x-spread.Min.X, y-spread.Min.Y, color.Gray{Y: img.RGBAAt(x, y).A})
		}
	}
	alpha = boxBlur(alpha, radius)

	out := image.NewRGBA(canvas.Sub(origin))
	tint := image.NewUniform(color.RGBA{A: uint8(opacity*255 + 0.5)})
	draw.DrawMask(out, shadow.Sub(origin), tint, image.Point{}, alpha, image.Point{}, draw.Over)
	draw.Draw(out, src.Sub(origin), img, src.Min, draw.Over)
	return out
}

// boxBlur runs a horizontal then a vertical box filter of the given
// radius over a zero-origin gray image.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	out := image.NewGray(src.Bounds())
	if radius <= 0 {
		copy(out.Pix, src.Pix)
		return out
	}
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	for y := 0; y < h; y++ {
		blurLine(src.Pix[y*src.Stride:], tmp.Pix[y*tmp.Stride:], w, 1, radius)
	}
	for x := 0; x < w; x++ {
		blurLine(tmp.Pix[x:], out.Pix[x:], h, tmp.Stride, radius)
	}
	return out
}

// blurLine averages n samples spaced stride apart in src over a window of
// radius on each side, shrinking the window at the ends.
func blurLine(src, dst []uint8, n, stride, radius int) {
	prefix := make([]int, n+1)
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + int(src[i*stride])
	}
	for i := 0; i < n; i++ {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		dst[i*stride] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
}
