package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// All helpers expect dst to start at the origin; rasterx maps path
// coordinates onto dst.Bounds() with (0,0) at its top-left corner.

type pathFunc func(a rasterx.Adder)

func fillPath(dst draw.Image, col color.Color, path pathFunc) {
	b := dst.Bounds()
	f := rasterx.NewFiller(b.Dx(), b.Dy(), rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b))
	f.SetColor(col)
	path(f)
	f.Draw()
}

type strokeStyle struct {
	width float64
	round bool
	dash  []float64
}

func strokePath(dst draw.Image, col color.Color, st strokeStyle, path pathFunc) {
	if st.width <= 0 {
		return
	}
	b := dst.Bounds()
	d := rasterx.NewDasher(b.Dx(), b.Dy(), rasterx.NewScannerGV(b.Dx(), b.Dy(), dst, b))
	w := fixed.Int26_6(st.width * 64)
	if st.round {
		d.SetStroke(w, 4<<6, rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.Round, st.dash, 0)
	} else {
		d.SetStroke(w, 4<<6, rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.Miter, st.dash, 0)
	}
	d.SetColor(col)
	path(d)
	d.Draw()
}

func polyline(pts [][2]float64) pathFunc {
	return func(a rasterx.Adder) {
		a.Start(rasterx.ToFixedP(pts[0][0], pts[0][1]))
		for _, p := range pts[1:] {
			a.Line(rasterx.ToFixedP(p[0], p[1]))
		}
		a.Stop(false)
	}
}

func fillRect(dst draw.Image, r image.Rectangle, col color.Color) {
	draw.Draw(dst, r, image.NewUniform(col), image.Point{}, draw.Over)
}

// outlineRect draws a one pixel frame whose outer edge is r grown by one
// pixel on the right and bottom, matching a hairline drawn through the
// corner coordinates.
func outlineRect(dst draw.Image, r image.Rectangle, col color.Color) {
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X+1, r.Min.Y+1), col)
	fillRect(dst, image.Rect(r.Min.X, r.Max.Y, r.Max.X+1, r.Max.Y+1), col)
	fillRect(dst, image.Rect(r.Min.X, r.Min.Y+1, r.Min.X+1, r.Max.Y), col)
	fillRect(dst, image.Rect(r.Max.X, r.Min.Y+1, r.Max.X+1, r.Max.Y), col)
}

func strokeRect(dst draw.Image, r image.Rectangle, col color.Color, width float64) {
	strokePath(dst, col, strokeStyle{width: width}, func(a rasterx.Adder) {
		rasterx.AddRect(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y), 0, a)
	})
}

// fillRoundRect fills r with corners of the given arc diameter.
func fillRoundRect(dst draw.Image, r image.Rectangle, arc float64, col color.Color) {
	fillPath(dst, col, func(a rasterx.Adder) {
		rasterx.AddRoundRect(float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y), arc/2, arc/2, 0, rasterx.RoundGap, a)
	})
}

func strokeRoundRect(dst draw.Image, r image.Rectangle, arc float64, col color.Color) {
	strokePath(dst, col, strokeStyle{width: 1}, func(a rasterx.Adder) {
		rasterx.AddRoundRect(float64(r.Min.X)+0.5, float64(r.Min.Y)+0.5, float64(r.Max.X)+0.5, float64(r.Max.Y)+0.5, arc/2, arc/2, 0, rasterx.RoundGap, a)
	})
}

func fillCircle(dst draw.Image, cx, cy, radius float64, col color.Color) {
	fillPath(dst, col, func(a rasterx.Adder) { rasterx.AddCircle(cx, cy, radius, a) })
}

func strokeCircle(dst draw.Image, cx, cy, radius, width float64, col color.Color) {
	strokePath(dst, col, strokeStyle{width: width}, func(a rasterx.Adder) { rasterx.AddCircle(cx, cy, radius, a) })
}

// drawString draws text with its baseline starting at (x, y).
func drawString(dst draw.Image, face font.Face, x, y int, text string, col color.Color) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
