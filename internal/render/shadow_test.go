package render

import (
	"image"
	"image/color"
	"testing"
)

func TestDropShadowExpandsBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	subject := image.Pt(5, 5)
	img.Set(subject.X, subject.Y, color.RGBA{R: 255, A: 255})

	opts := ShadowOptions{Radius: 4, Offset: image.Pt(8, 6), Opacity: 0.5}
	out := DropShadow(img, opts)
	// The source starts at the origin; the shadow extends past it by the
	// offset plus the blur radius on the far side.
	want := image.Rect(0, 0, 22, 20)
	if !out.Bounds().Eq(want) {
		t.Fatalf("unexpected bounds %v, want %v", out.Bounds(), want)
	}
	if p := subject.Add(opts.Offset); out.RGBAAt(p.X, p.Y).A == 0 {
		t.Fatalf("expected shadow alpha at %v", p)
	}
	if got := out.RGBAAt(subject.X, subject.Y); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("subject pixel %+v", got)
	}
}

func TestDropShadowDisabled(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	if out := DropShadow(img, ShadowOptions{Radius: 12, Offset: image.Pt(20, 10)}); out != img {
		t.Fatal("zero opacity should return the input")
	}
	if out := DropShadow(nil, DefaultShadowOptions()); out != nil {
		t.Fatal("nil input should stay nil")
	}
}

func TestDropShadowBlurSpreads(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	opts := ShadowOptions{Radius: 2, Offset: image.Pt(3, 0), Opacity: 1}

	out := DropShadow(img, opts)
	base := opts.Offset
	if out.RGBAAt(base.X, base.Y).A == 0 {
		t.Fatal("expected alpha at base shadow location")
	}
	if out.RGBAAt(base.X+1, base.Y).A == 0 {
		t.Fatal("expected blurred alpha to reach the neighbour")
	}
}

func TestBoxBlurKeepsUniformImage(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 7, 5))
	for i := range g.Pix {
		g.Pix[i] = 90
	}
	out := boxBlur(g, 3)
	for i, v := range out.Pix {
		if v != 90 {
			t.Fatalf("pixel %d = %d", i, v)
		}
	}
}
