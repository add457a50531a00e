package assets

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"
)

func TestNamesIncludeToolIcons(t *testing.T) {
	have := map[string]bool{}
	for _, n := range Names() {
		have[n] = true
	}
	for _, want := range []string{"crop", "brush", "text", "rect", AppIconName} {
		if !have[want] {
			t.Errorf("icon %q not embedded (have %v)", want, Names())
		}
	}
}

func TestIconIsTinted(t *testing.T) {
	red := color.RGBA{255, 0, 0, 255}
	img, err := Icon("rect", 24, red)
	if err != nil {
		t.Fatalf("Icon: %v", err)
	}
	if got := img.RGBAAt(12, 12); got.R < 200 || got.G > 20 || got.A < 200 {
		t.Fatalf("centre pixel %+v, want opaque red", got)
	}
	if got := img.RGBAAt(0, 0); got.A != 0 {
		t.Fatalf("corner pixel %+v, want transparent", got)
	}
	again, _ := Icon("rect", 24, red)
	if again != img {
		t.Fatal("expected cached image")
	}
}

func TestIconErrors(t *testing.T) {
	if _, err := Icon("nope", 16, color.RGBA{A: 255}); err == nil {
		t.Fatal("expected error for unknown icon")
	}
	if _, err := Icon("crop", 0, color.RGBA{A: 255}); err == nil {
		t.Fatal("expected error for zero size")
	}
}

func TestIconPNGDecodes(t *testing.T) {
	data, err := IconPNG(AppIconName, 32)
	if err != nil {
		t.Fatalf("IconPNG: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 32 || b.Dy() != 32 {
		t.Fatalf("bounds %v", b)
	}
}
