package overlay

import (
	"image"
	"testing"
)

func TestLayoutToolbarCropMode(t *testing.T) {
	tb := LayoutToolbar(800, Crop)
	if tb.Background != image.Rect(130, 45, 670, 83) {
		t.Fatalf("background %v", tb.Background)
	}
	if len(tb.Controls) != 5 {
		t.Fatalf("controls %+v", tb.Controls)
	}
	for i, tool := range Tools {
		want := image.Rect(140+i*70, 50, 200+i*70, 78)
		if c := tb.Controls[i]; c.Tool != tool || c.Rect != want {
			t.Fatalf("tool button %d = %+v want %v", i, c, want)
		}
	}
	c, ok := tb.Find(ColorButton)
	if !ok || c.Rect != image.Rect(520, 50, 570, 78) {
		t.Fatalf("color button %+v", c)
	}
	if _, ok := tb.Find(FontButton); ok {
		t.Fatalf("font button outside text mode")
	}
}

func TestLayoutToolbarTextMode(t *testing.T) {
	tb := LayoutToolbar(800, Text)
	want := map[ControlKind]image.Rectangle{
		SizeDown:    image.Rect(430, 50, 454, 78),
		SizeValue:   image.Rect(456, 50, 484, 78),
		SizeUp:      image.Rect(484, 50, 508, 78),
		ColorButton: image.Rect(528, 50, 578, 78),
		FontButton:  image.Rect(588, 50, 668, 78),
	}
	for kind, r := range want {
		c, ok := tb.Find(kind)
		if !ok || c.Rect != r {
			t.Errorf("control %d = %+v want %v", kind, c, r)
		}
	}
}

func TestToolbarHitSkipsValueAndGaps(t *testing.T) {
	tb := LayoutToolbar(800, Brush)
	if _, ok := tb.Hit(image.Pt(460, 60)); ok {
		t.Fatalf("size value must not be clickable")
	}
	if _, ok := tb.Hit(image.Pt(205, 60)); ok {
		t.Fatalf("gap between buttons reported a hit")
	}
	if c, ok := tb.Hit(image.Pt(140, 50)); !ok || c.Tool != Crop {
		t.Fatalf("top-left corner of the first button missed")
	}
	if _, ok := tb.Hit(image.Pt(200, 60)); ok {
		t.Fatalf("right edge is exclusive")
	}
}

func TestFontLabel(t *testing.T) {
	if got := FontLabel("Go Smallcaps"); got != "Go Smallc..." {
		t.Fatalf("label %q", got)
	}
	if got := FontLabel("Go Mono"); got != "Go Mono" {
		t.Fatalf("label %q", got)
	}
}
