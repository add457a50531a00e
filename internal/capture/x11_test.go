//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"image"
	"testing"
)

func TestPickOutput(t *testing.T) {
	outputs := []x11Output{
		{name: "left", rect: image.Rect(0, 0, 1920, 1080)},
		{name: "right", rect: image.Rect(1920, 0, 3840, 1080), primary: true},
	}
	tests := []struct {
		name    string
		pointer *image.Point
		want    string
	}{
		{"under pointer", &image.Point{X: 100, Y: 100}, "left"},
		{"pointer off screen", &image.Point{X: -5, Y: 0}, "right"},
		{"no pointer", nil, "right"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := pickOutput(outputs, tc.pointer)
			if !ok || got.name != tc.want {
				t.Fatalf("got %q %v, want %q", got.name, ok, tc.want)
			}
		})
	}

	if got, _ := pickOutput(outputs[:1], nil); got.name != "left" {
		t.Fatalf("without a primary the first output wins, got %q", got.name)
	}
	if _, ok := pickOutput(nil, nil); ok {
		t.Fatal("expected no output")
	}
}
