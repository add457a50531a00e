package geom

import (
	"image"
	"math"
)

// MagnifierConfig sizes the loupe drawn around the keyboard cursor.
type MagnifierConfig struct {
	// Zoom is the number of panel pixels per source pixel.
	Zoom int
	// Offset is the gap between the cursor and the loupe.
	Offset int
	// Size is the loupe diameter in panel pixels.
	Size int
}

// DefaultMagnifier returns the loupe used when nothing is configured.
func DefaultMagnifier() MagnifierConfig {
	return MagnifierConfig{Zoom: 8, Offset: 20, Size: 160}
}

// MagnifierLayout is everything needed to paint the loupe for one frame.
type MagnifierLayout struct {
	// Dest is the square on the panel the loupe occupies.
	Dest image.Rectangle
	// Source is the region of the captured bitmap shown inside Dest.
	Source image.Rectangle
	// Center is the middle of Dest.
	Center image.Point
	// CrossHalf is half the length of each arm of the centre cross.
	CrossHalf int
	// GridX and GridY are panel coordinates of the vertical and
	// horizontal pixel grid lines.
	GridX, GridY []int
}

// LayoutMagnifier places the loupe for a cursor at panel position cursor.
// The loupe sits Offset pixels below and to the right of the cursor, moves
// to the opposite side when it would run off the panel and is finally
// clamped inside the panel. It returns false when cfg or the sizes cannot
// produce a loupe.
func LayoutMagnifier(cursor, panel, source image.Point, s Scales, cfg MagnifierConfig) (MagnifierLayout, bool) {
	if cfg.Zoom <= 0 || cfg.Size <= 0 || source.X <= 0 || source.Y <= 0 {
		return MagnifierLayout{}, false
	}
	size := cfg.Size
	magX := placeLoupe(cursor.X, panel.X, cfg.Offset, size)
	magY := placeLoupe(cursor.Y, panel.Y, cfg.Offset, size)

	sourcePixels := size / cfg.Zoom
	center := s.ToSource(PanelPoint{X: float64(cursor.X), Y: float64(cursor.Y)})
	srcCenterX, srcCenterY := int(center.X), int(center.Y)

	srcLeft := clampInt(srcCenterX-sourcePixels/2, 0, source.X-1)
	srcTop := clampInt(srcCenterY-sourcePixels/2, 0, source.Y-1)
	srcRight := clampInt(srcLeft+sourcePixels, 0, source.X)
	srcBottom := clampInt(srcTop+sourcePixels, 0, source.Y)

	l := MagnifierLayout{
		Dest:      image.Rect(magX, magY, magX+size, magY+size),
		Source:    image.Rect(srcLeft, srcTop, srcRight, srcBottom),
		Center:    image.Pt(magX+size/2, magY+size/2),
		CrossHalf: cfg.Zoom / 2,
	}
	l.GridX = GridLines(magX, size, cfg.Zoom, GridOffset(srcCenterX, srcLeft, sourcePixels, cfg.Zoom))
	l.GridY = GridLines(magY, size, cfg.Zoom, GridOffset(srcCenterY, srcTop, sourcePixels, cfg.Zoom))
	return l, true
}

// GridOffset is how far, in panel pixels, the ideal loupe origin sits from
// the first source pixel actually drawn. It is non-zero when the source
// region was clamped against the bitmap edge or sourcePixels is odd.
func GridOffset(srcCenter, srcStart, sourcePixels, zoom int) float64 {
	return ((float64(srcCenter) - float64(sourcePixels)/2.0) - float64(srcStart)) * float64(zoom)
}

// GridLines returns the grid line coordinates inside [start, start+size).
// The first line sits at start + (zoom - offset mod zoom), truncated, and
// lines repeat every zoom pixels.
func GridLines(start, size, zoom int, offset float64) []int {
	if zoom <= 0 {
		return nil
	}
	var lines []int
	for p := start + int(float64(zoom)-math.Mod(offset, float64(zoom))); p < start+size; p += zoom {
		lines = append(lines, p)
	}
	return lines
}

func placeLoupe(cursor, panel, offset, size int) int {
	pos := cursor + offset
	if pos+size > panel {
		pos = cursor - offset - size
	}
	return clampInt(pos, 0, panel-size)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
