package render

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"strconv"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"

	"github.com/example/snipshot/assets"
	"github.com/example/snipshot/internal/fonts"
	"github.com/example/snipshot/internal/geom"
	"github.com/example/snipshot/internal/overlay"
)

const (
	buttonArc  = 5
	toolbarArc = 10
	iconSize   = 14
	iconGap    = 3
)

func (p *Painter) magnifier(dst *image.RGBA, base image.Image, l geom.MagnifierLayout) {
	th := p.theme
	size := l.Dest.Dx()
	if size <= 0 || l.Source.Empty() {
		return
	}
	zoomed := image.NewRGBA(image.Rect(0, 0, size, size))
	xdraw.NearestNeighbor.Scale(zoomed, zoomed.Bounds(), base, l.Source.Add(base.Bounds().Min), draw.Src, nil)
	for _, x := range l.GridX {
		fillRect(zoomed, image.Rect(x-l.Dest.Min.X, 0, x-l.Dest.Min.X+1, size), th.MagnifierGrid)
	}
	for _, y := range l.GridY {
		fillRect(zoomed, image.Rect(0, y-l.Dest.Min.Y, size, y-l.Dest.Min.Y+1), th.MagnifierGrid)
	}

	mask := image.NewAlpha(zoomed.Bounds())
	half := float64(size) / 2
	fillCircle(mask, half, half, half, color.Alpha{A: 255})
	draw.DrawMask(dst, l.Dest, zoomed, image.Point{}, mask, image.Point{}, draw.Over)

	c, arm := l.Center, l.CrossHalf
	fillRect(dst, image.Rect(c.X-arm, c.Y, c.X+arm+1, c.Y+1), th.MagnifierCross)
	fillRect(dst, image.Rect(c.X, c.Y-arm, c.X+1, c.Y+arm+1), th.MagnifierCross)

	cx := float64(l.Dest.Min.X) + half
	cy := float64(l.Dest.Min.Y) + half
	strokeCircle(dst, cx, cy, half, 2, th.MagnifierBorder)
	strokeCircle(dst, cx, cy, half+1, 1, th.MagnifierOuterRing)
}

func (p *Painter) toolbar(dst *image.RGBA, f overlay.Frame) {
	th := p.theme
	tb := f.Toolbar
	if tb.Background.Empty() {
		return
	}
	fillRoundRect(dst, tb.Background, toolbarArc, th.ToolbarBackground)

	label := fonts.Face(fonts.DefaultFamily, labelSize, fonts.Regular)
	for _, c := range tb.Controls {
		r := c.Rect
		switch c.Kind {
		case overlay.ToolButton:
			p.button(dst, r, c.Tool == f.Tool)
			p.toolLabel(dst, r, c.Tool, label)
		case overlay.SizeDown:
			p.button(dst, r, false)
			drawString(dst, label, r.Min.X+8, r.Min.Y+19, "-", th.ButtonText)
		case overlay.SizeUp:
			p.button(dst, r, false)
			drawString(dst, label, r.Min.X+7, r.Min.Y+19, "+", th.ButtonText)
		case overlay.SizeValue:
			v := f.BrushWidth
			if f.Tool == overlay.Text {
				v = f.FontSize
			}
			text := strconv.Itoa(v)
			face := fonts.Face(fonts.DefaultFamily, valueSize, fonts.Bold)
			tw := fonts.MeasureFace(face, text).Width
			drawString(dst, face, r.Min.X+(r.Dx()-tw)/2, r.Min.Y+19, text, th.ButtonText)
		case overlay.ColorButton:
			p.button(dst, r, false)
			sw := overlay.ColorSwatch(r)
			fillRect(dst, sw, f.Color)
			outlineRect(dst, sw, th.SwatchBorder)
		case overlay.FontButton:
			p.button(dst, r, false)
			face := fonts.Face(fonts.DefaultFamily, familySize, fonts.Regular)
			p.centred(dst, r, face, overlay.FontLabel(f.FontFamily), 0)
		}
	}
}

func (p *Painter) button(dst *image.RGBA, r image.Rectangle, selected bool) {
	bg, border := p.theme.ButtonBackground, p.theme.ButtonBorder
	if selected {
		bg, border = p.theme.ButtonBackgroundActive, p.theme.ButtonBorderActive
	}
	fillRoundRect(dst, r, buttonArc, bg)
	strokeRoundRect(dst, r, buttonArc, border)
}

// toolLabel draws the tool icon followed by its name, centred as a group.
func (p *Painter) toolLabel(dst *image.RGBA, r image.Rectangle, t overlay.Tool, face font.Face) {
	name := t.String()
	icon, err := assets.Icon(strings.ToLower(name), iconSize, p.theme.ButtonText)
	if err != nil {
		log.Printf("toolbar icon %s: %v", name, err)
		p.centred(dst, r, face, name, 0)
		return
	}
	p.centred(dst, r, face, name, iconSize+iconGap)
	tw := fonts.MeasureFace(face, name).Width
	x := r.Min.X + (r.Dx()-tw-iconSize-iconGap)/2
	y := r.Min.Y + (r.Dy()-iconSize)/2
	draw.Draw(dst, image.Rect(x, y, x+iconSize, y+iconSize), icon, image.Point{}, draw.Over)
}

// centred draws text vertically centred in r and horizontally centred in
// the part of r right of a lead-in of the given width.
func (p *Painter) centred(dst *image.RGBA, r image.Rectangle, face font.Face, text string, lead int) {
	m := fonts.MeasureFace(face, text)
	x := r.Min.X + (r.Dx()-m.Width-lead)/2 + lead
	y := r.Min.Y + (r.Dy()+m.Ascent-m.Descent)/2
	drawString(dst, face, x, y, text, p.theme.ButtonText)
}
