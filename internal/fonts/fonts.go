// Package fonts provides the font families available for text annotations
// and overlay chrome, with a process-wide face cache.
package fonts

import (
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/opentype"
)

// DefaultFamily is used when a requested family is unknown.
const DefaultFamily = "Go"

// Style selects the weight of a face.
type Style int

const (
	Regular Style = iota
	Bold
)

type family struct {
	name    string
	regular []byte
	bold    []byte
}

var families = []family{
	{DefaultFamily, goregular.TTF, gobold.TTF},
	{"Go Medium", gomedium.TTF, gobold.TTF},
	{"Go Italic", goitalic.TTF, gobolditalic.TTF},
	{"Go Mono", gomono.TTF, gomonobold.TTF},
	{"Go Smallcaps", gosmallcaps.TTF, gosmallcaps.TTF},
}

type faceKey struct {
	family string
	size   float64
	style  Style
}

var (
	parsed    sync.Map // []byte address -> *opentype.Font
	faceCache sync.Map // faceKey -> font.Face
)

// Families lists the available family names.
func Families() []string {
	out := make([]string, len(families))
	for i, f := range families {
		out[i] = f.name
	}
	return out
}

// Has reports whether name is an available family.
func Has(name string) bool {
	_, ok := lookup(name)
	return ok
}

func lookup(name string) (family, bool) {
	for _, f := range families {
		if f.name == name {
			return f, true
		}
	}
	return families[0], false
}

// Face returns a cached face for the family at the given pixel size.
// Unknown families resolve to DefaultFamily.
func Face(name string, size float64, style Style) font.Face {
	fam, _ := lookup(name)
	key := faceKey{family: fam.name, size: size, style: style}
	if f, ok := faceCache.Load(key); ok {
		return f.(font.Face)
	}
	data := fam.regular
	if style == Bold {
		data = fam.bold
	}
	face, err := newFace(data, size)
	if err != nil {
		log.Printf("font face %s %.0f: %v", fam.name, size, err)
		return basicfont.Face7x13
	}
	actual, _ := faceCache.LoadOrStore(key, face)
	return actual.(font.Face)
}

func newFace(data []byte, size float64) (font.Face, error) {
	var f *opentype.Font
	if v, ok := parsed.Load(&data[0]); ok {
		f = v.(*opentype.Font)
	} else {
		var err error
		f, err = opentype.Parse(data)
		if err != nil {
			return nil, err
		}
		parsed.Store(&data[0], f)
	}
	return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
}

// Metrics is the pixel extent of a rendered string.
type Metrics struct {
	Width   int
	Ascent  int
	Descent int
}

// Height returns Ascent+Descent.
func (m Metrics) Height() int { return m.Ascent + m.Descent }

// Measure returns the extent of text drawn with the given face.
func Measure(name string, size float64, style Style, text string) Metrics {
	return MeasureFace(Face(name, size, style), text)
}

// MeasureFace returns the extent of text drawn with face.
func MeasureFace(face font.Face, text string) Metrics {
	d := &font.Drawer{Face: face}
	m := face.Metrics()
	return Metrics{
		Width:   d.MeasureString(text).Ceil(),
		Ascent:  m.Ascent.Ceil(),
		Descent: m.Descent.Ceil(),
	}
}
