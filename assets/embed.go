package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Embedded SVG icons for snipshot. Monochrome icons use currentColor so
// they can be tinted when rasterised.
//
//go:embed icons/*.svg
var embeddedIcons embed.FS

// AppIconName is the application icon used by the tray and notifications.
const AppIconName = "snipshot"

var (
	loadIconsOnce sync.Once
	loadIconsErr  error
	svgData       = map[string]string{}

	rendered sync.Map // map[iconKey]*image.RGBA
)

type iconKey struct {
	name string
	size int
	col  color.RGBA
}

func loadIcons() {
	entries, err := fs.ReadDir(embeddedIcons, "icons")
	if err != nil {
		loadIconsErr = err
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".svg") {
			continue
		}
		data, err := embeddedIcons.ReadFile(path.Join("icons", name))
		if err != nil {
			loadIconsErr = err
			return
		}
		svgData[strings.TrimSuffix(name, ".svg")] = string(data)
	}
}

func ensureIcons() error {
	loadIconsOnce.Do(loadIcons)
	return loadIconsErr
}

// Names lists the embedded icons.
func Names() []string {
	if err := ensureIcons(); err != nil {
		return nil
	}
	names := make([]string, 0, len(svgData))
	for n := range svgData {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Icon rasterises the named icon into a size×size image, replacing
// currentColor with col. Results are cached and must not be modified.
func Icon(name string, size int, col color.RGBA) (*image.RGBA, error) {
	if err := ensureIcons(); err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("icon %s: invalid size %d", name, size)
	}
	key := iconKey{name: name, size: size, col: col}
	if img, ok := rendered.Load(key); ok {
		return img.(*image.RGBA), nil
	}
	src, ok := svgData[name]
	if !ok {
		return nil, fmt.Errorf("icon %s not embedded", name)
	}
	hex := fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
	icon, err := oksvg.ReadIconStream(strings.NewReader(strings.ReplaceAll(src, "currentColor", hex)))
	if err != nil {
		return nil, fmt.Errorf("parse icon %s: %w", name, err)
	}
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	icon.SetTarget(0, 0, float64(size), float64(size))
	scanner := rasterx.NewScannerGV(size, size, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(size, size, scanner), float64(col.A)/255)
	rendered.Store(key, img)
	return img, nil
}

// IconPNG returns the named icon encoded as PNG.
func IconPNG(name string, size int) ([]byte, error) {
	img, err := Icon(name, size, color.RGBA{255, 255, 255, 255})
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode icon %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
