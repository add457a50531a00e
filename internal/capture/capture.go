// Package capture talks to the desktop: it takes the full-desktop
// screenshot, finds the monitor under the user and lists the windows on it.
package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/example/snipshot/internal/geom"
)

var (
	// ErrNoMonitor means no monitor geometry could be detected.
	ErrNoMonitor = errors.New("could not detect monitor geometry")
	// ErrCaptureFailed wraps every screenshot source failure.
	ErrCaptureFailed = errors.New("screenshot failed")
	// ErrNoWindows means the enumerator is unavailable on this desktop.
	ErrNoWindows = errors.New("window list unavailable")
)

// Monitor is the display the overlay covers.
type Monitor struct {
	Name string
	// Geometry is in logical desktop coordinates.
	Geometry geom.Rect
	// Physical is the monitor's rectangle in screenshot pixels.
	Physical image.Rectangle
	Scale    float64
}

func (m Monitor) String() string {
	return fmt.Sprintf("%s %gx%g+%g+%g scale %g", m.Name, m.Geometry.W, m.Geometry.H, m.Geometry.X, m.Geometry.Y, m.Scale)
}

// CropToMonitor cuts the monitor's physical rectangle out of a
// full-desktop screenshot. The result is an independent zero-origin copy.
func CropToMonitor(full *image.RGBA, m Monitor) (*image.RGBA, error) {
	rect := m.Physical.Intersect(full.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("monitor %s %v outside captured image %v", m.Name, m.Physical, full.Bounds())
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), full, rect.Min, draw.Src)
	return dst, nil
}

// runCommand runs an external program and returns its standard output.
// Tests replace it.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

var lookPath = exec.LookPath

func hasCommand(name string) bool {
	_, err := lookPath(name)
	return err == nil
}

func runningOnWayland() bool {
	if strings.EqualFold(strings.TrimSpace(os.Getenv("XDG_SESSION_TYPE")), "wayland") {
		return true
	}
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

func runningOnKDE() bool {
	for _, d := range strings.Split(os.Getenv("XDG_CURRENT_DESKTOP"), ":") {
		if strings.EqualFold(strings.TrimSpace(d), "KDE") {
			return true
		}
	}
	return os.Getenv("KDE_FULL_SESSION") != ""
}

// loadPNG decodes path into a zero-origin RGBA and removes the file.
func loadPNG(path string) (*image.RGBA, error) {
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "remove %s: %v\n", path, err)
		}
	}()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return decodePNG(data)
}

func decodePNG(data []byte) (*image.RGBA, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode png: %w", err)
	}
	return toRGBA(img), nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
