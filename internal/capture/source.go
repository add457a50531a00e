package capture

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"

	"github.com/kbinani/screenshot"
)

// Source produces a screenshot of the whole desktop.
type Source interface {
	Name() string
	Screenshot(ctx context.Context) (*image.RGBA, error)
}

// NewSource returns the source selected by kind: "spectacle", "portal",
// "x11" or "auto". auto tries each usable source once, in that order.
func NewSource(kind string) (Source, error) {
	switch kind {
	case "spectacle":
		return spectacleSource{}, nil
	case "portal":
		return portalSource{}, nil
	case "x11":
		return x11Source{}, nil
	case "", "auto":
		var chain chainSource
		if runningOnKDE() && hasCommand("spectacle") {
			chain = append(chain, spectacleSource{})
		}
		chain = append(chain, portalSource{}, x11Source{})
		return chain, nil
	}
	return nil, fmt.Errorf("unknown capture source %q", kind)
}

// chainSource returns the first successful screenshot.
type chainSource []Source

func (c chainSource) Name() string { return "auto" }

func (c chainSource) Screenshot(ctx context.Context) (*image.RGBA, error) {
	var errs []error
	for _, s := range c {
		img, err := s.Screenshot(ctx)
		if err == nil {
			return img, nil
		}
		log.Printf("capture: %s: %v", s.Name(), err)
		errs = append(errs, err)
		if ctx.Err() != nil {
			break
		}
	}
	if len(errs) == 0 {
		return nil, fmt.Errorf("%w: no sources", ErrCaptureFailed)
	}
	return nil, fmt.Errorf("%w: %w", ErrCaptureFailed, errors.Join(errs...))
}

// spectacleSource runs KDE's spectacle in background mode.
type spectacleSource struct{}

func (spectacleSource) Name() string { return "spectacle" }

func (spectacleSource) Screenshot(ctx context.Context) (*image.RGBA, error) {
	f, err := os.CreateTemp("", "snipshot-*.png")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCaptureFailed, err)
	}
	path := f.Name()
	f.Close()

	if _, err := runCommand(ctx, "spectacle", "--fullscreen", "--background", "--nonotify", "--output", path); err != nil {
		os.Remove(path)
		return nil, fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}
	img, err := loadPNG(path)
	if err != nil {
		return nil, fmt.Errorf("%w: spectacle output: %w", ErrCaptureFailed, err)
	}
	return img, nil
}

// Display access for x11Source. Tests replace these.
var (
	numDisplays   = screenshot.NumActiveDisplays
	displayBounds = screenshot.GetDisplayBounds
	captureRect   = screenshot.CaptureRect
)

// x11Source grabs the union of all active displays directly from the X
// server.
type x11Source struct{}

func (x11Source) Name() string { return "x11" }

func (x11Source) Screenshot(ctx context.Context) (*image.RGBA, error) {
	n := numDisplays()
	if n == 0 {
		return nil, fmt.Errorf("%w: no active displays", ErrCaptureFailed)
	}
	union := displayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(displayBounds(i))
	}
	img, err := captureRect(union)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}
	return toRGBA(img), nil
}
