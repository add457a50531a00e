package capture

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/snipshot/internal/geom"
	"github.com/example/snipshot/internal/windows"
)

// Enumerator lists top-level windows, topmost first, in absolute desktop
// coordinates.
type Enumerator interface {
	Name() string
	List(ctx context.Context) ([]windows.Info, error)
}

// NewEnumerator returns the enumerator selected by kind: "kwin", "x11",
// "none" or "auto".
func NewEnumerator(kind string) (Enumerator, error) {
	switch kind {
	case "kwin":
		return kwinEnumerator{}, nil
	case "x11":
		return x11Enumerator{}, nil
	case "none":
		return noEnumerator{}, nil
	case "", "auto":
		if runningOnKDE() {
			return kwinEnumerator{}, nil
		}
		if runningOnWayland() {
			return noEnumerator{}, nil
		}
		return x11Enumerator{}, nil
	}
	return nil, fmt.Errorf("unknown window enumerator %q", kind)
}

// ListWindows runs e and treats any failure as an empty list.
func ListWindows(ctx context.Context, e Enumerator) []windows.Info {
	list, err := e.List(ctx)
	if err != nil {
		log.Printf("capture: %s windows: %v", e.Name(), err)
		return nil
	}
	return list
}

type noEnumerator struct{}

func (noEnumerator) Name() string { return "none" }

func (noEnumerator) List(context.Context) ([]windows.Info, error) { return nil, nil }

// rawWindow is one entry of the KWin stacking report.
type rawWindow struct {
	Caption    string `json:"caption"`
	InternalID string `json:"internalId"`
	Geometry   struct {
		X      float64 `json:"x"`
		Y      float64 `json:"y"`
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	} `json:"geometry"`
	Minimized     bool   `json:"minimized"`
	PID           int    `json:"pid"`
	ResourceClass string `json:"resourceClass"`
	ResourceName  string `json:"resourceName"`
}

// parseKWinReport decodes the bottom-to-top stacking report and returns
// the visible application windows topmost first.
func parseKWinReport(data []byte) ([]windows.Info, error) {
	var raw []rawWindow
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("kwin report: %w", err)
	}
	out := make([]windows.Info, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		w := raw[i]
		if w.Minimized || windows.IsDesktopComponent(w.ResourceName) {
			continue
		}
		out = append(out, windows.Info{
			ID:          w.InternalID,
			Rect:        geom.R(w.Geometry.X, w.Geometry.Y, w.Geometry.Width, w.Geometry.Height),
			ProcessName: w.ResourceName,
			PID:         w.PID,
			Title:       w.Caption,
		})
	}
	return out, nil
}
