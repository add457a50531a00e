// Package windows keeps the on-screen window rectangles for one overlay
// session and answers point queries against them in stacking order.
package windows

import (
	"fmt"

	"github.com/example/snipshot/internal/geom"
)

// Info describes one window. Rect is in monitor-local logical coordinates
// once the window has passed through New; the raw list handed to New uses
// absolute desktop coordinates.
type Info struct {
	ID          string
	Rect        geom.Rect
	ProcessName string
	PID         int
	Title       string
}

// Label returns "name (pid)" when both are known, the name alone when the
// pid is missing and an empty string when the process is unknown.
func (w Info) Label() string {
	switch {
	case w.ProcessName == "":
		return ""
	case w.PID > 0:
		return fmt.Sprintf("%s (%d)", w.ProcessName, w.PID)
	default:
		return w.ProcessName
	}
}

// Registry is an immutable, topmost-first list of windows visible on one
// monitor.
type Registry struct {
	windows []Info
}

// New translates raw (topmost-first, absolute coordinates) into the
// monitor's local space and keeps only the windows that share a positive
// area with it.
func New(raw []Info, monitor geom.Rect) *Registry {
	bounds := geom.R(0, 0, monitor.W, monitor.H)
	kept := make([]Info, 0, len(raw))
	for _, w := range raw {
		w.Rect = w.Rect.Translate(-monitor.X, -monitor.Y)
		if !w.Rect.Overlaps(bounds) {
			continue
		}
		kept = append(kept, w)
	}
	return &Registry{windows: kept}
}

// Len returns the number of retained windows.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.windows)
}

// FindWindowAt returns the topmost window whose rectangle contains p.
func (r *Registry) FindWindowAt(p geom.PanelPoint, s geom.Scales) (Info, bool) {
	if r == nil {
		return Info{}, false
	}
	mp := s.ToMonitor(p)
	for _, w := range r.windows {
		if w.Rect.Contains(mp.X, mp.Y) {
			return w, true
		}
	}
	return Info{}, false
}
