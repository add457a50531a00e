// Package store writes finished snips to the screenshots folder.
package store

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const timeLayout = "2006-01-02_15-04-05"

// Saver writes PNGs named after the capture time and an optional label.
type Saver struct {
	Dir string
	Now func() time.Time
}

// Save writes img as Dir/<yyyy-MM-dd_HH-mm-ss>[_label].png and returns the
// path. Dir is created when missing. An existing file is never
// overwritten; a counter is appended instead.
func (s Saver) Save(img image.Image, label string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", s.Dir, err)
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	base := now().Format(timeLayout)
	if l := SanitizeLabel(label); l != "" {
		base += "_" + l
	}

	path := filepath.Join(s.Dir, base+".png")
	for i := 2; ; i++ {
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			path = filepath.Join(s.Dir, fmt.Sprintf("%s-%d.png", base, i))
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", path, err)
		}
		if err := png.Encode(f, img); err != nil {
			f.Close()
			os.Remove(path)
			return "", fmt.Errorf("encode %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return "", fmt.Errorf("close %s: %w", path, err)
		}
		return path, nil
	}
}

// SanitizeLabel keeps [A-Za-z0-9._-] and replaces every other rune with
// '_'. Leading dots are dropped so a label cannot hide the file.
func SanitizeLabel(label string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(label) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.TrimLeft(b.String(), ".")
}
