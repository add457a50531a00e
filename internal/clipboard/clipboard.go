// Package clipboard publishes finished snips as PNG images.
package clipboard

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"time"
)

// ErrNoDisplay means there is no graphical session to own the clipboard.
var ErrNoDisplay = errors.New("clipboard requires DISPLAY or WAYLAND_DISPLAY")

const wlCopyTimeout = 5 * time.Second

// Swapped in tests.
var (
	lookPath = exec.LookPath
	wlCopy   = func(ctx context.Context, data []byte) error {
		cmd := exec.CommandContext(ctx, "wl-copy", "--type", "image/png")
		cmd.Stdin = bytes.NewReader(data)
		if out, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("wl-copy: %w: %s", err, bytes.TrimSpace(out))
		}
		return nil
	}
	native = writeNative
)

// Lease is closed once another client takes the clipboard over. A nil
// Lease means the data outlives this process on its own.
type Lease <-chan struct{}

// Hold blocks until the lease ends, ctx is done or limit passes. It
// reports whether the clipboard was handed over before returning.
func (l Lease) Hold(ctx context.Context, limit time.Duration) bool {
	if l == nil {
		return true
	}
	timer := time.NewTimer(limit)
	defer timer.Stop()
	select {
	case <-l:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}

// WriteImage encodes img as PNG and places it on the clipboard. Under
// Wayland it prefers wl-copy, which keeps serving the data after this
// process exits. Otherwise the selection is served from this process
// and the caller must Hold the returned lease before exiting.
func WriteImage(img image.Image) (Lease, error) {
	if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		return nil, ErrNoDisplay
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode clipboard image: %w", err)
	}
	if os.Getenv("WAYLAND_DISPLAY") != "" {
		if _, err := lookPath("wl-copy"); err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), wlCopyTimeout)
			defer cancel()
			return nil, wlCopy(ctx, buf.Bytes())
		}
	}
	lost, err := native(buf.Bytes())
	if err != nil {
		return nil, err
	}
	return Lease(lost), nil
}
