package clipboard

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"
)

func swap(t *testing.T) (wl, nat *[][]byte, lost chan struct{}) {
	t.Helper()
	var wlData, natData [][]byte
	lost = make(chan struct{})
	prevWl, prevNative, prevLook := wlCopy, native, lookPath
	wlCopy = func(_ context.Context, data []byte) error {
		wlData = append(wlData, data)
		return nil
	}
	native = func(data []byte) (<-chan struct{}, error) {
		natData = append(natData, data)
		return lost, nil
	}
	t.Cleanup(func() { wlCopy, native, lookPath = prevWl, prevNative, prevLook })
	return &wlData, &natData, lost
}

func TestWriteImageWithoutDisplay(t *testing.T) {
	swap(t)
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "")
	if _, err := WriteImage(image.NewRGBA(image.Rect(0, 0, 1, 1))); !errors.Is(err, ErrNoDisplay) {
		t.Fatalf("expected ErrNoDisplay, got %v", err)
	}
}

func TestWriteImagePrefersWlCopyOnWayland(t *testing.T) {
	wl, nat, _ := swap(t)
	lookPath = func(string) (string, error) { return "/usr/bin/wl-copy", nil }
	t.Setenv("DISPLAY", "")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")

	lease, err := WriteImage(image.NewRGBA(image.Rect(0, 0, 3, 2)))
	if err != nil {
		t.Fatal(err)
	}
	if lease != nil {
		t.Fatal("wl-copy serves the data itself, no lease expected")
	}
	if len(*wl) != 1 || len(*nat) != 0 {
		t.Fatalf("wl-copy %d native %d", len(*wl), len(*nat))
	}
	img, err := png.Decode(bytes.NewReader((*wl)[0]))
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Fatalf("bounds %v", img.Bounds())
	}
}

func TestWriteImageFallsBackToNative(t *testing.T) {
	wl, nat, lost := swap(t)
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	t.Setenv("DISPLAY", ":0")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")

	lease, err := WriteImage(image.NewRGBA(image.Rect(0, 0, 1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	if len(*wl) != 0 || len(*nat) != 1 {
		t.Fatalf("wl-copy %d native %d", len(*wl), len(*nat))
	}
	if lease == nil {
		t.Fatal("native copy must hand back a lease")
	}

	held := make(chan bool, 1)
	go func() { held <- lease.Hold(context.Background(), time.Minute) }()
	select {
	case <-held:
		t.Fatal("Hold returned while this process still owns the clipboard")
	case <-time.After(20 * time.Millisecond):
	}
	close(lost)
	if !<-held {
		t.Fatal("Hold did not report the handover")
	}
}

func TestWriteImageNativeError(t *testing.T) {
	swap(t)
	native = func([]byte) (<-chan struct{}, error) { return nil, errors.New("no X") }
	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	t.Setenv("DISPLAY", ":0")
	t.Setenv("WAYLAND_DISPLAY", "")
	if lease, err := WriteImage(image.NewRGBA(image.Rect(0, 0, 1, 1))); err == nil || lease != nil {
		t.Fatalf("lease %v err %v", lease, err)
	}
}

func TestLeaseHoldLimits(t *testing.T) {
	if !Lease(nil).Hold(context.Background(), time.Hour) {
		t.Fatal("nil lease should not block")
	}
	open := make(chan struct{})
	if Lease(open).Hold(context.Background(), time.Millisecond) {
		t.Fatal("timed out hold reported a handover")
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if Lease(open).Hold(ctx, time.Hour) {
		t.Fatal("cancelled hold reported a handover")
	}
}
