package capture

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/godbus/dbus/v5"

	"github.com/example/snipshot/internal/geom"
)

func TestCropToMonitor(t *testing.T) {
	full := image.NewRGBA(image.Rect(0, 0, 300, 100))
	full.SetRGBA(150, 10, color.RGBA{R: 255, A: 255})

	m := Monitor{Name: "DP-2", Physical: image.Rect(150, 0, 350, 100)}
	got, err := CropToMonitor(full, m)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds() != image.Rect(0, 0, 150, 100) {
		t.Fatalf("bounds %v, want clamped to the screenshot", got.Bounds())
	}
	if got.RGBAAt(0, 10).R != 255 {
		t.Fatal("crop origin does not match the monitor origin")
	}
	got.SetRGBA(0, 10, color.RGBA{})
	if full.RGBAAt(150, 10).R != 255 {
		t.Fatal("crop shares pixels with the screenshot")
	}

	if _, err := CropToMonitor(full, Monitor{Physical: image.Rect(400, 0, 500, 10)}); err == nil {
		t.Fatal("expected an error for a monitor outside the screenshot")
	}
}

func TestParseKScreen(t *testing.T) {
	data := []byte(`{"outputs":[
		{"name":"eDP-1","enabled":true,"pos":{"x":0,"y":0},"size":{"width":2880,"height":1800},"scale":2},
		{"name":"DP-1","enabled":false,"pos":{"x":1440,"y":0},"size":{"width":1920,"height":1080},"scale":1},
		{"name":"DP-2","enabled":true,"pos":{"x":1440,"y":0},"size":{"width":3840,"height":2160},"scale":1.5}
	]}`)

	m, err := parseKScreen(data, "DP-2")
	if err != nil {
		t.Fatal(err)
	}
	if m.Geometry != geom.R(1440, 0, 2560, 1440) {
		t.Errorf("geometry %+v", m.Geometry)
	}
	if m.Physical != image.Rect(2160, 0, 6000, 2160) {
		t.Errorf("physical %v", m.Physical)
	}
	if m.Scale != 1.5 {
		t.Errorf("scale %g", m.Scale)
	}

	if _, err := parseKScreen(data, "DP-1"); err == nil {
		t.Error("disabled output should not match")
	}
	if _, err := parseKScreen([]byte("not json"), "DP-2"); err == nil {
		t.Error("expected a decode error")
	}
}

func TestActiveMonitorFallsBackToX11(t *testing.T) {
	prevName, prevDoctor, prevX11 := activeOutputName, kscreenDoctor, x11ActiveMonitor
	t.Cleanup(func() { activeOutputName, kscreenDoctor, x11ActiveMonitor = prevName, prevDoctor, prevX11 })

	activeOutputName = func(context.Context) (string, error) { return "", errors.New("no kwin") }
	kscreenDoctor = func(context.Context) ([]byte, error) { t.Fatal("kscreen-doctor should not run"); return nil, nil }
	want := monitorFromRect("HDMI-1", image.Rect(0, 0, 1920, 1080))
	x11ActiveMonitor = func() (Monitor, error) { return want, nil }

	got, err := ActiveMonitor(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatalf("monitor %+v", got)
	}

	x11ActiveMonitor = func() (Monitor, error) { return Monitor{}, errors.New("no display") }
	if _, err := ActiveMonitor(context.Background()); !errors.Is(err, ErrNoMonitor) {
		t.Fatalf("err %v, want ErrNoMonitor", err)
	}
}

func TestActiveMonitorUsesKDE(t *testing.T) {
	prevName, prevDoctor := activeOutputName, kscreenDoctor
	t.Cleanup(func() { activeOutputName, kscreenDoctor = prevName, prevDoctor })

	activeOutputName = func(context.Context) (string, error) { return "HDMI-A-1", nil }
	kscreenDoctor = func(context.Context) ([]byte, error) {
		return []byte(`{"outputs":[{"name":"HDMI-A-1","enabled":true,"pos":{"x":0,"y":0},"size":{"width":1920,"height":1080},"scale":1}]}`), nil
	}
	m, err := ActiveMonitor(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if m.Name != "HDMI-A-1" || m.Physical != image.Rect(0, 0, 1920, 1080) {
		t.Fatalf("monitor %+v", m)
	}
}

type fakeSource struct {
	name  string
	img   *image.RGBA
	err   error
	calls int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Screenshot(context.Context) (*image.RGBA, error) {
	f.calls++
	return f.img, f.err
}

func TestChainSourceFirstSuccessWins(t *testing.T) {
	want := image.NewRGBA(image.Rect(0, 0, 1, 1))
	a := &fakeSource{name: "a", err: errors.New("a failed")}
	b := &fakeSource{name: "b", img: want}
	c := &fakeSource{name: "c", err: errors.New("unused")}

	got, err := chainSource{a, b, c}.Screenshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Fatal("unexpected image")
	}
	if a.calls != 1 || b.calls != 1 || c.calls != 0 {
		t.Fatalf("calls a=%d b=%d c=%d", a.calls, b.calls, c.calls)
	}
}

func TestChainSourceWrapsFailures(t *testing.T) {
	aErr := errors.New("a failed")
	_, err := chainSource{&fakeSource{name: "a", err: aErr}, &fakeSource{name: "b", err: errors.New("b failed")}}.Screenshot(context.Background())
	if !errors.Is(err, ErrCaptureFailed) || !errors.Is(err, aErr) {
		t.Fatalf("err %v", err)
	}
}

func TestNewSource(t *testing.T) {
	for _, kind := range []string{"spectacle", "portal", "x11", "auto"} {
		s, err := NewSource(kind)
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		if kind != "auto" && s.Name() != kind {
			t.Errorf("%s: name %q", kind, s.Name())
		}
	}
	if _, err := NewSource("scanner"); err == nil {
		t.Fatal("expected an error for an unknown source")
	}
}

func TestSpectacleSourceReadsOutputFile(t *testing.T) {
	prev := runCommand
	t.Cleanup(func() { runCommand = prev })

	var written string
	runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
		if name != "spectacle" {
			t.Fatalf("ran %s", name)
		}
		out := args[len(args)-1]
		written = out
		var buf bytes.Buffer
		if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
			t.Fatal(err)
		}
		return nil, os.WriteFile(out, buf.Bytes(), 0o600)
	}

	img, err := spectacleSource{}.Screenshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 4, 3) {
		t.Fatalf("bounds %v", img.Bounds())
	}
	if _, err := os.Stat(written); !os.IsNotExist(err) {
		t.Fatalf("temp file left behind: %v", err)
	}
}

func TestSpectacleFailureIsCaptureFailed(t *testing.T) {
	prev := runCommand
	t.Cleanup(func() { runCommand = prev })
	runCommand = func(context.Context, string, ...string) ([]byte, error) { return nil, errors.New("exit status 1") }

	if _, err := (spectacleSource{}).Screenshot(context.Background()); !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("err %v", err)
	}
}

func TestX11SourceCapturesDisplayUnion(t *testing.T) {
	prevN, prevB, prevC := numDisplays, displayBounds, captureRect
	t.Cleanup(func() { numDisplays, displayBounds, captureRect = prevN, prevB, prevC })

	numDisplays = func() int { return 2 }
	displayBounds = func(i int) image.Rectangle {
		if i == 0 {
			return image.Rect(0, 0, 100, 50)
		}
		return image.Rect(100, 0, 180, 60)
	}
	var asked image.Rectangle
	captureRect = func(r image.Rectangle) (*image.RGBA, error) {
		asked = r
		return image.NewRGBA(r), nil
	}

	img, err := x11Source{}.Screenshot(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if asked != image.Rect(0, 0, 180, 60) {
		t.Fatalf("captured %v", asked)
	}
	if img.Bounds().Min != (image.Point{}) {
		t.Fatalf("result not rebased: %v", img.Bounds())
	}

	numDisplays = func() int { return 0 }
	if _, err := (x11Source{}).Screenshot(context.Background()); !errors.Is(err, ErrCaptureFailed) {
		t.Fatalf("err %v", err)
	}
}

func TestPortalScreenshotOptions(t *testing.T) {
	prevToken := portalHandleToken
	portalHandleToken = func() string { return "test-token" }
	t.Cleanup(func() { portalHandleToken = prevToken })

	values := portalScreenshotOptions()
	if v, _ := values["interactive"].Value().(bool); v {
		t.Fatal("screenshot must not be interactive")
	}
	if v, _ := values["handle_token"].Value().(string); v != "test-token" {
		t.Fatalf("handle_token = %q", v)
	}
}

func TestPortalResult(t *testing.T) {
	ok := map[string]dbus.Variant{"uri": dbus.MakeVariant("file:///tmp/Screenshot%20one.png")}
	path, err := portalResult([]interface{}{uint32(0), ok})
	if err != nil {
		t.Fatal(err)
	}
	if path != "/tmp/Screenshot one.png" {
		t.Fatalf("path %q", path)
	}

	tests := []struct {
		name string
		body []interface{}
	}{
		{"cancelled", []interface{}{uint32(1), ok}},
		{"short", []interface{}{uint32(0)}},
		{"no uri", []interface{}{uint32(0), map[string]dbus.Variant{}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := portalResult(tc.body); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestRunningOnWayland(t *testing.T) {
	t.Setenv("XDG_SESSION_TYPE", "wayland")
	t.Setenv("WAYLAND_DISPLAY", "")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when XDG_SESSION_TYPE=wayland")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "wayland-0")
	if !runningOnWayland() {
		t.Fatalf("expected wayland session when WAYLAND_DISPLAY is set")
	}

	t.Setenv("XDG_SESSION_TYPE", "x11")
	t.Setenv("WAYLAND_DISPLAY", "")
	if runningOnWayland() {
		t.Fatalf("did not expect wayland session when indicators are absent")
	}
}

func TestRunningOnKDE(t *testing.T) {
	t.Setenv("KDE_FULL_SESSION", "")
	t.Setenv("XDG_CURRENT_DESKTOP", "ubuntu:GNOME")
	if runningOnKDE() {
		t.Fatal("GNOME reported as KDE")
	}
	t.Setenv("XDG_CURRENT_DESKTOP", "KDE")
	if !runningOnKDE() {
		t.Fatal("KDE not detected")
	}
}
