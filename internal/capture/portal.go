package capture

import (
	"context"
	"fmt"
	"image"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"
)

const (
	portalDest     = "org.freedesktop.portal.Desktop"
	portalPath     = dbus.ObjectPath("/org/freedesktop/portal/desktop")
	portalRequest  = "org.freedesktop.portal.Request"
	portalResponse = portalRequest + ".Response"
)

var portalHandleToken = func() string {
	return fmt.Sprintf("snipshot%d", time.Now().UnixNano())
}

// portalSource asks xdg-desktop-portal for a non-interactive screenshot.
type portalSource struct{}

func (portalSource) Name() string { return "portal" }

func (portalSource) Screenshot(ctx context.Context) (*image.RGBA, error) {
	img, err := portalScreenshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	}
	return img, nil
}

func portalScreenshot(ctx context.Context) (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "dbus close: %v\n", cerr)
		}
	}()

	// Subscribe before the call so a fast response cannot be missed.
	match := []dbus.MatchOption{
		dbus.WithMatchInterface(portalRequest),
		dbus.WithMatchMember("Response"),
	}
	if err := conn.AddMatchSignal(match...); err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	defer conn.RemoveMatchSignal(match...)
	sigc := make(chan *dbus.Signal, 4)
	conn.Signal(sigc)
	defer conn.RemoveSignal(sigc)

	var handle dbus.ObjectPath
	obj := conn.Object(portalDest, portalPath)
	call := obj.CallWithContext(ctx, "org.freedesktop.portal.Screenshot.Screenshot", 0, "", portalScreenshotOptions())
	if call.Err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot response: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case sig, ok := <-sigc:
			if !ok {
				return nil, fmt.Errorf("portal screenshot: connection closed")
			}
			if sig.Path != handle || sig.Name != portalResponse {
				continue
			}
			path, err := portalResult(sig.Body)
			if err != nil {
				return nil, err
			}
			img, err := loadPNG(path)
			if err != nil {
				return nil, fmt.Errorf("portal screenshot image: %w", err)
			}
			return img, nil
		}
	}
}

func portalScreenshotOptions() map[string]dbus.Variant {
	return map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(false),
		"modal":        dbus.MakeVariant(false),
		"handle_token": dbus.MakeVariant(portalHandleToken()),
	}
}

// portalResult extracts the local file path from a Request.Response body:
// (uint32 response, a{sv} results).
func portalResult(body []interface{}) (string, error) {
	if len(body) < 2 {
		return "", fmt.Errorf("portal screenshot: malformed response")
	}
	if code, ok := body[0].(uint32); ok && code != 0 {
		return "", fmt.Errorf("portal screenshot: request ended with code %d", code)
	}
	results, ok := body[1].(map[string]dbus.Variant)
	if !ok {
		return "", fmt.Errorf("portal screenshot: malformed results")
	}
	v, ok := results["uri"]
	if !ok {
		return "", fmt.Errorf("portal screenshot: response missing image data")
	}
	uri, ok := v.Value().(string)
	if !ok {
		return "", fmt.Errorf("portal screenshot: uri is %T", v.Value())
	}
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return strings.TrimPrefix(uri, "file://"), nil
	}
	return u.Path, nil
}
