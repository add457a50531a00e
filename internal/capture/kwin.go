package capture

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/godbus/dbus/v5"

	"github.com/example/snipshot/internal/windows"
)

//go:embed kwin/windows.js
var kwinScript string

const (
	kwinReportPath  = dbus.ObjectPath("/org/snipshot/Windows")
	kwinReportIface = "org.snipshot.Windows"
	kwinTimeout     = 2 * time.Second
)

// kwinReceiver is exported on the session bus for the script to call.
type kwinReceiver struct {
	reports chan string
}

// Report is invoked by the KWin script with the JSON stacking list.
func (r kwinReceiver) Report(payload string) *dbus.Error {
	select {
	case r.reports <- payload:
	default:
	}
	return nil
}

// kwinEnumerator loads a short-lived KWin script that reports the
// stacking order back over D-Bus.
type kwinEnumerator struct{}

func (kwinEnumerator) Name() string { return "kwin" }

func (kwinEnumerator) List(ctx context.Context) ([]windows.Info, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer conn.Close()

	names := conn.Names()
	if len(names) == 0 {
		return nil, fmt.Errorf("no unique bus name")
	}
	recv := kwinReceiver{reports: make(chan string, 1)}
	if err := conn.Export(recv, kwinReportPath, kwinReportIface); err != nil {
		return nil, fmt.Errorf("export report object: %w", err)
	}
	defer conn.Export(nil, kwinReportPath, kwinReportIface)

	path, err := writeKWinScript(names[0])
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	plugin := fmt.Sprintf("snipshot-%d", time.Now().UnixNano())
	scripting := conn.Object("org.kde.KWin", "/Scripting")
	var id int32
	if err := scripting.CallWithContext(ctx, "org.kde.kwin.Scripting.loadScript", 0, path, plugin).Store(&id); err != nil {
		return nil, fmt.Errorf("load kwin script: %w", err)
	}
	if id < 0 {
		return nil, fmt.Errorf("kwin refused the script")
	}
	defer scripting.Call("org.kde.kwin.Scripting.unloadScript", 0, plugin)

	script := conn.Object("org.kde.KWin", dbus.ObjectPath(fmt.Sprintf("/Scripting/Script%d", id)))
	if err := script.CallWithContext(ctx, "org.kde.kwin.Script.run", 0).Err; err != nil {
		return nil, fmt.Errorf("run kwin script: %w", err)
	}
	defer script.Call("org.kde.kwin.Script.stop", 0)

	timer := time.NewTimer(kwinTimeout)
	defer timer.Stop()
	select {
	case payload := <-recv.reports:
		return parseKWinReport([]byte(payload))
	case <-timer.C:
		return nil, fmt.Errorf("%w: kwin script did not report within %v", ErrNoWindows, kwinTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func writeKWinScript(service string) (string, error) {
	src := strings.NewReplacer(
		"{{SERVICE}}", service,
		"{{PATH}}", string(kwinReportPath),
		"{{INTERFACE}}", kwinReportIface,
	).Replace(kwinScript)
	f, err := os.CreateTemp("", "snipshot-kwin-*.js")
	if err != nil {
		return "", fmt.Errorf("kwin script: %w", err)
	}
	if _, err := f.WriteString(src); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("kwin script: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("kwin script: %w", err)
	}
	return f.Name(), nil
}
