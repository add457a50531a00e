package main

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"sync"
	"testing"

	"github.com/example/snipshot/internal/capture"
	"github.com/example/snipshot/internal/config"
	"github.com/example/snipshot/internal/geom"
	"github.com/example/snipshot/internal/windows"
)

func isolateConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvTheme, "")
}

func TestRootDefaultsToSnip(t *testing.T) {
	isolateConfig(t)
	prev := activeMonitorFn
	t.Cleanup(func() { activeMonitorFn = prev })
	activeMonitorFn = func(context.Context) (capture.Monitor, error) { return capture.Monitor{}, capture.ErrNoMonitor }

	err := newRoot().Run(nil)
	if !errors.Is(err, capture.ErrNoMonitor) {
		t.Fatalf("err %v", err)
	}
}

func TestRootUnknownCommandIsUsage(t *testing.T) {
	isolateConfig(t)
	err := newRoot().Run([]string{"bogus"})
	var uerr *UsageError
	if !errors.As(err, &uerr) {
		t.Fatalf("err %v", err)
	}
	help := uerr.Error()
	for _, want := range []string{"Usage: snipshot", "daemon", "-notify-save"} {
		if !strings.Contains(help, want) {
			t.Errorf("help lacks %q:\n%s", want, help)
		}
	}
}

func TestRootThemeFlagWins(t *testing.T) {
	isolateConfig(t)
	t.Setenv(config.EnvTheme, "dark")
	r := newRoot()
	if err := r.fs.Parse([]string{"-theme", "high_contrast"}); err != nil {
		t.Fatal(err)
	}
	r.setup()
	if r.config.Theme != "high_contrast" {
		t.Fatalf("theme %q", r.config.Theme)
	}
	if r.activeTheme == nil {
		t.Fatal("no theme resolved")
	}
}

func TestRootNotifyFlagsOverrideConfig(t *testing.T) {
	isolateConfig(t)
	r := newRoot()
	if err := r.fs.Parse([]string{"-notify-copy"}); err != nil {
		t.Fatal(err)
	}
	r.setup()
	if !r.copyAlerts || r.saveAlerts {
		t.Fatalf("save %v copy %v", r.saveAlerts, r.copyAlerts)
	}
}

func TestConfigPrint(t *testing.T) {
	r, out := testRoot(t)
	cmd, err := parseConfigCmd([]string{"print"}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"[magnifier]", "[thresholds]", "brush_width"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("config print lacks %q:\n%s", want, out.String())
		}
	}
	if _, err := parseConfigCmd(nil, r); err == nil {
		t.Fatal("config without an action should be a usage error")
	}
}

func TestListingCommands(t *testing.T) {
	r, out := testRoot(t)
	colors, err := parseColorsCmd(nil, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := colors.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "deepskyblue") || !strings.Contains(out.String(), "#FF0000") {
		t.Fatalf("colors output:\n%s", out.String())
	}

	out.Reset()
	fonts, err := parseFontsCmd(nil, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := fonts.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Go Mono") {
		t.Fatalf("fonts output:\n%s", out.String())
	}

	if _, err := parseFontsCmd([]string{"extra"}, r); err == nil {
		t.Fatal("expected a usage error for extra arguments")
	}
}

func TestWindowsCommand(t *testing.T) {
	prev := newEnumeratorFn
	t.Cleanup(func() { newEnumeratorFn = prev })
	newEnumeratorFn = func(string) (capture.Enumerator, error) {
		return fakeEnumerator{wins: []windows.Info{{ID: "0x1", Rect: geom.R(0, 0, 640, 480), ProcessName: "konsole", PID: 4, Title: "Shell"}}}, nil
	}
	r, out := testRoot(t)
	cmd, err := parseWindowsCmd(nil, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "konsole (4)") || !strings.Contains(out.String(), "640x480+0+0") {
		t.Fatalf("windows output:\n%s", out.String())
	}
}

func TestMonitorsCommand(t *testing.T) {
	prevAll, prevActive := monitorsFn, activeMonitorFn
	t.Cleanup(func() { monitorsFn, activeMonitorFn = prevAll, prevActive })
	a := capture.Monitor{Name: "eDP-1", Geometry: geom.R(0, 0, 1440, 900), Scale: 2}
	b := capture.Monitor{Name: "DP-2", Geometry: geom.R(1440, 0, 1920, 1080), Scale: 1}
	monitorsFn = func(context.Context) ([]capture.Monitor, error) { return []capture.Monitor{a, b}, nil }
	activeMonitorFn = func(context.Context) (capture.Monitor, error) { return b, nil }

	r, out := testRoot(t)
	cmd, err := parseMonitorsCmd(nil, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("output:\n%s", out.String())
	}
	if !strings.HasPrefix(lines[2], "*") || strings.HasPrefix(lines[1], "*") {
		t.Fatalf("active marker misplaced:\n%s", out.String())
	}
}

func TestDaemonNeedsATrigger(t *testing.T) {
	r, _ := testRoot(t)
	if _, err := parseDaemonCmd([]string{"-hotkey="}, r); err == nil {
		t.Fatal("expected an error without hotkey or tray")
	}
}

func TestDaemonChildArgs(t *testing.T) {
	r, _ := testRoot(t)
	r.configPath = "/tmp/snip.rc"
	r.copyAlerts = true
	cmd, err := parseDaemonCmd(nil, r)
	if err != nil {
		t.Fatal(err)
	}
	got := strings.Join(cmd.childArgs(), " ")
	want := "-config /tmp/snip.rc -notify-save=false -notify-copy=true snip"
	if got != want {
		t.Fatalf("child args %q, want %q", got, want)
	}
}

func TestLauncherRunsOneAtATime(t *testing.T) {
	var (
		mu     sync.Mutex
		starts int
		stdins []func() error
	)
	prev := startProcess
	t.Cleanup(func() { startProcess = prev })
	startProcess = func(string, ...string) (*exec.Cmd, error) {
		cmd := exec.Command("cat")
		in, err := cmd.StdinPipe()
		if err != nil {
			return nil, err
		}
		if err := cmd.Start(); err != nil {
			return nil, err
		}
		mu.Lock()
		starts++
		stdins = append(stdins, in.Close)
		mu.Unlock()
		return cmd, nil
	}

	l := &launcher{command: "snipshot"}
	l.trigger()
	l.trigger()
	mu.Lock()
	if starts != 1 {
		t.Fatalf("started %d children while one was running", starts)
	}
	stdins[0]()
	mu.Unlock()
	l.wait()

	l.trigger()
	mu.Lock()
	defer mu.Unlock()
	if starts != 2 {
		t.Fatalf("started %d children after the first exited", starts)
	}
	stdins[1]()
}

func TestDaemonStopsWithHotkeyListener(t *testing.T) {
	prev := listenHotkeyFn
	t.Cleanup(func() { listenHotkeyFn = prev })
	var spec string
	listenHotkeyFn = func(ctx context.Context, s string, fn func()) error {
		spec = s
		return context.Canceled
	}
	r, _ := testRoot(t)
	cmd, err := parseDaemonCmd([]string{"-hotkey", "super+p"}, r)
	if err != nil {
		t.Fatal(err)
	}
	if err := cmd.Run(); err != nil {
		t.Fatal(err)
	}
	if spec != "super+p" {
		t.Fatalf("listened for %q", spec)
	}
}
