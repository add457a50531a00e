package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"sync"

	"github.com/getlantern/systray"

	"github.com/example/snipshot/assets"
	"github.com/example/snipshot/internal/hotkey"
)

// Swapped in tests.
var (
	listenHotkeyFn = hotkey.Listen
	runTrayFn      = runTray
)

// daemonCmd waits for a hotkey or a tray click and launches a snip each
// time, one at a time.
type daemonCmd struct {
	*root
	fs     *flag.FlagSet
	hotkey string
	tray   bool
	args   []string
}

func parseDaemonCmd(args []string, r *root) (*daemonCmd, error) {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	c := &daemonCmd{root: r.subcommand("daemon"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.hotkey, "hotkey", "ctrl+shift+s", "global key combination that starts a snip; empty disables it")
	fs.BoolVar(&c.tray, "tray", false, "show a tray icon with Snip and Quit entries")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if c.hotkey == "" && !c.tray {
		return nil, fmt.Errorf("daemon needs -hotkey or -tray")
	}
	c.args = fs.Args()
	return c, nil
}

func (c *daemonCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *daemonCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	self, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}
	l := &launcher{command: self, args: append(c.childArgs(), c.args...)}

	errCh := make(chan error, 1)
	if c.hotkey != "" {
		go func() {
			errCh <- listenHotkeyFn(ctx, c.hotkey, l.trigger)
		}()
	}
	if c.tray {
		runTrayFn(ctx, l.trigger)
		stop()
	}
	if c.hotkey == "" {
		l.wait()
		return nil
	}
	err = <-errCh
	l.wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// childArgs forwards the root flags that change a snip's behaviour.
func (c *daemonCmd) childArgs() []string {
	var args []string
	if c.configPath != "" {
		args = append(args, "-config", c.configPath)
	}
	if c.themeName != "" {
		args = append(args, "-theme", c.themeName)
	}
	if verbose {
		args = append(args, "-v")
	}
	args = append(args, fmt.Sprintf("-notify-save=%t", c.saveAlerts), fmt.Sprintf("-notify-copy=%t", c.copyAlerts))
	return append(args, "snip")
}

var startProcess = func(name string, args ...string) (*exec.Cmd, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, cmd.Start()
}

// launcher starts the snip child process unless one is still running.
type launcher struct {
	command string
	args    []string

	mu      sync.Mutex
	running bool
	wg      sync.WaitGroup
}

func (l *launcher) trigger() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		debugf("daemon: snip already running")
		return
	}
	cmd, err := startProcess(l.command, l.args...)
	if err != nil {
		log.Printf("daemon: start snip: %v", err)
		return
	}
	l.running = true
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		if err := cmd.Wait(); err != nil {
			log.Printf("daemon: snip: %v", err)
		}
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
	}()
}

func (l *launcher) wait() {
	l.wg.Wait()
}

// runTray blocks in the tray loop until Quit is clicked or ctx is done.
func runTray(ctx context.Context, trigger func()) {
	onReady := func() {
		if icon, err := assets.IconPNG(assets.AppIconName, 64); err == nil {
			systray.SetIcon(icon)
		} else {
			log.Printf("tray icon: %v", err)
		}
		systray.SetTitle("snipshot")
		systray.SetTooltip("snipshot")
		mSnip := systray.AddMenuItem("Snip", "Select a region of the screen")
		mQuit := systray.AddMenuItem("Quit", "Stop the snipshot daemon")
		go func() {
			for {
				select {
				case <-mSnip.ClickedCh:
					trigger()
				case <-mQuit.ClickedCh:
					systray.Quit()
					return
				case <-ctx.Done():
					systray.Quit()
					return
				}
			}
		}()
	}
	systray.Run(onReady, func() {})
}
