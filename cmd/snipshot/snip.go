package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/example/snipshot/internal/capture"
	"github.com/example/snipshot/internal/clipboard"
	"github.com/example/snipshot/internal/dialog"
	"github.com/example/snipshot/internal/geom"
	"github.com/example/snipshot/internal/overlay"
	"github.com/example/snipshot/internal/render"
	"github.com/example/snipshot/internal/store"
	"github.com/example/snipshot/internal/ui"
	"github.com/example/snipshot/internal/windows"
)

// Swapped in tests.
var (
	activeMonitorFn  = capture.ActiveMonitor
	newSourceFn      = capture.NewSource
	newEnumeratorFn  = capture.NewEnumerator
	runOverlayFn     = ui.Run
	writeClipboardFn = clipboard.WriteImage
	newPrompterFn    = dialog.New
	clipboardHold    = 45 * time.Second
)

type snipCmd struct {
	*root
	fs          *flag.FlagSet
	captureKind string
	windowsKind string
	saveDir     string
	noClipboard bool
	shadow      bool
}

func parseSnipCmd(args []string, r *root) (*snipCmd, error) {
	fs := flag.NewFlagSet("snip", flag.ContinueOnError)
	c := &snipCmd{root: r.subcommand("snip"), fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.captureKind, "capture", r.config.Capture, "screenshot source: auto, spectacle, portal or x11")
	fs.StringVar(&c.windowsKind, "windows", r.config.Windows, "window list source: auto, kwin, x11 or none")
	fs.StringVar(&c.saveDir, "save-dir", r.config.SaveDir, "directory for saved snips")
	fs.BoolVar(&c.noClipboard, "no-clipboard", !r.config.Clipboard, "do not copy the snip to the clipboard")
	fs.BoolVar(&c.shadow, "shadow", r.config.Shadow, "add a drop shadow to the saved snip")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: c}
	}
	return c, nil
}

func (c *snipCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *snipCmd) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mon, err := activeMonitorFn(ctx)
	if err != nil {
		return fmt.Errorf("detect monitor: %w", err)
	}
	debugf("monitor %s", mon)

	enum, err := newEnumeratorFn(c.windowsKind)
	if err != nil {
		return err
	}
	wins := capture.ListWindows(ctx, enum)
	debugf("%s reported %d windows", enum.Name(), len(wins))

	src, err := newSourceFn(c.captureKind)
	if err != nil {
		return err
	}
	full, err := src.Screenshot(ctx)
	if err != nil {
		return fmt.Errorf("capture screen: %w", err)
	}
	debugf("captured %v with %s", full.Bounds(), src.Name())
	img, err := capture.CropToMonitor(full, mon)
	if err != nil {
		return fmt.Errorf("capture screen: %w", err)
	}

	_, err = c.root.snip(ctx, img, mon.Geometry, wins, finishOptions{
		saveDir:   c.saveDir,
		clipboard: !c.noClipboard,
		shadow:    c.shadow,
	})
	return err
}

type finishOptions struct {
	saveDir   string
	output    string
	clipboard bool
	shadow    bool
}

// snip runs the overlay over img and finishes a committed session. It
// returns the saved path, or "" when the user cancelled.
func (r *root) snip(ctx context.Context, img *image.RGBA, monitor geom.Rect, wins []windows.Info, opts finishOptions) (string, error) {
	prompter, err := newPrompterFn(r.config.Dialog)
	if err != nil {
		log.Printf("dialog: %v", err)
		prompter = dialog.NewPalette()
	}
	debugf("prompts via %s", prompter.Name())

	reg := windows.New(wins, monitor)
	debugf("%d of %d windows overlap the monitor", reg.Len(), len(wins))
	session := overlay.NewSession(img.Bounds().Size(), monitor,
		overlay.WithWindows(reg),
		overlay.WithConfig(r.config.Overlay()),
		overlay.WithColorPicker(prompter),
		overlay.WithFontPicker(prompter),
		overlay.WithTextPrompt(prompter),
	)
	outcome, err := runOverlayFn(ctx, session, img, render.NewPainter(r.activeTheme), ui.Options{Title: r.program})
	if err != nil {
		return "", fmt.Errorf("overlay: %w", err)
	}
	if outcome != overlay.Committed {
		debugf("snip %s", outcome)
		return "", nil
	}
	return r.finish(ctx, img, session, opts)
}

// finish flattens the annotations, crops the result and hands it to the
// store, the clipboard and the notifier. When the clipboard is served
// from this process it stays alive until the data is taken over or
// clipboardHold passes.
func (r *root) finish(ctx context.Context, img *image.RGBA, session *overlay.Session, opts finishOptions) (string, error) {
	res := session.Result()
	out := render.Crop(render.Composite(img, session.Model().Ops(), res.Scales), res.Rect, res.Scales)
	if opts.shadow {
		out = render.DropShadow(out, render.DefaultShadowOptions())
	}

	label := ""
	if res.Window != nil {
		label = res.Window.ProcessName
	}
	var (
		path string
		err  error
	)
	if opts.output != "" {
		path, err = opts.output, writePNG(opts.output, out)
	} else {
		path, err = store.Saver{Dir: opts.saveDir}.Save(out, label)
	}
	if err != nil {
		return "", fmt.Errorf("save snip: %w", err)
	}
	fmt.Fprintln(r.out, path)
	r.notifySave(path)

	if opts.clipboard {
		lease, err := writeClipboardFn(out)
		if err != nil {
			log.Printf("copy: %v", err)
			return path, nil
		}
		r.notifyCopy(filepath.Base(path))
		if lease != nil {
			debugf("serving clipboard for up to %v", clipboardHold)
			if !lease.Hold(ctx, clipboardHold) {
				debugf("clipboard released without a new owner")
			}
		}
	}
	return path, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
