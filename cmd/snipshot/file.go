package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"os/signal"

	"github.com/example/snipshot/internal/geom"
)

// fileCmd runs the overlay on an existing image instead of a capture.
type fileCmd struct {
	*root
	fs          *flag.FlagSet
	path        string
	output      string
	saveDir     string
	noClipboard bool
	shadow      bool
}

func (f *fileCmd) FlagSet() *flag.FlagSet {
	return f.fs
}

func parseFileCmd(args []string, r *root) (*fileCmd, error) {
	fs := flag.NewFlagSet("file", flag.ContinueOnError)
	cmd := &fileCmd{root: r.subcommand("file"), fs: fs}
	fs.Usage = usageFunc(cmd)
	fs.StringVar(&cmd.path, "file", "", "image to annotate and crop")
	fs.StringVar(&cmd.output, "output", "", "write the snip here instead of a generated name in -save-dir")
	fs.StringVar(&cmd.saveDir, "save-dir", r.config.SaveDir, "directory for saved snips")
	fs.BoolVar(&cmd.noClipboard, "no-clipboard", !r.config.Clipboard, "do not copy the snip to the clipboard")
	fs.BoolVar(&cmd.shadow, "shadow", r.config.Shadow, "add a drop shadow to the saved snip")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cmd.path == "" && fs.NArg() == 1 {
		cmd.path = fs.Arg(0)
	} else if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	if cmd.path == "" {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (f *fileCmd) Run() error {
	img, err := loadImage(f.path)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	b := img.Bounds()
	monitor := geom.R(0, 0, float64(b.Dx()), float64(b.Dy()))
	_, err = f.root.snip(ctx, img, monitor, nil, finishOptions{
		saveDir:   f.saveDir,
		output:    f.output,
		clipboard: !f.noClipboard,
		shadow:    f.shadow,
	})
	return err
}

// loadImage decodes path into a zero-origin RGBA.
func loadImage(path string) (*image.RGBA, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer fh.Close()
	src, _, err := image.Decode(fh)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	b := src.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), src, b.Min, draw.Src)
	return rgba, nil
}
