package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/example/snipshot/internal/capture"
	"github.com/example/snipshot/internal/dialog"
	"github.com/example/snipshot/internal/fonts"
	"github.com/example/snipshot/internal/theme"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

var monitorsFn = capture.Monitors

// marker returns a highlighted "*" when on is set and a space otherwise.
func marker(on bool) string {
	if on {
		return markerStyle.Render("*")
	}
	return " "
}

// parseListCmd builds the flag set shared by the argument-less listing
// commands.
func parseListCmd(name string, args []string, h HelpData, set func(*flag.FlagSet)) error {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	set(fs)
	fs.Usage = usageFunc(h)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return &UsageError{of: h}
	}
	return nil
}

type monitorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseMonitorsCmd(args []string, r *root) (*monitorsCmd, error) {
	cmd := &monitorsCmd{root: r.subcommand("monitors")}
	if err := parseListCmd("monitors", args, cmd, func(fs *flag.FlagSet) { cmd.fs = fs }); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (c *monitorsCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *monitorsCmd) Run() error {
	ctx := context.Background()
	mons, err := monitorsFn(ctx)
	if err != nil {
		return fmt.Errorf("list monitors: %w", err)
	}
	active, err := activeMonitorFn(ctx)
	if err != nil {
		debugf("active monitor: %v", err)
	}
	fmt.Fprintln(c.out, titleStyle.Render("monitors (* marks the active monitor):"))
	for _, m := range mons {
		g := m.Geometry
		fmt.Fprintf(c.out, "%s %-10s %gx%g+%g+%g %s\n",
			marker(m.Name == active.Name), m.Name, g.W, g.H, g.X, g.Y,
			dimStyle.Render(fmt.Sprintf("physical %v scale %g", m.Physical, m.Scale)))
	}
	return nil
}

type windowsCmd struct {
	*root
	fs   *flag.FlagSet
	kind string
}

func parseWindowsCmd(args []string, r *root) (*windowsCmd, error) {
	cmd := &windowsCmd{root: r.subcommand("windows")}
	err := parseListCmd("windows", args, cmd, func(fs *flag.FlagSet) {
		cmd.fs = fs
		fs.StringVar(&cmd.kind, "windows", r.config.Windows, "window list source: auto, kwin, x11 or none")
	})
	if err != nil {
		return nil, err
	}
	return cmd, nil
}

func (c *windowsCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *windowsCmd) Run() error {
	enum, err := newEnumeratorFn(c.kind)
	if err != nil {
		return err
	}
	wins, err := enum.List(context.Background())
	if err != nil {
		return fmt.Errorf("list windows: %w", err)
	}
	if len(wins) == 0 {
		fmt.Fprintln(c.out, "no windows available")
		return nil
	}
	fmt.Fprintln(c.out, titleStyle.Render(fmt.Sprintf("windows from %s, topmost first:", enum.Name())))
	for i, w := range wins {
		label := w.Label()
		if label == "" {
			label = w.ID
		}
		r := w.Rect
		fmt.Fprintf(c.out, "%3d %-24s %gx%g+%g+%g %s\n", i, label, r.W, r.H, r.X, r.Y, dimStyle.Render(w.Title))
	}
	return nil
}

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	cmd := &colorsCmd{root: r.subcommand("colors")}
	if err := parseListCmd("colors", args, cmd, func(fs *flag.FlagSet) { cmd.fs = fs }); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *colorsCmd) Run() error {
	fmt.Fprintln(c.out, titleStyle.Render("palette colors (* marks the configured color):"))
	for i, col := range dialog.NewPalette().Colors() {
		hex := theme.Hex(col)
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex[:7])).Render("  ")
		fmt.Fprintf(c.out, "%s %2d: %-12s %s %s\n", marker(col == c.config.Color), i, dialog.PaletteNames[i], hex, swatch)
	}
	return nil
}

type fontsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseFontsCmd(args []string, r *root) (*fontsCmd, error) {
	cmd := &fontsCmd{root: r.subcommand("fonts")}
	if err := parseListCmd("fonts", args, cmd, func(fs *flag.FlagSet) { cmd.fs = fs }); err != nil {
		return nil, err
	}
	return cmd, nil
}

func (c *fontsCmd) FlagSet() *flag.FlagSet { return c.fs }

func (c *fontsCmd) Run() error {
	fmt.Fprintln(c.out, titleStyle.Render("font families (* marks the configured family):"))
	for _, f := range fonts.Families() {
		fmt.Fprintf(c.out, "%s %s\n", marker(f == c.config.FontFamily), f)
	}
	return nil
}
