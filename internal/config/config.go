package config

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/example/snipshot/internal/fonts"
	"github.com/example/snipshot/internal/geom"
	"github.com/example/snipshot/internal/overlay"
	"github.com/example/snipshot/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
}

// Magnifier holds the loupe settings.
type Magnifier struct {
	Zoom     int
	Offset   int
	Size     int
	AllTools bool
}

// Thresholds are the pointer distances, in panel pixels, that separate a
// click from a drag.
type Thresholds struct {
	CropDrag  float64
	RectMin   float64
	TextClick float64
}

// Config holds the application configuration.
type Config struct {
	Theme           string
	SaveDir         string
	FontFamily      string
	Color           color.RGBA
	BrushWidth      int
	FontSize        int
	ShowProcessInfo bool
	Dialog          string
	Capture         string
	Windows         string
	Shadow          bool
	Clipboard       bool
	Magnifier       Magnifier
	Notify          Notify
	Thresholds      Thresholds
	Themes          map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	oc := overlay.DefaultConfig()
	return &Config{
		Theme:           "",
		SaveDir:         DefaultSaveDir(),
		FontFamily:      fonts.DefaultFamily,
		Color:           oc.Color,
		BrushWidth:      oc.BrushWidth,
		FontSize:        oc.FontSize,
		ShowProcessInfo: true,
		Dialog:          "auto",
		Capture:         "auto",
		Windows:         "auto",
		Clipboard:       true,
		Magnifier: Magnifier{
			Zoom:   oc.Magnifier.Zoom,
			Offset: oc.Magnifier.Offset,
			Size:   oc.Magnifier.Size,
		},
		Thresholds: Thresholds{
			CropDrag:  oc.Thresholds.CropDrag,
			RectMin:   oc.Thresholds.RectMin,
			TextClick: oc.Thresholds.TextClick,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// DefaultSaveDir is ~/Pictures/snipshot.
func DefaultSaveDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("Pictures", "snipshot")
	}
	return filepath.Join(home, "Pictures", "snipshot")
}

// Overlay converts the tool settings into the session configuration.
func (c *Config) Overlay() overlay.Config {
	return overlay.Config{
		Color:      c.Color,
		BrushWidth: c.BrushWidth,
		FontSize:   c.FontSize,
		FontFamily: c.FontFamily,
		Magnifier: geom.MagnifierConfig{
			Zoom:   c.Magnifier.Zoom,
			Offset: c.Magnifier.Offset,
			Size:   c.Magnifier.Size,
		},
		MagnifierAllTools: c.Magnifier.AllTools,
		ShowProcessInfo:   c.ShowProcessInfo,
		Thresholds: overlay.Thresholds{
			CropDrag:  c.Thresholds.CropDrag,
			RectMin:   c.Thresholds.RectMin,
			TextClick: c.Thresholds.TextClick,
		},
	}
}

// ResolveTheme returns the theme named by c.Theme, looking first at the
// themes defined inline in the config and then through l.
func (c *Config) ResolveTheme(l *theme.Loader) (*theme.Theme, error) {
	if t, ok := c.Themes[c.Theme]; ok {
		return t, nil
	}
	return l.Load(c.Theme)
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	fmt.Fprintf(&sb, "font_family = %s\n", c.FontFamily)
	fmt.Fprintf(&sb, "color = %s\n", theme.Hex(c.Color))
	fmt.Fprintf(&sb, "brush_width = %d\n", c.BrushWidth)
	fmt.Fprintf(&sb, "font_size = %d\n", c.FontSize)
	fmt.Fprintf(&sb, "show_process_info = %v\n", c.ShowProcessInfo)
	fmt.Fprintf(&sb, "dialog = %s\n", c.Dialog)
	fmt.Fprintf(&sb, "capture = %s\n", c.Capture)
	fmt.Fprintf(&sb, "windows = %s\n", c.Windows)
	fmt.Fprintf(&sb, "shadow = %v\n", c.Shadow)
	fmt.Fprintf(&sb, "clipboard = %v\n", c.Clipboard)
	sb.WriteString("\n")

	sb.WriteString("[magnifier]\n")
	fmt.Fprintf(&sb, "zoom = %d\n", c.Magnifier.Zoom)
	fmt.Fprintf(&sb, "offset = %d\n", c.Magnifier.Offset)
	fmt.Fprintf(&sb, "size = %d\n", c.Magnifier.Size)
	fmt.Fprintf(&sb, "all_tools = %v\n", c.Magnifier.AllTools)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	sb.WriteString("[thresholds]\n")
	fmt.Fprintf(&sb, "crop_drag = %g\n", c.Thresholds.CropDrag)
	fmt.Fprintf(&sb, "rect_min = %g\n", c.Thresholds.RectMin)
	fmt.Fprintf(&sb, "text_click = %g\n", c.Thresholds.TextClick)
	sb.WriteString("\n")

	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range t.Fields() {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
