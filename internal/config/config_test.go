package config

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/snipshot/internal/theme"
)

func TestParse(t *testing.T) {
	input := `
theme = my_custom_theme
save_dir = /tmp/screens
color = #00ff00
brush_width = 7
font_size = 24
show_process_info = false
dialog = zenity

[magnifier]
zoom = 4
size = 120
all_tools = true

[notify]
save = false
copy = true

[thresholds]
crop_drag = 8.5

[theme.my_custom_theme]
Dim: #111111
ButtonText: white
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Theme != "my_custom_theme" {
		t.Errorf("Expected theme 'my_custom_theme', got '%s'", cfg.Theme)
	}
	if cfg.SaveDir != "/tmp/screens" {
		t.Errorf("Expected save_dir '/tmp/screens', got '%s'", cfg.SaveDir)
	}
	if cfg.Color != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("color %+v", cfg.Color)
	}
	if cfg.BrushWidth != 7 || cfg.FontSize != 24 {
		t.Errorf("brush %d font %d", cfg.BrushWidth, cfg.FontSize)
	}
	if cfg.ShowProcessInfo {
		t.Error("Expected show_process_info to be false")
	}
	if cfg.Dialog != "zenity" {
		t.Errorf("dialog %q", cfg.Dialog)
	}
	if cfg.Magnifier != (Magnifier{Zoom: 4, Offset: 20, Size: 120, AllTools: true}) {
		t.Errorf("magnifier %+v", cfg.Magnifier)
	}
	if cfg.Notify.Save {
		t.Error("Expected notify.save to be false")
	}
	if !cfg.Notify.Copy {
		t.Error("Expected notify.copy to be true")
	}
	if cfg.Thresholds.CropDrag != 8.5 || cfg.Thresholds.RectMin != 2 {
		t.Errorf("thresholds %+v", cfg.Thresholds)
	}

	th, ok := cfg.Themes["my_custom_theme"]
	if !ok {
		t.Fatal("Expected theme 'my_custom_theme' to be loaded")
	}
	if th.Dim != (color.RGBA{0x11, 0x11, 0x11, 0xff}) {
		t.Errorf("Unexpected Dim color: %+v", th.Dim)
	}
	if th.ButtonText != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("Unexpected ButtonText color: %+v", th.ButtonText)
	}
	if th.HoverFill != theme.Default().HoverFill {
		t.Error("unset theme keys should keep their defaults")
	}

	oc := cfg.Overlay()
	if oc.BrushWidth != 7 || !oc.MagnifierAllTools || oc.Magnifier.Zoom != 4 || oc.Thresholds.CropDrag != 8.5 {
		t.Errorf("overlay config %+v", oc)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		"brush_width = thick",
		"color = #12",
		"dialog = qt",
		"[magnifier]\nzoom = 0",
		"[notify]\nsave = maybe",
		"[thresholds]\nrect_min = -1",
		"[theme.x]\nDim: #zzzzzz",
	}
	for _, input := range tests {
		if _, err := Parse(strings.NewReader(input)); err == nil {
			t.Errorf("expected an error for %q", input)
		}
	}
}

func TestCircular(t *testing.T) {
	input := `theme = dark
save_dir = /home/user/shots
font_family = Go Mono
shadow = true

[notify]
save = true
copy = false

[theme.custom]
Name = custom
Dim: #000000
ButtonText: #FFFFFF80
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	generated := cfg.String()

	cfg2, err := Parse(strings.NewReader(generated))
	if err != nil {
		t.Fatalf("Circular parse failed: %v\n%s", err, generated)
	}

	if cfg.Theme != cfg2.Theme {
		t.Errorf("Theme mismatch: %q vs %q", cfg.Theme, cfg2.Theme)
	}
	if cfg.SaveDir != cfg2.SaveDir {
		t.Errorf("SaveDir mismatch: %q vs %q", cfg.SaveDir, cfg2.SaveDir)
	}
	if cfg.FontFamily != cfg2.FontFamily || !cfg2.Shadow {
		t.Errorf("root mismatch: %+v vs %+v", cfg, cfg2)
	}
	if cfg.Notify != cfg2.Notify {
		t.Errorf("Notify mismatch: %+v vs %+v", cfg.Notify, cfg2.Notify)
	}
	if cfg.Magnifier != cfg2.Magnifier || cfg.Thresholds != cfg2.Thresholds {
		t.Errorf("section mismatch")
	}

	t1 := cfg.Themes["custom"]
	t2 := cfg2.Themes["custom"]
	if t1 == nil || t2 == nil {
		t.Fatalf("Custom theme missing in one config")
	}
	if *t1 != *t2 {
		t.Errorf("Theme mismatch: %+v vs %+v", t1, t2)
	}
}

func TestLoaderPrefersOverrideAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "my.rc")
	if err := os.WriteFile(path, []byte("theme = dark\nsave_dir = /from/file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvTheme, "")
	t.Setenv(EnvSaveDir, "/from/env")

	l := NewLoader("v1", path)
	l.EnvFile = ""
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("theme %q", cfg.Theme)
	}
	if cfg.SaveDir != "/from/env" {
		t.Errorf("save dir %q, want the environment to win", cfg.SaveDir)
	}
}

func TestLoaderReadsDotenv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	// Registered so the variable is restored after godotenv sets it.
	t.Setenv(EnvTheme, "")
	os.Unsetenv(EnvTheme)
	t.Setenv(EnvSaveDir, "/already/set")

	envFile := filepath.Join(dir, "test.env")
	content := EnvTheme + "=high_contrast\n" + EnvSaveDir + "=/from/dotenv\n"
	if err := os.WriteFile(envFile, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	l := &Loader{Version: "v1", EnvFile: envFile}
	cfg, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "high_contrast" {
		t.Errorf("theme %q", cfg.Theme)
	}
	if cfg.SaveDir != "/already/set" {
		t.Errorf("save dir %q, dotenv must not override the process", cfg.SaveDir)
	}
}

func TestLoaderSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.rc")
	l := &Loader{OverridePath: path}

	cfg := New()
	cfg.BrushWidth = 11
	got, err := l.Save(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Fatalf("saved to %q", got)
	}

	loaded, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.BrushWidth != 11 {
		t.Fatalf("brush width %d", loaded.BrushWidth)
	}
}

func TestResolveThemePrefersInline(t *testing.T) {
	cfg, err := Parse(strings.NewReader("theme = mine\n[theme.mine]\nDim: navy\n"))
	if err != nil {
		t.Fatal(err)
	}
	th, err := cfg.ResolveTheme(&theme.Loader{})
	if err != nil {
		t.Fatal(err)
	}
	if th.Name != "mine" || th.Dim != (color.RGBA{0, 0, 0x80, 0xff}) {
		t.Fatalf("theme %+v", th)
	}
}
