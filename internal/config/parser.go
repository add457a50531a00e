package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/snipshot/internal/theme"
)

// Parse reads configuration from an io.Reader. Values not present keep
// their defaults.
func Parse(r io.Reader) (*Config, error) {
	cfg := New()
	scanner := bufio.NewScanner(r)

	var section string
	var current *theme.Theme

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.ToLower(strings.TrimSuffix(strings.TrimPrefix(line, "["), "]"))
			current = nil
			if name, ok := strings.CutPrefix(section, "theme."); ok {
				current = theme.Default()
				current.Name = name
				cfg.Themes[name] = current
			}
			continue
		}

		key, value, ok := splitLine(line)
		if !ok {
			continue
		}

		var err error
		switch {
		case current != nil:
			err = current.Set(key, value)
		case section == "":
			err = setRootField(cfg, key, value)
		case section == "magnifier":
			err = setMagnifierField(&cfg.Magnifier, key, value)
		case section == "notify":
			err = setNotifyField(&cfg.Notify, key, value)
		case section == "thresholds":
			err = setThresholdField(&cfg.Thresholds, key, value)
		}
		if err != nil {
			if section == "" {
				return nil, fmt.Errorf("error in root section: %w", err)
			}
			return nil, fmt.Errorf("error in section [%s]: %w", section, err)
		}
	}

	return cfg, scanner.Err()
}

// splitLine accepts "key = value" and "Key: value"; surrounding quotes are
// removed from the value.
func splitLine(line string) (key, value string, ok bool) {
	sep := "="
	if !strings.Contains(line, "=") {
		sep = ":"
	}
	key, value, ok = strings.Cut(line, sep)
	if !ok {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, "\"") && strings.HasSuffix(value, "\"") {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

func setRootField(cfg *Config, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "theme":
		cfg.Theme = value
	case "save_dir", "screenshots_folder":
		cfg.SaveDir = value
	case "font_family":
		cfg.FontFamily = value
	case "color":
		cfg.Color, err = theme.ParseColor(value)
	case "brush_width":
		cfg.BrushWidth, err = parseInt(key, value)
	case "font_size":
		cfg.FontSize, err = parseInt(key, value)
	case "show_process_info":
		cfg.ShowProcessInfo, err = parseBool(key, value)
	case "dialog":
		cfg.Dialog, err = oneOf(key, value, "auto", "kdialog", "zenity", "palette")
	case "capture":
		cfg.Capture, err = oneOf(key, value, "auto", "spectacle", "portal", "x11")
	case "windows":
		cfg.Windows, err = oneOf(key, value, "auto", "kwin", "x11", "none")
	case "shadow":
		cfg.Shadow, err = parseBool(key, value)
	case "clipboard":
		cfg.Clipboard, err = parseBool(key, value)
	}
	return err
}

func setMagnifierField(m *Magnifier, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "zoom":
		m.Zoom, err = parsePositive(key, value)
	case "offset":
		m.Offset, err = parseInt(key, value)
	case "size":
		m.Size, err = parsePositive(key, value)
	case "all_tools":
		m.AllTools, err = parseBool(key, value)
	}
	return err
}

func setNotifyField(n *Notify, key, value string) error {
	var err error
	switch strings.ToLower(key) {
	case "save":
		n.Save, err = parseBool(key, value)
	case "copy":
		n.Copy, err = parseBool(key, value)
	}
	return err
}

func setThresholdField(t *Thresholds, key, value string) error {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("invalid threshold for key %s: %q", key, value)
	}
	switch strings.ToLower(key) {
	case "crop_drag":
		t.CropDrag = v
	case "rect_min":
		t.RectMin = v
	case "text_click":
		t.TextClick = v
	}
	return nil
}

func parseBool(key, value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for key %s: %w", key, err)
	}
	return b, nil
}

func parseInt(key, value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer for key %s: %w", key, err)
	}
	return n, nil
}

func parsePositive(key, value string) (int, error) {
	n, err := parseInt(key, value)
	if err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, fmt.Errorf("key %s must be positive, got %d", key, n)
	}
	return n, nil
}

func oneOf(key, value string, allowed ...string) (string, error) {
	v := strings.ToLower(value)
	for _, a := range allowed {
		if v == a {
			return v, nil
		}
	}
	return "", fmt.Errorf("invalid value for key %s: %q (want one of %s)", key, value, strings.Join(allowed, ", "))
}
