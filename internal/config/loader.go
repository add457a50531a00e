package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables consulted after the config file is read.
const (
	EnvConfig  = "SNIPSHOT_CONFIG"
	EnvTheme   = "SNIPSHOT_THEME"
	EnvSaveDir = "SNIPSHOT_SAVE_DIR"
	EnvDialog  = "SNIPSHOT_DIALOG"
)

// Loader handles loading the configuration.
type Loader struct {
	Version      string // Build version, used to determine dev mode
	OverridePath string // -config flag or SNIPSHOT_CONFIG
	// EnvFile is a dotenv file loaded before the environment is read.
	// Variables already set in the process win.
	EnvFile string
}

// NewLoader creates a new Loader.
func NewLoader(version string, overridePath string) *Loader {
	if overridePath == "" {
		overridePath = os.Getenv(EnvConfig)
	}
	return &Loader{
		Version:      version,
		OverridePath: overridePath,
		EnvFile:      ".env",
	}
}

// Load reads the config file if one exists, then applies environment
// overrides.
func (l *Loader) Load() (*Config, error) {
	if l.EnvFile != "" {
		if err := godotenv.Load(l.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("config: reading %s: %v", l.EnvFile, err)
		}
	}

	cfg := New()
	if path := l.GetConfigPath(); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		cfg, err = Parse(f)
		if err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvTheme); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv(EnvSaveDir); v != "" {
		cfg.SaveDir = v
	}
	if v := os.Getenv(EnvDialog); v != "" {
		if err := setRootField(cfg, "dialog", v); err != nil {
			return fmt.Errorf("%s: %w", EnvDialog, err)
		}
	}
	return nil
}

// GetConfigPath returns the path to the configuration file, or empty string if not found.
func (l *Loader) GetConfigPath() string {
	if l.OverridePath != "" {
		if _, err := os.Stat(l.OverridePath); err == nil {
			return l.OverridePath
		}
	}

	if l.Version == "dev" {
		wd, _ := os.Getwd()
		localPath := filepath.Join(wd, ".snipshotrc")
		if _, err := os.Stat(localPath); err == nil {
			return localPath
		}
	}

	for _, name := range []string{"config.rc", "snipshot.rc"} {
		p := filepath.Join(ConfigDir(), name)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// ConfigDir is ~/.config/snipshot, honouring XDG_CONFIG_HOME.
func ConfigDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "snipshot")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "snipshot")
}

// DefaultPath is where Save writes when no config file exists yet.
func (l *Loader) DefaultPath() string {
	if l.OverridePath != "" {
		return l.OverridePath
	}
	if p := l.GetConfigPath(); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.rc")
}

// Save writes cfg in RC format to the active config path.
func (l *Loader) Save(cfg *Config) (string, error) {
	path := l.DefaultPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(cfg.String()), 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}
