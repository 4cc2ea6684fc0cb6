package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
)

// appName names the config and data directories.
const appName = "tcalc"

// Config holds tcalc user configuration.
type Config struct {
	Theme       string        `toml:"theme"`
	ShowHistory bool          `toml:"show_history"`
	Sound       SoundConfig   `toml:"sound"`
	History     HistoryConfig `toml:"history"`
	Log         LogConfig     `toml:"log"`

	path string
}

// SoundConfig controls keystroke clicks.
type SoundConfig struct {
	Enabled      bool     `toml:"enabled"`
	RepeatWindow Duration `toml:"repeat_window"`
}

// HistoryConfig controls where the history log lives. By default history
// lasts for a single run.
type HistoryConfig struct {
	Persist bool   `toml:"persist"`
	Path    string `toml:"path"` // sqlite file; empty means <data dir>/tcalc.db
}

// LogConfig controls the log file.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"` // empty means <data dir>/tcalc.log
}

// Duration is a time.Duration written as a string ("250ms") in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Theme:       "light",
		ShowHistory: true,
		Sound: SoundConfig{
			Enabled:      true,
			RepeatWindow: Duration{250 * time.Millisecond},
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// LoadConfig loads configuration from the standard config directory.
func LoadConfig() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from path. A missing file yields the
// defaults, which are written back so the user has a file to edit.
func LoadConfigFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	cfg.path = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Best-effort: a read-only home still gets a working calculator.
			cfg.Save()
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.path = path
	return &cfg, nil
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Save writes the configuration to disk.
func (c *Config) Save() error {
	if c.path == "" {
		path, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		c.path = path
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	return os.WriteFile(c.path, buf.Bytes(), 0o644)
}

// HistoryPath returns the sqlite file used when history persistence is on.
func (c *Config) HistoryPath() (string, error) {
	if c.History.Path != "" {
		return c.History.Path, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".db"), nil
}

// LogPath returns the log file path.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName+".log"), nil
}

// DefaultConfigPath returns <config dir>/tcalc/config.toml.
func DefaultConfigPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns the data directory for logs and the optional history file.
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			dir = filepath.Join(appData, appName)
		} else {
			dir = filepath.Join(home, "."+appName)
		}
	default: // Linux, BSD, etc.
		xdgData := os.Getenv("XDG_DATA_HOME")
		if xdgData != "" {
			dir = filepath.Join(xdgData, appName)
		} else {
			dir = filepath.Join(home, ".local", "share", appName)
		}
	}

	return dir, nil
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home dir: %w", err)
	}

	var dir string
	switch runtime.GOOS {
	case "darwin":
		dir = filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		appData := os.Getenv("APPDATA")
		if appData != "" {
			dir = filepath.Join(appData, appName)
		} else {
			dir = filepath.Join(home, "."+appName)
		}
	default:
		xdgConfig := os.Getenv("XDG_CONFIG_HOME")
		if xdgConfig != "" {
			dir = filepath.Join(xdgConfig, appName)
		} else {
			dir = filepath.Join(home, ".config", appName)
		}
	}

	return dir, nil
}
