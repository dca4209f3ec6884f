// Package config loads configuration from a YAML file and environment
// variables. Environment variables take precedence over the file, which takes
// precedence over defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the full application configuration.
type Config struct {
	Log         LogConfig         `yaml:"log"`
	Window      WindowConfig      `yaml:"window"`
	Record      RecordConfig      `yaml:"record"`
	Deck        DeckConfig        `yaml:"deck"`
	Coordinator CoordinatorConfig `yaml:"coordinator"`
}

// LogConfig selects the log level (disable, fatal, error, warn, info, debug).
type LogConfig struct {
	Level string `yaml:"level"`
}

// WindowConfig describes the emulator window.
type WindowConfig struct {
	ID     uint64 `yaml:"id"`
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	// ScaleFactor pins the DPI scale. Zero follows the monitor.
	ScaleFactor float64 `yaml:"scale_factor,omitempty"`
}

// RecordConfig enables recording drained events as JSON lines.
type RecordConfig struct {
	Path string `yaml:"path,omitempty"`
}

// DeckConfig configures the Stream Deck touch strip source.
type DeckConfig struct {
	WindowID uint64 `yaml:"window_id"`
	Serial   string `yaml:"serial,omitempty"`
	// Brightness is a percentage.
	Brightness int `yaml:"brightness"`
}

// CoordinatorConfig tunes the drain loop.
type CoordinatorConfig struct {
	DrainInterval time.Duration `yaml:"drain_interval"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Window: WindowConfig{
			ID:     1,
			Title:  "pointerflow",
			Width:  960,
			Height: 640,
		},
		Deck: DeckConfig{
			WindowID:   2,
			Brightness: 80,
		},
		Coordinator: CoordinatorConfig{DrainInterval: 50 * time.Millisecond},
	}
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "pointerflow")
}

// DefaultConfigPath returns the config file path, honoring
// POINTERFLOW_CONFIG.
func DefaultConfigPath() string {
	if p := os.Getenv("POINTERFLOW_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// Load reads DefaultConfigPath. A missing file is not an error.
func Load() (*Config, error) {
	return LoadFromPath(DefaultConfigPath())
}

// LoadFromPath layers defaults, the YAML file at path (if present) and the
// environment.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("POINTERFLOW_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("POINTERFLOW_SCALE_FACTOR"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("POINTERFLOW_SCALE_FACTOR: %w", err)
		}
		cfg.Window.ScaleFactor = f
	}
	if v := os.Getenv("POINTERFLOW_RECORD"); v != "" {
		cfg.Record.Path = v
	}
	if v := os.Getenv("POINTERFLOW_DECK_SERIAL"); v != "" {
		cfg.Deck.Serial = v
	}
	return nil
}

// Validate rejects values no component can work with.
func (c *Config) Validate() error {
	if c.Window.ScaleFactor < 0 {
		return fmt.Errorf("window.scale_factor must not be negative, got %v", c.Window.ScaleFactor)
	}
	if c.Window.ID == c.Deck.WindowID {
		return fmt.Errorf("window.id and deck.window_id must differ, both are %d", c.Window.ID)
	}
	if c.Deck.Brightness < 0 || c.Deck.Brightness > 100 {
		return fmt.Errorf("deck.brightness must be 0..100, got %d", c.Deck.Brightness)
	}
	if c.Coordinator.DrainInterval <= 0 {
		return fmt.Errorf("coordinator.drain_interval must be positive, got %s", c.Coordinator.DrainInterval)
	}
	return nil
}

// WriteConfigFile writes cfg to DefaultConfigPath.
func WriteConfigFile(cfg *Config) error {
	return WriteConfigFileTo(DefaultConfigPath(), cfg)
}

// WriteConfigFileTo writes cfg as YAML to path, creating its directory.
func WriteConfigFileTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0o644)
}
