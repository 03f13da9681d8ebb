// Package config handles loading and saving jw configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config: ~/.config/jw/config.yaml
//
// Every field has a working default; jw runs fine with no config file
// at all. Key-binding overrides are carried here as plain data and
// validated by the keymap when they are applied.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for jw.
type Config struct {
	Theme       string              `yaml:"theme,omitempty"`        // default, light, mono
	IndentWidth int                 `yaml:"indent_width,omitempty"` // display columns per nesting level
	Scrolloff   int                 `yaml:"scrolloff,omitempty"`    // rows kept between cursor and window edge
	Keys        map[string][]string `yaml:"keys,omitempty"`         // action name -> keys, merged over defaults
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Theme:       "default",
		IndentWidth: 2,
		Scrolloff:   3,
		Keys:        make(map[string][]string),
	}
}

// ConfigDir returns the XDG config directory for jw.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "jw")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "jw")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	// Ensure keys map is initialized
	if cfg.Keys == nil {
		cfg.Keys = make(map[string][]string)
	}

	// Clamp out-of-range values back to the defaults rather than
	// letting them reach the renderer and viewport.
	if cfg.IndentWidth < 1 {
		cfg.IndentWidth = 2
	}
	if cfg.Scrolloff < 0 {
		cfg.Scrolloff = 0
	}

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}
