package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

// Config holds application configuration.
type Config struct {
	Theme           string `json:"theme"`
	ContextLines    int    `json:"contextLines"`
	WatchDebounceMs int    `json:"watchDebounceMs"`
}

// Defaults
const (
	DefaultTheme           = "monokai"
	DefaultContextLines    = 3
	DefaultWatchDebounceMs = 200
)

// DefaultConfigDir returns the platform-appropriate config directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "quickdiff")
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, ".config", "quickdiff")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "quickdiff")
		}
		return filepath.Join(home, ".config", "quickdiff")
	default: // linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "quickdiff")
		}
		return filepath.Join(home, ".config", "quickdiff")
	}
}

// Load reads the config file, returning defaults for missing fields.
func Load() (*Config, error) {
	configPath := filepath.Join(DefaultConfigDir(), "config.json")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

// Save writes the config to disk, atomically via a tmp-file rename.
func Save(cfg *Config) error {
	dir := DefaultConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	configPath := filepath.Join(dir, "config.json")
	tmpPath := configPath + ".tmp"

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	if err := os.Rename(tmpPath, configPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename config: %w", err)
	}

	return nil
}

// StateFilePath returns the path to the cross-repo ViewedStore state
// file, kept alongside config.json in the same app directory.
func StateFilePath() string {
	return filepath.Join(DefaultConfigDir(), "state.json")
}

// WatchDebounceDuration returns the configured watcher debounce as a
// time.Duration.
func (c *Config) WatchDebounceDuration() time.Duration {
	return time.Duration(c.WatchDebounceMs) * time.Millisecond
}

func defaults() *Config {
	return &Config{
		Theme:           DefaultTheme,
		ContextLines:    DefaultContextLines,
		WatchDebounceMs: DefaultWatchDebounceMs,
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Theme == "" {
		cfg.Theme = DefaultTheme
	}
	if cfg.ContextLines == 0 {
		cfg.ContextLines = DefaultContextLines
	}
	if cfg.WatchDebounceMs == 0 {
		cfg.WatchDebounceMs = DefaultWatchDebounceMs
	}
}
