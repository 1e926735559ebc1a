package config

import (
	"runtime"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := defaults()
	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want %q", cfg.Theme, DefaultTheme)
	}
	if cfg.ContextLines != DefaultContextLines {
		t.Errorf("ContextLines = %d, want %d", cfg.ContextLines, DefaultContextLines)
	}
	if cfg.WatchDebounceMs != DefaultWatchDebounceMs {
		t.Errorf("WatchDebounceMs = %d, want %d", cfg.WatchDebounceMs, DefaultWatchDebounceMs)
	}
}

func TestApplyDefaults(t *testing.T) {
	t.Run("fills zero values", func(t *testing.T) {
		cfg := &Config{}
		applyDefaults(cfg)
		if cfg.Theme != DefaultTheme {
			t.Errorf("Theme = %q, want %q", cfg.Theme, DefaultTheme)
		}
		if cfg.ContextLines != DefaultContextLines {
			t.Errorf("ContextLines = %d, want %d", cfg.ContextLines, DefaultContextLines)
		}
		if cfg.WatchDebounceMs != DefaultWatchDebounceMs {
			t.Errorf("WatchDebounceMs = %d, want %d", cfg.WatchDebounceMs, DefaultWatchDebounceMs)
		}
	})

	t.Run("preserves non-zero values", func(t *testing.T) {
		cfg := &Config{Theme: "github", ContextLines: 5, WatchDebounceMs: 500}
		applyDefaults(cfg)
		if cfg.Theme != "github" {
			t.Errorf("Theme = %q, want github", cfg.Theme)
		}
		if cfg.ContextLines != 5 {
			t.Errorf("ContextLines = %d, want 5", cfg.ContextLines)
		}
		if cfg.WatchDebounceMs != 500 {
			t.Errorf("WatchDebounceMs = %d, want 500", cfg.WatchDebounceMs)
		}
	})
}

func TestWatchDebounceDuration(t *testing.T) {
	cfg := &Config{WatchDebounceMs: 200}
	got := cfg.WatchDebounceDuration()
	want := 200 * time.Millisecond
	if got != want {
		t.Errorf("WatchDebounceDuration() = %v, want %v", got, want)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{Theme: "github", ContextLines: 4, WatchDebounceMs: 150}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme = %q, want %q", cfg.Theme, DefaultTheme)
	}
}

func TestDefaultConfigDir_UsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	dir := DefaultConfigDir()
	if runtime.GOOS != "windows" && runtime.GOOS != "darwin" && dir != "/tmp/xdg-test/quickdiff" {
		t.Errorf("DefaultConfigDir() = %q, want /tmp/xdg-test/quickdiff", dir)
	}
}
