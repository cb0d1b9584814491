package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Exe != "jq" {
		t.Errorf("Exe = %q, want jq", cfg.Exe)
	}
	if cfg.DelayMs != 500 {
		t.Errorf("DelayMs = %d, want 500", cfg.DelayMs)
	}
	if cfg.ResizeStyle != "fit" {
		t.Errorf("ResizeStyle = %q, want fit", cfg.ResizeStyle)
	}
	if cfg.MinHeight <= 0 || cfg.MaxHeight < cfg.MinHeight {
		t.Errorf("bad default height bounds: %d..%d", cfg.MinHeight, cfg.MaxHeight)
	}
}

func TestLoadFromNonexistent(t *testing.T) {
	cfg := LoadFrom("/nonexistent/path/to/config.json")
	def := DefaultConfig()

	if cfg.Exe != def.Exe || cfg.DelayMs != def.DelayMs {
		t.Errorf("LoadFrom(nonexistent) = %+v, want defaults", cfg)
	}
}

func TestLoadFromValidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	data := `{"exe": "yq", "delay_ms": 250, "resize_style": "grow", "max_height": 30}`
	os.WriteFile(path, []byte(data), 0644)

	cfg := LoadFrom(path)
	if cfg.Exe != "yq" {
		t.Errorf("Exe = %q, want yq", cfg.Exe)
	}
	if cfg.DelayMs != 250 {
		t.Errorf("DelayMs = %d, want 250", cfg.DelayMs)
	}
	if cfg.ResizeStyle != "grow" {
		t.Errorf("ResizeStyle = %q, want grow", cfg.ResizeStyle)
	}
	if cfg.MaxHeight != 30 {
		t.Errorf("MaxHeight = %d, want 30", cfg.MaxHeight)
	}
	// Missing fields keep defaults.
	if cfg.MinHeight != DefaultConfig().MinHeight {
		t.Errorf("MinHeight = %d, want default %d", cfg.MinHeight, DefaultConfig().MinHeight)
	}
}

func TestLoadFromInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	os.WriteFile(path, []byte("{not json"), 0644)

	cfg := LoadFrom(path)
	if cfg.Exe != DefaultConfig().Exe {
		t.Errorf("invalid JSON should yield defaults, got %+v", cfg)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := DefaultConfig()
	cfg.Exe = "gojq"
	cfg.Color = true
	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	got := LoadFrom(path)
	if got.Exe != "gojq" {
		t.Errorf("Exe = %q, want gojq", got.Exe)
	}
	if !got.Color {
		t.Error("Color not persisted")
	}
}

func TestDelay(t *testing.T) {
	cfg := Config{DelayMs: 250}
	if cfg.Delay() != 250*time.Millisecond {
		t.Errorf("Delay() = %v, want 250ms", cfg.Delay())
	}
}
