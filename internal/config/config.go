package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// Config holds sift configuration.
type Config struct {
	// Exe is the filter executable substituted for {cmd}.
	Exe string `json:"exe,omitempty"`
	// Command is the command template used for each run.
	Command string `json:"command,omitempty"`
	// DelayMs is the debounce delay in milliseconds for unseen queries.
	DelayMs int `json:"delay_ms,omitempty"`
	// ResizeStyle is one of "fixed", "fit", "grow".
	ResizeStyle string `json:"resize_style,omitempty"`
	// MinHeight and MaxHeight bound the result panel height in rows.
	MinHeight int `json:"min_height,omitempty"`
	MaxHeight int `json:"max_height,omitempty"`
	// Surface is "panel" (bottom-anchored) or "overlay" (centered).
	Surface string `json:"surface,omitempty"`
	// Color interprets ANSI color codes in filter output.
	Color bool `json:"color,omitempty"`
	// Formats is the write-format cycle order for templates using {to}.
	Formats []string `json:"formats,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Exe:         "jq",
		Command:     "{cmd} {query} {input}",
		DelayMs:     500,
		ResizeStyle: "fit",
		MinHeight:   3,
		MaxHeight:   20,
		Surface:     "panel",
		Formats:     []string{"json", "yaml", "csv", "tsv", "xml"},
	}
}

// configPath returns the path to the config file.
func configPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".sift", "config.json")
}

// LoadFrom reads the config from the given path, or returns defaults if not found or invalid.
func LoadFrom(path string) Config {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	// Parse JSON, keeping defaults for missing fields
	var loaded Config
	if err := json.Unmarshal(data, &loaded); err != nil {
		return cfg
	}

	if loaded.Exe != "" {
		cfg.Exe = loaded.Exe
	}
	if loaded.Command != "" {
		cfg.Command = loaded.Command
	}
	if loaded.DelayMs > 0 {
		cfg.DelayMs = loaded.DelayMs
	}
	if loaded.ResizeStyle != "" {
		cfg.ResizeStyle = loaded.ResizeStyle
	}
	if loaded.MinHeight > 0 {
		cfg.MinHeight = loaded.MinHeight
	}
	if loaded.MaxHeight > 0 {
		cfg.MaxHeight = loaded.MaxHeight
	}
	if loaded.Surface != "" {
		cfg.Surface = loaded.Surface
	}
	cfg.Color = loaded.Color
	if len(loaded.Formats) > 0 {
		cfg.Formats = loaded.Formats
	}

	return cfg
}

// SaveTo writes the config to the given path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// Load reads the config from disk, or returns defaults if not found.
func Load() Config {
	return LoadFrom(configPath())
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveTo(configPath(), cfg)
}

// Delay returns the debounce delay as a duration.
func (c Config) Delay() time.Duration {
	return time.Duration(c.DelayMs) * time.Millisecond
}
