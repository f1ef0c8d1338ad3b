// Package config handles extraction settings loading and management.
package config

import (
	"fmt"
	"strings"
	"time"
)

// Config holds all tool settings.
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Palette PaletteConfig `yaml:"palette"`
	Decode  DecodeConfig  `yaml:"decode"`
	Preview PreviewConfig `yaml:"preview"`
	Watch   WatchConfig   `yaml:"watch"`
	Logging LoggingConfig `yaml:"logging"`
}

// OutputConfig holds where and what extraction writes.
type OutputConfig struct {
	Dir      string `yaml:"dir"`      // empty writes next to the input
	Manifest bool   `yaml:"manifest"` // write <base>.manifest.toml
}

// PaletteConfig selects the palette used for skins.
type PaletteConfig struct {
	// Path is a .lmp/raw file, a paletted image, or pak:<archive>:<entry>.
	// Empty uses the built-in Quake palette.
	Path string `yaml:"path"`
}

// DecodeConfig holds model decoding settings.
type DecodeConfig struct {
	GroupCountOrder string `yaml:"group_count_order"` // "little" or "big"
	MaxGroupFrames  int    `yaml:"max_group_frames"`
	NameCharset     string `yaml:"name_charset"` // raw, cp437, latin1, cp1252
}

// PreviewConfig holds optional skin preview settings.
type PreviewConfig struct {
	Format string `yaml:"format"` // "", png, webp or tga
	Scale  int    `yaml:"scale"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:      "",
			Manifest: false,
		},
		Decode: DecodeConfig{
			GroupCountOrder: "little",
			MaxGroupFrames:  10000,
			NameCharset:     "cp437",
		},
		Preview: PreviewConfig{
			Format: "",
			Scale:  1,
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Validate checks values that cannot be caught by YAML decoding.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Decode.GroupCountOrder) {
	case "little", "big":
	default:
		return fmt.Errorf("decode.group_count_order: %q is not little or big", c.Decode.GroupCountOrder)
	}
	if c.Decode.MaxGroupFrames <= 0 {
		return fmt.Errorf("decode.max_group_frames must be positive, got %d", c.Decode.MaxGroupFrames)
	}
	switch strings.ToLower(c.Preview.Format) {
	case "", "png", "webp", "tga":
	default:
		return fmt.Errorf("preview.format: unsupported %q", c.Preview.Format)
	}
	if c.Preview.Scale < 1 {
		return fmt.Errorf("preview.scale must be at least 1, got %d", c.Preview.Scale)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative, got %v", c.Watch.Debounce)
	}
	return nil
}
