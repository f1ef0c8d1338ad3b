package config

import (
	"encoding/binary"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test output defaults
	if cfg.Output.Dir != "" {
		t.Errorf("expected empty output dir, got %s", cfg.Output.Dir)
	}
	if cfg.Output.Manifest {
		t.Error("expected manifest to be false by default")
	}

	// Test decode defaults
	if cfg.Decode.GroupCountOrder != "little" {
		t.Errorf("expected group count order 'little', got %s", cfg.Decode.GroupCountOrder)
	}
	if cfg.Decode.MaxGroupFrames != 10000 {
		t.Errorf("expected max group frames 10000, got %d", cfg.Decode.MaxGroupFrames)
	}
	if cfg.Decode.NameCharset != "cp437" {
		t.Errorf("expected name charset 'cp437', got %s", cfg.Decode.NameCharset)
	}

	// Test preview and watch defaults
	if cfg.Preview.Format != "" || cfg.Preview.Scale != 1 {
		t.Errorf("expected no preview at scale 1, got %q x%d", cfg.Preview.Format, cfg.Preview.Scale)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce 500ms, got %v", cfg.Watch.Debounce)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
output:
  dir: "out"
  manifest: true

palette:
  path: "pak:id1/pak0.pak:gfx/palette.lmp"

decode:
  group_count_order: big
  max_group_frames: 64
  name_charset: latin1

preview:
  format: webp
  scale: 4

watch:
  debounce: 2s

logging:
  level: "debug"
  log_file: "mdltool.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Output.Dir != "out" || !cfg.Output.Manifest {
		t.Errorf("unexpected output section: %+v", cfg.Output)
	}
	if cfg.Palette.Path != "pak:id1/pak0.pak:gfx/palette.lmp" {
		t.Errorf("expected pak palette path, got %s", cfg.Palette.Path)
	}
	if cfg.Decode.GroupCountOrder != "big" {
		t.Errorf("expected group count order 'big', got %s", cfg.Decode.GroupCountOrder)
	}
	if cfg.Decode.MaxGroupFrames != 64 {
		t.Errorf("expected max group frames 64, got %d", cfg.Decode.MaxGroupFrames)
	}
	if cfg.Preview.Format != "webp" || cfg.Preview.Scale != 4 {
		t.Errorf("unexpected preview section: %+v", cfg.Preview)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "mdltool.log" {
		t.Errorf("expected log file 'mdltool.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
preview:
  scale: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"byte order", func(c *Config) { c.Decode.GroupCountOrder = "middle" }},
		{"max group frames", func(c *Config) { c.Decode.MaxGroupFrames = 0 }},
		{"preview format", func(c *Config) { c.Preview.Format = "bmp" }},
		{"preview scale", func(c *Config) { c.Preview.Scale = 0 }},
		{"debounce", func(c *Config) { c.Watch.Debounce = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestDecodeOptions(t *testing.T) {
	cfg := Default()
	opts, err := cfg.Decode.DecodeOptions()
	if err != nil {
		t.Fatalf("DecodeOptions failed: %v", err)
	}
	if opts.GroupCountOrder != binary.LittleEndian {
		t.Errorf("expected little endian, got %v", opts.GroupCountOrder)
	}
	if opts.NameDecoder == nil {
		t.Fatal("expected a cp437 name decoder")
	}
	if got := opts.NameDecoder([]byte{'a', 0x82}); got != "aé" {
		t.Errorf("decoded name = %q", got)
	}

	cfg.Decode.GroupCountOrder = "BIG"
	cfg.Decode.NameCharset = "raw"
	opts, err = cfg.Decode.DecodeOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.GroupCountOrder != binary.BigEndian || opts.NameDecoder != nil {
		t.Errorf("unexpected options: %v, decoder set %v", opts.GroupCountOrder, opts.NameDecoder != nil)
	}

	cfg.Decode.NameCharset = "klingon"
	if _, err := cfg.Decode.DecodeOptions(); err == nil {
		t.Error("expected error for unknown charset")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Keep the user's own config out of the search
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create mdltool.yaml in current directory
	configPath := filepath.Join(tmpDir, "mdltool.yaml")
	if err := os.WriteFile(configPath, []byte("preview:\n  scale: 2\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find mdltool.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(*testing.T, *Config)
	}{
		{
			name: "debug flag",
			args: []string{"-debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "output and palette flags",
			args: []string{"-o", "build", "-palette", "quake.lmp"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Output.Dir != "build" {
					t.Errorf("expected output dir 'build', got %s", cfg.Output.Dir)
				}
				if cfg.Palette.Path != "quake.lmp" {
					t.Errorf("expected palette 'quake.lmp', got %s", cfg.Palette.Path)
				}
			},
		},
		{
			name: "preview flags",
			args: []string{"-preview", "tga", "-scale", "3"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Preview.Format != "tga" || cfg.Preview.Scale != 3 {
					t.Errorf("unexpected preview section: %+v", cfg.Preview)
				}
			},
		},
		{
			name: "manifest flag",
			args: []string{"-manifest"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Output.Manifest {
					t.Error("expected manifest to be enabled")
				}
			},
		},
		{
			name: "log file flag",
			args: []string{"-log-file", "run.log"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.LogFile != "run.log" {
					t.Errorf("expected log file 'run.log', got %s", cfg.Logging.LogFile)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			flags := BindFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}

			// Apply flags to default config
			cfg := Default()
			flags.apply(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestApplyFlagsManifestOff(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"-manifest=false"}); err != nil {
		t.Fatal(err)
	}

	cfg := Default()
	cfg.Output.Manifest = true // as if set by the config file
	flags.apply(cfg)
	if cfg.Output.Manifest {
		t.Error("explicit -manifest=false should override the file")
	}

	// Unset flag leaves the file value alone
	fs = flag.NewFlagSet("test", flag.ContinueOnError)
	flags = BindFlags(fs)
	fs.Parse(nil)
	cfg.Output.Manifest = true
	flags.apply(cfg)
	if !cfg.Output.Manifest {
		t.Error("unset -manifest changed the file value")
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
preview:
  format: png
  scale: 2
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"-config", configPath, "-scale", "8"}); err != nil {
		t.Fatal(err)
	}

	// Load config
	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Scale should be from flag (8), not file (2)
	if cfg.Preview.Scale != 8 {
		t.Errorf("expected scale 8 from flag, got %d", cfg.Preview.Scale)
	}

	// Format should be from file since no flag override
	if cfg.Preview.Format != "png" {
		t.Errorf("expected format png from file, got %s", cfg.Preview.Format)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("preview:\n  format: gif\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	flags := BindFlags(fs)
	fs.Parse([]string{"-config", configPath})

	if _, err := Load(flags); err == nil {
		t.Error("expected validation error for gif previews")
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Preview.Format = "tga"
	cfg.Watch.Debounce = 750 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("reloading saved config: %v", err)
	}
	if loaded.Preview.Format != "tga" || loaded.Watch.Debounce != 750*time.Millisecond {
		t.Errorf("saved config did not round trip: %+v %+v", loaded.Preview, loaded.Watch)
	}
}

func TestSave(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir follows XDG_CONFIG_HOME only on Linux and others")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	if err := Default().Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(ConfigDir(), "config.yaml")); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}
