package config

import "flag"

// Flags holds the settings flags bound to one subcommand's flag set.
type Flags struct {
	fs *flag.FlagSet

	config   *string
	output   *string
	palette  *string
	preview  *string
	scale    *int
	manifest *bool
	debug    *bool
	logFile  *string
}

// BindFlags registers the shared settings flags on fs. Call before fs.Parse.
func BindFlags(fs *flag.FlagSet) *Flags {
	return &Flags{
		fs:       fs,
		config:   fs.String("config", "", "Path to config file"),
		output:   fs.String("o", "", "Output directory (default: next to the input)"),
		palette:  fs.String("palette", "", "Palette file (.lmp, image, or pak:<archive>:<entry>)"),
		preview:  fs.String("preview", "", "Also write skin previews: png, webp or tga"),
		scale:    fs.Int("scale", 0, "Preview scale factor"),
		manifest: fs.Bool("manifest", false, "Write a TOML manifest of the run"),
		debug:    fs.Bool("debug", false, "Enable debug logging"),
		logFile:  fs.String("log-file", "", "Also log to this file (rotated)"),
	}
}

// ConfigPath returns the explicit config path if provided via -config.
func (f *Flags) ConfigPath() string {
	if f == nil {
		return ""
	}
	return *f.config
}

// set reports whether the named flag was given on the command line.
func (f *Flags) set(name string) bool {
	found := false
	f.fs.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f == nil {
		return
	}
	if *f.output != "" {
		cfg.Output.Dir = *f.output
	}
	if *f.palette != "" {
		cfg.Palette.Path = *f.palette
	}
	if *f.preview != "" {
		cfg.Preview.Format = *f.preview
	}
	if *f.scale > 0 {
		cfg.Preview.Scale = *f.scale
	}
	if f.set("manifest") {
		cfg.Output.Manifest = *f.manifest
	}
	if *f.debug {
		cfg.Logging.Level = "debug"
	}
	if *f.logFile != "" {
		cfg.Logging.LogFile = *f.logFile
	}
}
