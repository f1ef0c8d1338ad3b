// mdltool extracts skins and frames from Quake MDL models.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/polyextract/internal/assets"
	"github.com/Faultbox/polyextract/internal/config"
	"github.com/Faultbox/polyextract/internal/extract"
	"github.com/Faultbox/polyextract/internal/logger"
	"github.com/Faultbox/polyextract/internal/palette"
	"github.com/Faultbox/polyextract/internal/preview"
	"github.com/Faultbox/polyextract/internal/watch"
	"github.com/Faultbox/polyextract/pkg/formats"
	"github.com/Faultbox/polyextract/pkg/pak"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "extract", "x":
		cmdExtract(args)
	case "info":
		cmdInfo(args)
	case "verify":
		cmdVerify(args)
	case "pak":
		cmdPak(args)
	case "watch":
		cmdWatch(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`mdltool - Quake MDL model extractor

Usage:
  mdltool <command> [options]

Commands:
  extract [flags] <file.mdl>...        Write skins (.lbm) and frames (.tri)
  info [flags] <file.mdl>              Show header and frame table
  verify [flags] <file.lbm|file.tri>...
                                       Parse written outputs back
  pak list <file.pak> [pattern]        List archive entries
  pak extract [-o dir] <file.pak> <pattern>
                                       Copy archive entries to disk
  watch [flags] <dir>                  Re-extract models as they change
  config [flags] [-save]               Print (or save) effective settings

Inputs may name an archive entry as pak:<file.pak>:<entry>.

Examples:
  mdltool extract -o out progs/player.mdl
  mdltool extract -preview png -scale 4 pak:pak0.pak:progs/ogre.mdl
  mdltool pak list pak0.pak "*.mdl"
  mdltool watch -manifest ./models`)
}

func fatal(err error) {
	logger.Error("command failed", zap.Error(err))
	logger.Sync()
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// loadConfig parses args into fs and resolves settings and logging.
func loadConfig(fs *flag.FlagSet, args []string) *config.Config {
	flags := config.BindFlags(fs)
	fs.Parse(args)

	cfg, err := config.Load(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error: initializing logger: %v\n", err)
		os.Exit(1)
	}
	logger.Debug("config loaded",
		zap.String("output", cfg.Output.Dir),
		zap.String("palette", cfg.Palette.Path),
		zap.String("preview", cfg.Preview.Format),
	)
	return cfg
}

func sessionOptions(cfg *config.Config, archives *assets.Manager) (extract.Options, error) {
	decode, err := cfg.Decode.DecodeOptions()
	if err != nil {
		return extract.Options{}, err
	}
	pal, err := palette.LoadFrom(archives, cfg.Palette.Path)
	if err != nil {
		return extract.Options{}, err
	}
	format, err := preview.ParseFormat(cfg.Preview.Format)
	if err != nil {
		return extract.Options{}, err
	}
	return extract.Options{
		OutputDir:    cfg.Output.Dir,
		Palette:      pal,
		Decode:       decode,
		Preview:      format,
		PreviewScale: cfg.Preview.Scale,
		Manifest:     cfg.Output.Manifest,
		Logger:       logger.Named("extract"),
	}, nil
}

func cmdExtract(args []string) {
	fs := flag.NewFlagSet("extract", flag.ExitOnError)
	cfg := loadConfig(fs, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mdltool extract [flags] <file.mdl>...")
		os.Exit(1)
	}

	archives := assets.NewManager()
	defer archives.Close()

	opts, err := sessionOptions(cfg, archives)
	if err != nil {
		fatal(err)
	}
	session := extract.NewSession(opts)

	for _, input := range fs.Args() {
		res, err := runInput(session, archives, input)
		if err != nil {
			fatal(fmt.Errorf("%s: %w", input, err))
		}
		for _, path := range res.Files() {
			fmt.Printf("Wrote: %s\n", path)
		}
		logger.Info("model extracted",
			zap.String("input", input),
			zap.Int("skins", len(res.Skins)),
			zap.Int("frames", len(res.Frames)),
		)
	}
}

// runInput extracts a file on disk or a pak:<archive>:<entry> member.
func runInput(session *extract.Session, archives *assets.Manager, input string) (*extract.Result, error) {
	if !assets.IsRef(input) {
		return session.RunFile(input)
	}
	r, entry, err := archives.Open(input)
	if err != nil {
		return nil, err
	}
	return session.Run(entry, r)
}

func cmdInfo(args []string) {
	fs := flag.NewFlagSet("info", flag.ExitOnError)
	cfg := loadConfig(fs, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mdltool info [flags] <file.mdl>")
		os.Exit(1)
	}

	opts, err := cfg.Decode.DecodeOptions()
	if err != nil {
		fatal(err)
	}
	m, err := formats.DecodeFile(fs.Arg(0), opts)
	if err != nil {
		fatal(err)
	}

	h := m.Header
	fmt.Printf("Model:     %s\n", fs.Arg(0))
	fmt.Printf("Version:   %d\n", h.Version)
	fmt.Printf("Scale:     %v\n", h.Scale)
	fmt.Printf("Origin:    %v\n", h.ScaleOrigin)
	fmt.Printf("Radius:    %g\n", h.BoundingRadius)
	fmt.Printf("Eye:       %v\n", h.EyePosition)
	fmt.Printf("Skins:     %d (%dx%d)\n", h.SkinCount, h.SkinWidth, h.SkinHeight)
	fmt.Printf("Vertices:  %d\n", h.VertexCount)
	fmt.Printf("Triangles: %d\n", h.TriangleCount)
	fmt.Printf("Frames:    %d declared, counter ended at %d\n", h.FrameCount, m.FrameIndex)
	fmt.Printf("Sync:      %s\n", h.SyncType)
	fmt.Printf("Flags:     0x%x\n", h.Flags)
	fmt.Println()

	for _, s := range m.Skins {
		fmt.Printf("  skin %-4d %s\n", s.Index, s.Kind)
	}
	for _, f := range m.Frames {
		switch f.Kind {
		case formats.FrameGroup:
			fmt.Printf("  frame %-3d sub %-3d %-16s interval %g\n", f.Index, f.SubIndex, f.Name, f.Group.Intervals[f.SubIndex])
		default:
			fmt.Printf("  frame %-11d %s\n", f.Index, f.Name)
		}
	}
}

func cmdVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	loadConfig(fs, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mdltool verify [flags] <file.lbm|file.tri>...")
		os.Exit(1)
	}

	failed := 0
	for _, path := range fs.Args() {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".lbm":
			img, err := formats.ParseLBMFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
				failed++
				continue
			}
			fmt.Printf("OK   %s: %dx%d, %d pixels\n", path, img.Header.Width, img.Header.Height, len(img.Pixels))
		case ".tri":
			tf, err := formats.ParseTriFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", path, err)
				failed++
				continue
			}
			for _, obj := range tf.Objects {
				fmt.Printf("OK   %s: %s, %d triangles\n", path, obj.Name, len(obj.Triangles))
			}
		default:
			logger.Warn("skipping file that is neither .lbm nor .tri", zap.String("path", path))
		}
	}

	if failed > 0 {
		fmt.Fprintf(os.Stderr, "\n%d of %d files failed\n", failed, fs.NArg())
		os.Exit(1)
	}
}

func cmdPak(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mdltool pak <list|extract> ...")
		os.Exit(1)
	}
	switch args[0] {
	case "list", "ls":
		cmdPakList(args[1:])
	case "extract", "x":
		cmdPakExtract(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown pak command: %s\n", args[0])
		os.Exit(1)
	}
}

// matchEntry reports whether an archive entry matches a glob on its base
// name or contains pattern as a substring. Matching ignores case.
func matchEntry(entry, pattern string) bool {
	if pattern == "" {
		return true
	}
	pattern = strings.ToLower(pattern)
	entry = strings.ToLower(entry)
	if matched, _ := filepath.Match(pattern, filepath.Base(entry)); matched {
		return true
	}
	return strings.Contains(entry, pattern)
}

func cmdPakList(args []string) {
	fs := flag.NewFlagSet("pak list", flag.ExitOnError)
	limit := fs.Int("n", 0, "Limit output to N entries (0 = all)")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mdltool pak list <file.pak> [pattern]")
		os.Exit(1)
	}

	archive, err := pak.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer archive.Close()

	count := 0
	for _, name := range archive.List() {
		if !matchEntry(name, fs.Arg(1)) {
			continue
		}
		e, _ := archive.Entry(name)
		fmt.Printf("%10d  %s\n", e.Size, name)
		count++
		if *limit > 0 && count >= *limit {
			break
		}
	}
	fmt.Fprintf(os.Stderr, "\n(%d entries)\n", count)
}

func cmdPakExtract(args []string) {
	fs := flag.NewFlagSet("pak extract", flag.ExitOnError)
	outputDir := fs.String("o", ".", "Output directory")
	fs.Parse(args)

	if fs.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Usage: mdltool pak extract [-o dir] <file.pak> <pattern>")
		os.Exit(1)
	}

	archive, err := pak.Open(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer archive.Close()

	extracted := 0
	for _, name := range archive.List() {
		if !matchEntry(name, fs.Arg(1)) {
			continue
		}

		data, err := archive.Read(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", name, err)
			continue
		}

		// Preserve directory structure
		outputPath := filepath.Join(*outputDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
			continue
		}
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outputPath, err)
			continue
		}

		fmt.Printf("Extracted: %s (%d bytes)\n", outputPath, len(data))
		extracted++
	}

	fmt.Fprintf(os.Stderr, "\nExtracted %d files\n", extracted)
}

func cmdWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	cfg := loadConfig(fs, args)
	defer logger.Sync()

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: mdltool watch [flags] <dir>")
		os.Exit(1)
	}

	archives := assets.NewManager()
	defer archives.Close()

	opts, err := sessionOptions(cfg, archives)
	if err != nil {
		fatal(err)
	}
	session := extract.NewSession(opts)

	handler := func(path string) error {
		res, err := session.RunFile(path)
		if err != nil {
			return err
		}
		logger.Sugar.Infof("re-extracted %s: %d files", path, len(res.Files()))
		return nil
	}

	w, err := watch.New(fs.Arg(0), cfg.Watch.Debounce, handler, logger.Named("watch"))
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); err != nil {
		fatal(err)
	}
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	save := fs.Bool("save", false, "Save the effective settings to the user config file")
	cfg := loadConfig(fs, args)
	defer logger.Sync()

	if *save {
		if err := cfg.Save(); err != nil {
			fatal(err)
		}
		logger.Info("saved config", zap.String("path", filepath.Join(config.ConfigDir(), "config.yaml")))
	}

	out, err := yaml.Marshal(cfg)
	if err != nil {
		fatal(err)
	}
	fmt.Print(string(out))
}
