// Package extract drives one model through decoding and re-encoding.
package extract

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/polyextract/internal/palette"
	"github.com/Faultbox/polyextract/internal/preview"
	"github.com/Faultbox/polyextract/pkg/formats"
)

// State is a session's position in the pipeline.
type State int

const (
	StateStart State = iota
	StateHeaderRead
	StateSkinsEmitted
	StateTopologyRead
	StateFrameEmitted
	StateDone
	StateFailed
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateStart:
		return "Start"
	case StateHeaderRead:
		return "HeaderRead"
	case StateSkinsEmitted:
		return "SkinsEmitted"
	case StateTopologyRead:
		return "TopologyRead"
	case StateFrameEmitted:
		return "FrameEmitted"
	case StateDone:
		return "Done"
	case StateFailed:
		return "Failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Options configures a session.
type Options struct {
	OutputDir    string           // empty writes next to the input
	Palette      *formats.Palette // nil uses the built-in Quake palette
	Decode       formats.DecodeOptions
	Preview      preview.Format // FormatNone skips previews
	PreviewScale int
	Manifest     bool
	Logger       *zap.Logger // nil discards logs
}

// SkinOutput records one written skin.
type SkinOutput struct {
	Index   int    `toml:"index"`
	Kind    string `toml:"kind"`
	Path    string `toml:"path"`
	Preview string `toml:"preview,omitempty"`
}

// FrameOutput records one written frame.
type FrameOutput struct {
	Index     int        `toml:"index"`
	SubIndex  int        `toml:"sub_index"`
	Kind      string     `toml:"kind"`
	Name      string     `toml:"name"`
	Path      string     `toml:"path"`
	Interval  float32    `toml:"interval,omitempty"`
	Triangles int        `toml:"triangles"`
	BoundsMin [3]float32 `toml:"bounds_min"`
	BoundsMax [3]float32 `toml:"bounds_max"`
}

// Result summarizes a finished run.
type Result struct {
	RunID      uuid.UUID
	Input      string
	Header     *formats.Header
	Skins      []SkinOutput
	Frames     []FrameOutput
	FrameIndex int    // final logical frame counter
	Manifest   string // manifest path, if one was written
}

// Files returns every path the run wrote, in write order.
func (r *Result) Files() []string {
	var files []string
	for _, s := range r.Skins {
		files = append(files, s.Path)
		if s.Preview != "" {
			files = append(files, s.Preview)
		}
	}
	for _, f := range r.Frames {
		files = append(files, f.Path)
	}
	if r.Manifest != "" {
		files = append(files, r.Manifest)
	}
	return files
}

// Session extracts models one at a time. It is not safe for concurrent use.
type Session struct {
	opts  Options
	log   *zap.Logger
	state State
}

// NewSession returns a session ready to run.
func NewSession(opts Options) *Session {
	if opts.Palette == nil {
		opts.Palette = palette.Quake()
	}
	if opts.PreviewScale < 1 {
		opts.PreviewScale = 1
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{opts: opts, log: log}
}

// State returns the state reached by the last run.
func (s *Session) State() State {
	return s.state
}

// RunFile extracts the model stored at path.
func (s *Session) RunFile(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		s.state = StateFailed
		return nil, fmt.Errorf("opening model: %w", err)
	}
	defer f.Close()

	return s.Run(path, bufio.NewReader(f))
}

// Run extracts the model read from r. name derives the output names.
// Any error aborts the run; files written before it are left in place.
func (s *Session) Run(name string, r io.Reader) (res *Result, err error) {
	start := time.Now()
	s.state = StateStart
	res = &Result{RunID: uuid.New(), Input: name}
	log := s.log.With(zap.String("input", name), zap.Stringer("run_id", res.RunID))

	defer func() {
		if err != nil {
			log.Debug("session failed", zap.Stringer("state", s.state), zap.Error(err))
			s.state = StateFailed
		}
	}()

	namer := NewNamer(s.opts.OutputDir, name)
	if err := os.MkdirAll(namer.Dir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating output directory: %w", formats.ErrIOFailure, err)
	}

	dec := formats.NewDecoder(r, s.opts.Decode)
	header, err := dec.ReadHeader()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	res.Header = header
	s.state = StateHeaderRead
	log.Info("model header",
		zap.Int32("skins", header.SkinCount),
		zap.String("skin_size", fmt.Sprintf("%dx%d", header.SkinWidth, header.SkinHeight)),
		zap.Int32("vertices", header.VertexCount),
		zap.Int32("triangles", header.TriangleCount),
		zap.Int32("frames", header.FrameCount),
		zap.Stringer("sync", header.SyncType),
	)

	if err := s.emitSkins(dec, namer, res, log); err != nil {
		return nil, err
	}
	s.state = StateSkinsEmitted

	topo, err := dec.ReadTopology()
	if err != nil {
		return nil, fmt.Errorf("reading topology: %w", err)
	}
	s.state = StateTopologyRead
	log.Debug("topology read", zap.Int64("offset", dec.Offset()))

	if err := s.emitFrames(dec, topo, namer, res, log); err != nil {
		return nil, err
	}

	res.FrameIndex = dec.FrameIndex()
	if res.FrameIndex > int(header.FrameCount) {
		log.Warn("frame groups overshoot the declared frame count",
			zap.Int("frame_index", res.FrameIndex),
			zap.Int32("frame_count", header.FrameCount),
		)
	}

	if s.opts.Manifest {
		path := namer.Manifest()
		if err := WriteManifest(path, NewManifest(res)); err != nil {
			return nil, err
		}
		res.Manifest = path
		log.Debug("wrote manifest", zap.String("path", path))
	}

	s.state = StateDone
	log.Info("extraction complete",
		zap.Int("skins", len(res.Skins)),
		zap.Int("frames", len(res.Frames)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

// emitSkins writes each skin before the next one is read.
func (s *Session) emitSkins(dec *formats.Decoder, namer Namer, res *Result, log *zap.Logger) error {
	h := dec.Header()
	for {
		skin, err := dec.NextSkin()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading skin %d: %w", len(res.Skins), err)
		}

		out := SkinOutput{Index: skin.Index, Kind: skin.Kind.String(), Path: namer.Skin(skin.Index)}
		if err := formats.WriteLBMFile(out.Path, skin.Pixels, int(h.SkinWidth), int(h.SkinHeight), s.opts.Palette); err != nil {
			return fmt.Errorf("skin %d: %w", skin.Index, err)
		}
		log.Debug("wrote skin", zap.Int("skin", skin.Index), zap.Stringer("kind", skin.Kind), zap.String("path", out.Path))

		if s.opts.Preview != preview.FormatNone {
			out.Preview = namer.SkinPreview(skin.Index, s.opts.Preview)
			err := preview.Write(out.Preview, s.opts.Preview, skin.Pixels, int(h.SkinWidth), int(h.SkinHeight), s.opts.Palette, s.opts.PreviewScale)
			if err != nil {
				return fmt.Errorf("skin %d preview: %w", skin.Index, err)
			}
			log.Debug("wrote preview", zap.Int("skin", skin.Index), zap.String("path", out.Preview))
		}

		res.Skins = append(res.Skins, out)
	}
}

// emitFrames reconstructs and writes each frame before the next one is read.
func (s *Session) emitFrames(dec *formats.Decoder, topo *formats.Topology, namer Namer, res *Result, log *zap.Logger) error {
	h := dec.Header()
	for {
		frame, err := dec.NextFrame()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading frames: %w", err)
		}

		tris, err := formats.Reconstruct(frame.Vertices, topo.Triangles, h.Scale, h.ScaleOrigin)
		if err != nil {
			return fmt.Errorf("frame %d sub %d: %w", frame.Index, frame.SubIndex, err)
		}

		out := FrameOutput{
			Index:     frame.Index,
			SubIndex:  frame.SubIndex,
			Kind:      frame.Kind.String(),
			Name:      frame.Name,
			Path:      namer.Frame(frame),
			Triangles: len(tris),
		}
		if frame.Group != nil {
			out.Interval = frame.Group.Intervals[frame.SubIndex]
		}
		lo, hi := formats.Bounds(tris)
		out.BoundsMin, out.BoundsMax = lo, hi

		if err := formats.WriteTriFile(out.Path, tris); err != nil {
			return fmt.Errorf("frame %d sub %d: %w", frame.Index, frame.SubIndex, err)
		}
		s.state = StateFrameEmitted
		log.Debug("wrote frame",
			zap.Int("frame", frame.Index),
			zap.Int("sub", frame.SubIndex),
			zap.String("name", frame.Name),
			zap.String("path", out.Path),
		)

		res.Frames = append(res.Frames, out)
	}
}
