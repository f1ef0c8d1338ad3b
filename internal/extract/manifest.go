package extract

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/Faultbox/polyextract/pkg/formats"
)

// Manifest summarizes one extraction run.
type Manifest struct {
	RunID   string        `toml:"run_id"`
	Input   string        `toml:"input"`
	Created time.Time     `toml:"created"`
	Model   ManifestModel `toml:"model"`
	Skins   []SkinOutput  `toml:"skins"`
	Frames  []FrameOutput `toml:"frames"`
}

// ManifestModel is the header as recorded in a manifest.
type ManifestModel struct {
	Version         int32      `toml:"version"`
	Scale           [3]float32 `toml:"scale"`
	ScaleOrigin     [3]float32 `toml:"scale_origin"`
	BoundingRadius  float32    `toml:"bounding_radius"`
	EyePosition     [3]float32 `toml:"eye_position"`
	SkinCount       int32      `toml:"skin_count"`
	SkinWidth       int32      `toml:"skin_width"`
	SkinHeight      int32      `toml:"skin_height"`
	VertexCount     int32      `toml:"vertex_count"`
	TriangleCount   int32      `toml:"triangle_count"`
	FrameCount      int32      `toml:"frame_count"`
	FinalFrameIndex int        `toml:"final_frame_index"`
	SyncType        string     `toml:"sync_type"`
	Flags           int32      `toml:"flags"`
	Size            float32    `toml:"size"`
}

// NewManifest builds the manifest of a finished run.
func NewManifest(res *Result) *Manifest {
	h := res.Header
	return &Manifest{
		RunID:   res.RunID.String(),
		Input:   res.Input,
		Created: time.Now().UTC().Truncate(time.Second),
		Model: ManifestModel{
			Version:         h.Version,
			Scale:           h.Scale,
			ScaleOrigin:     h.ScaleOrigin,
			BoundingRadius:  h.BoundingRadius,
			EyePosition:     h.EyePosition,
			SkinCount:       h.SkinCount,
			SkinWidth:       h.SkinWidth,
			SkinHeight:      h.SkinHeight,
			VertexCount:     h.VertexCount,
			TriangleCount:   h.TriangleCount,
			FrameCount:      h.FrameCount,
			FinalFrameIndex: res.FrameIndex,
			SyncType:        h.SyncType.String(),
			Flags:           h.Flags,
			Size:            h.Size,
		},
		Skins:  res.Skins,
		Frames: res.Frames,
	}
}

// WriteManifest writes m as TOML.
func WriteManifest(path string, m *Manifest) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", formats.ErrIOFailure, path, err)
	}
	if err := toml.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("%w: writing %s: %w", formats.ErrIOFailure, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", formats.ErrIOFailure, path, err)
	}
	return nil
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	m := &Manifest{}
	if err := toml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return m, nil
}
