package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Faultbox/polyextract/internal/preview"
	"github.com/Faultbox/polyextract/pkg/formats"
)

// Namer derives output paths from the input name. Paths depend only on the
// skin index, or the logical frame index and sub-index, so they never
// collide within one model.
type Namer struct {
	Dir  string
	Base string
}

// NewNamer returns a Namer for input. An empty dir places outputs next to the input.
func NewNamer(dir, input string) Namer {
	input = filepath.FromSlash(input)
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return Namer{Dir: dir, Base: base}
}

func (n Namer) path(suffix string) string {
	return filepath.Join(n.Dir, n.Base+suffix)
}

// Skin returns <dir>/<base>_skin<i>.lbm.
func (n Namer) Skin(i int) string {
	return n.path(fmt.Sprintf("_skin%d.lbm", i))
}

// SkinPreview returns <dir>/<base>_skin<i>.<ext>.
func (n Namer) SkinPreview(i int, f preview.Format) string {
	return n.path(fmt.Sprintf("_skin%d%s", i, f.Ext()))
}

// Frame returns <dir>/<base>_frame<i>.tri for single frames and
// <dir>/<base>_frame<i>_sub<j>.tri for members of a group.
func (n Namer) Frame(f *formats.Frame) string {
	if f.Kind == formats.FrameGroup {
		return n.path(fmt.Sprintf("_frame%d_sub%d.tri", f.Index, f.SubIndex))
	}
	return n.path(fmt.Sprintf("_frame%d.tri", f.Index))
}

// Manifest returns <dir>/<base>.manifest.toml.
func (n Namer) Manifest() string {
	return n.path(".manifest.toml")
}
