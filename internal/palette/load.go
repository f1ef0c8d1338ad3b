// Package palette resolves the 256-color palette written into skins.
package palette

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/ftrvxmtrx/tga"

	"github.com/Faultbox/polyextract/internal/assets"
	"github.com/Faultbox/polyextract/pkg/formats"
)

// PakPrefix selects a palette stored inside a PAK archive:
// pak:<archive>:<entry>.
const PakPrefix = assets.RefPrefix

// ErrNotPaletted is returned for images without a color table.
var ErrNotPaletted = errors.New("image is not paletted")

// Load resolves a palette source. An empty source is the built-in Quake palette.
func Load(source string) (*formats.Palette, error) {
	m := assets.NewManager()
	defer m.Close()
	return LoadFrom(m, source)
}

// LoadFrom is Load with archive references resolved through m.
func LoadFrom(m *assets.Manager, source string) (*formats.Palette, error) {
	if source == "" {
		return Quake(), nil
	}
	if assets.IsRef(source) {
		data, err := m.Load(source)
		if err != nil {
			return nil, fmt.Errorf("reading palette: %w", err)
		}
		_, entry, _ := assets.ParseRef(source)
		return Parse(entry, data)
	}

	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("reading palette: %w", err)
	}
	return Parse(source, data)
}

// Parse decodes palette data, choosing the format by name's extension:
// raw 768-byte tables (.lmp, .pal, anything unknown), the CMAP of an .lbm,
// or the color table of a paletted PNG, GIF or TGA.
func Parse(name string, data []byte) (*formats.Palette, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".gif", ".tga":
		return fromImage(data)
	case ".lbm":
		img, err := formats.ParseLBM(data)
		if err != nil {
			return nil, err
		}
		if img.Palette == nil {
			return nil, fmt.Errorf("%w: LBM has no CMAP", formats.ErrInvalidPalette)
		}
		return img.Palette, nil
	default:
		return formats.ParsePalette(data)
	}
}

func fromImage(data []byte) (*formats.Palette, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding palette image: %w", err)
	}
	p, ok := img.(*image.Paletted)
	if !ok {
		return nil, fmt.Errorf("%w: %s decoded as %T", ErrNotPaletted, format, img)
	}
	return formats.PaletteFromColors(p.Palette), nil
}
