package formats

import (
	"errors"
	"fmt"
	"image/color"
)

// PaletteSize is the byte size of a 256-entry RGB palette.
const PaletteSize = 256 * 3

// ErrInvalidPalette is returned for palette data of the wrong size.
var ErrInvalidPalette = errors.New("invalid palette")

// Palette is 256 RGB triples, the layout of Quake's palette.lmp and of an
// IFF CMAP chunk.
type Palette [PaletteSize]byte

// ParsePalette reads a raw 768-byte palette. Trailing bytes (some tools
// append an alpha or count footer) are ignored.
func ParsePalette(data []byte) (*Palette, error) {
	if len(data) < PaletteSize {
		return nil, fmt.Errorf("%w: %d bytes, need %d", ErrInvalidPalette, len(data), PaletteSize)
	}
	p := &Palette{}
	copy(p[:], data)
	return p, nil
}

// RGB returns entry i.
func (p *Palette) RGB(i uint8) color.RGBA {
	o := int(i) * 3
	return color.RGBA{R: p[o], G: p[o+1], B: p[o+2], A: 255}
}

// ColorPalette converts to an image/color palette, e.g. for image.Paletted.
func (p *Palette) ColorPalette() color.Palette {
	out := make(color.Palette, 256)
	for i := range out {
		out[i] = p.RGB(uint8(i))
	}
	return out
}

// PaletteFromColors builds a palette from up to 256 colors; missing entries
// stay black.
func PaletteFromColors(colors color.Palette) *Palette {
	p := &Palette{}
	for i, c := range colors {
		if i >= 256 {
			break
		}
		r, g, b, _ := c.RGBA()
		p[i*3] = uint8(r >> 8)
		p[i*3+1] = uint8(g >> 8)
		p[i*3+2] = uint8(b >> 8)
	}
	return p
}
