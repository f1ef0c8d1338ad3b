// Package preview writes viewable copies of paletted skins.
package preview

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	xdraw "golang.org/x/image/draw"

	"github.com/Faultbox/polyextract/pkg/formats"
)

// Format is a preview image format.
type Format string

const (
	FormatNone Format = ""
	FormatPNG  Format = "png"
	FormatWebP Format = "webp"
	FormatTGA  Format = "tga"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatNone, FormatPNG, FormatWebP, FormatTGA:
		return f, nil
	default:
		return FormatNone, fmt.Errorf("unsupported preview format %q", s)
	}
}

// Ext returns the file extension including the dot.
func (f Format) Ext() string {
	if f == FormatNone {
		return ""
	}
	return "." + string(f)
}

// Image builds an RGBA image from palette indices, upscaled by scale with
// nearest-neighbor sampling so texels stay sharp.
func Image(pixels []byte, width, height int, pal *formats.Palette, scale int) (image.Image, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height {
		return nil, fmt.Errorf("%w: %d pixels for %dx%d", formats.ErrInvalidImageSize, len(pixels), width, height)
	}
	if pal == nil {
		return nil, fmt.Errorf("%w: nil palette", formats.ErrInvalidPalette)
	}

	src := image.NewPaletted(image.Rect(0, 0, width, height), pal.ColorPalette())
	copy(src.Pix, pixels)

	if scale <= 1 {
		rgba := image.NewRGBA(src.Bounds())
		xdraw.Draw(rgba, rgba.Bounds(), src, image.Point{}, xdraw.Src)
		return rgba, nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width*scale, height*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst, nil
}

// Encode writes img in the given format.
func Encode(w io.Writer, format Format, img image.Image) error {
	switch format {
	case FormatPNG:
		return png.Encode(w, img)
	case FormatWebP:
		return nativewebp.Encode(w, img, nil)
	case FormatTGA:
		return tga.Encode(w, img)
	default:
		return fmt.Errorf("unsupported preview format %q", format)
	}
}

// Write renders a skin and writes it to path.
func Write(path string, format Format, pixels []byte, width, height int, pal *formats.Palette, scale int) error {
	img, err := Image(pixels, width, height, pal, scale)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", formats.ErrIOFailure, path, err)
	}
	if err := Encode(f, format, img); err != nil {
		f.Close()
		return fmt.Errorf("%w: encoding %s: %w", formats.ErrIOFailure, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", formats.ErrIOFailure, path, err)
	}
	return nil
}
