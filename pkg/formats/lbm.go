// Package formats provides codecs for Quake-era model assets.
// LBM (IFF FORM PBM) writer and reader for paletted skins.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
)

// LBM format errors.
var (
	ErrInvalidLBM       = errors.New("invalid LBM data")
	ErrInvalidImageSize = errors.New("invalid image dimensions")
	ErrIOFailure        = errors.New("output write failed")
)

// IFF chunk tags used by the PBM variant.
const (
	tagFORM = "FORM"
	tagPBM  = "PBM "
	tagBMHD = "BMHD"
	tagCMAP = "CMAP"
	tagBODY = "BODY"

	bmhdSize = 20
)

// Masking and compression modes of a BMHD chunk. Only "none" is written.
const (
	MaskNone     uint8 = 0
	CompressNone uint8 = 0
)

// BitmapHeader is the payload of a BMHD chunk.
type BitmapHeader struct {
	Width, Height         uint16
	X, Y                  int16
	Planes                uint8
	Masking               uint8
	Compression           uint8
	Pad                   uint8
	TransparentColor      uint16
	XAspect, YAspect      uint8
	PageWidth, PageHeight int16
}

// LBM is a decoded FORM PBM image.
type LBM struct {
	Header  BitmapHeader
	Palette *Palette
	Pixels  []byte // one palette index per pixel, row-major
}

// writeChunk appends tag, big-endian payload length, payload and the pad
// byte that keeps chunks word aligned.
func writeChunk(buf *bytes.Buffer, tag string, payload []byte) {
	buf.WriteString(tag)
	binary.Write(buf, binary.BigEndian, uint32(len(payload)))
	buf.Write(payload)
	if len(payload)&1 != 0 {
		buf.WriteByte(0)
	}
}

// EncodeLBM writes an uncompressed 8-bit FORM PBM image.
func EncodeLBM(w io.Writer, pixels []byte, width, height int, pal *Palette) error {
	if width <= 0 || height <= 0 || width > 0xFFFF || height > 0xFFFF {
		return fmt.Errorf("%w: %dx%d", ErrInvalidImageSize, width, height)
	}
	if len(pixels) != width*height {
		return fmt.Errorf("%w: %d pixel bytes for %dx%d", ErrInvalidImageSize, len(pixels), width, height)
	}
	if pal == nil {
		return fmt.Errorf("%w: nil palette", ErrInvalidPalette)
	}

	bmhd := BitmapHeader{
		Width:       uint16(width),
		Height:      uint16(height),
		Planes:      8,
		Masking:     MaskNone,
		Compression: CompressNone,
		XAspect:     5,
		YAspect:     6,
		PageWidth:   int16(width),
		PageHeight:  int16(height),
	}
	var hdr bytes.Buffer
	binary.Write(&hdr, binary.BigEndian, bmhd)

	var body bytes.Buffer
	body.Grow(4 + 3*8 + bmhdSize + PaletteSize + len(pixels) + 1)
	body.WriteString(tagPBM)
	writeChunk(&body, tagBMHD, hdr.Bytes())
	writeChunk(&body, tagCMAP, pal[:])
	writeChunk(&body, tagBODY, pixels)

	var form bytes.Buffer
	form.Grow(8 + body.Len())
	writeChunk(&form, tagFORM, body.Bytes())

	if _, err := w.Write(form.Bytes()); err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, err)
	}
	return nil
}

// WriteLBMFile creates or truncates path and writes the image to it. A
// failed write may leave a partial file behind.
func WriteLBMFile(path string, pixels []byte, width, height int, pal *Palette) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrIOFailure, path, err)
	}
	if err := EncodeLBM(f, pixels, width, height, pal); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrIOFailure, path, err)
	}
	return nil
}

// ParseLBM reads a FORM PBM image. Chunks other than BMHD, CMAP and BODY are
// skipped; compressed bodies are rejected.
func ParseLBM(data []byte) (*LBM, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("%w: %d bytes", ErrTruncatedInput, len(data))
	}
	if string(data[0:4]) != tagFORM {
		return nil, fmt.Errorf("%w: missing FORM tag", ErrInvalidLBM)
	}
	formLen := int(binary.BigEndian.Uint32(data[4:8]))
	if formLen < 4 {
		return nil, fmt.Errorf("%w: FORM length %d is shorter than its form type", ErrInvalidLBM, formLen)
	}
	if 8+formLen > len(data) {
		return nil, fmt.Errorf("%w: FORM length %d exceeds %d bytes", ErrTruncatedInput, formLen, len(data)-8)
	}
	if string(data[8:12]) != tagPBM {
		return nil, fmt.Errorf("%w: form type %q, expected %q", ErrInvalidLBM, data[8:12], tagPBM)
	}

	img := &LBM{}
	var haveHeader bool
	rest := data[12 : 8+formLen]
	for len(rest) > 0 {
		if len(rest) < 8 {
			return nil, fmt.Errorf("%w: dangling chunk header", ErrTruncatedInput)
		}
		tag := string(rest[0:4])
		size := int(binary.BigEndian.Uint32(rest[4:8]))
		if 8+size > len(rest) {
			return nil, fmt.Errorf("%w: chunk %s needs %d bytes", ErrTruncatedInput, tag, size)
		}
		payload := rest[8 : 8+size]

		switch tag {
		case tagBMHD:
			if size < bmhdSize {
				return nil, fmt.Errorf("%w: BMHD is %d bytes", ErrInvalidLBM, size)
			}
			binary.Read(bytes.NewReader(payload), binary.BigEndian, &img.Header)
			haveHeader = true
		case tagCMAP:
			pal, err := ParsePalette(payload)
			if err != nil {
				return nil, fmt.Errorf("reading CMAP: %w", err)
			}
			img.Palette = pal
		case tagBODY:
			if !haveHeader {
				return nil, fmt.Errorf("%w: BODY before BMHD", ErrInvalidLBM)
			}
			if img.Header.Compression != CompressNone {
				return nil, fmt.Errorf("%w: compression %d not supported", ErrInvalidLBM, img.Header.Compression)
			}
			want := int(img.Header.Width) * int(img.Header.Height)
			if size < want {
				return nil, fmt.Errorf("%w: BODY has %d bytes, need %d", ErrTruncatedInput, size, want)
			}
			img.Pixels = append([]byte(nil), payload[:want]...)
		}

		advance := 8 + size + size&1
		if advance > len(rest) {
			advance = len(rest)
		}
		rest = rest[advance:]
	}

	if !haveHeader || img.Pixels == nil {
		return nil, fmt.Errorf("%w: missing BMHD or BODY", ErrInvalidLBM)
	}
	return img, nil
}

// ParseLBMFile reads an LBM image from disk.
func ParseLBMFile(path string) (*LBM, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading LBM file: %w", err)
	}
	return ParseLBM(data)
}
