package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrTruncatedInput is matched by every short read in this package.
var ErrTruncatedInput = errors.New("truncated input")

// TruncatedError reports a fixed-size read that ran out of input.
type TruncatedError struct {
	Requested int   // bytes the field needed
	Available int   // bytes actually read before the input ended
	Offset    int64 // cursor offset where the read started
}

func (e *TruncatedError) Error() string {
	return fmt.Sprintf("truncated input: need %d bytes at offset %d, got %d", e.Requested, e.Offset, e.Available)
}

// Unwrap lets errors.Is match ErrTruncatedInput.
func (e *TruncatedError) Unwrap() error {
	return ErrTruncatedInput
}

// readChunk bounds a single allocation made while reading a large byte run.
const readChunk = 1 << 20

// FieldReader reads fixed-width fields from a byte stream and tracks the
// cursor offset for diagnostics.
type FieldReader struct {
	r   io.Reader
	off int64
	buf [4]byte
}

// NewFieldReader wraps r. Callers reading from files should pass a buffered reader.
func NewFieldReader(r io.Reader) *FieldReader {
	return &FieldReader{r: r}
}

// Offset returns the number of bytes consumed so far.
func (fr *FieldReader) Offset() int64 {
	return fr.off
}

func (fr *FieldReader) fill(dst []byte) error {
	start := fr.off
	n, err := io.ReadFull(fr.r, dst)
	fr.off += int64(n)
	if err == nil {
		return nil
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return &TruncatedError{Requested: len(dst), Available: n, Offset: start}
	}
	return fmt.Errorf("reading %d bytes at offset %d: %w", len(dst), start, err)
}

// ReadInt32 reads a signed 32-bit integer in the given byte order.
func (fr *FieldReader) ReadInt32(order binary.ByteOrder) (int32, error) {
	if err := fr.fill(fr.buf[:]); err != nil {
		return 0, err
	}
	return int32(order.Uint32(fr.buf[:])), nil
}

// ReadInt32LE reads a little-endian signed 32-bit integer.
func (fr *FieldReader) ReadInt32LE() (int32, error) {
	return fr.ReadInt32(binary.LittleEndian)
}

// ReadInt32BE reads a big-endian signed 32-bit integer.
func (fr *FieldReader) ReadInt32BE() (int32, error) {
	return fr.ReadInt32(binary.BigEndian)
}

// ReadFloat32LE reads a little-endian IEEE 754 single.
func (fr *FieldReader) ReadFloat32LE() (float32, error) {
	if err := fr.fill(fr.buf[:]); err != nil {
		return 0, err
	}
	return math.Float32frombits(binary.LittleEndian.Uint32(fr.buf[:])), nil
}

// ReadVec3 reads three little-endian floats.
func (fr *FieldReader) ReadVec3() (mgl32.Vec3, error) {
	var v mgl32.Vec3
	for i := range v {
		f, err := fr.ReadFloat32LE()
		if err != nil {
			return mgl32.Vec3{}, err
		}
		v[i] = f
	}
	return v, nil
}

// ReadPackedVertex reads one 4-byte packed vertex.
func (fr *FieldReader) ReadPackedVertex() (PackedVertex, error) {
	if err := fr.fill(fr.buf[:]); err != nil {
		return PackedVertex{}, err
	}
	return PackedVertex{
		Position:    [3]uint8{fr.buf[0], fr.buf[1], fr.buf[2]},
		LightNormal: fr.buf[3],
	}, nil
}

// ReadBytes reads exactly n bytes. Runs longer than readChunk are
// accumulated as they arrive, so a corrupt size cannot force one huge
// allocation before the truncation is noticed.
func (fr *FieldReader) ReadBytes(n int) ([]byte, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: negative read size %d", ErrSuspiciousCount, n)
	}
	if n <= readChunk {
		out := make([]byte, n)
		if err := fr.fill(out); err != nil {
			return nil, err
		}
		return out, nil
	}

	start := fr.off
	var buf bytes.Buffer
	got, err := io.CopyN(&buf, fr.r, int64(n))
	fr.off += got
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &TruncatedError{Requested: n, Available: int(got), Offset: start}
		}
		return nil, fmt.Errorf("reading %d bytes at offset %d: %w", n, start, err)
	}
	return buf.Bytes(), nil
}

// ReadFixedString reads an n-byte NUL-padded field and decodes it with
// decode (raw bytes when decode is nil).
func (fr *FieldReader) ReadFixedString(n int, decode func([]byte) string) (string, error) {
	raw, err := fr.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	if decode == nil {
		return string(raw), nil
	}
	return decode(raw), nil
}

// SwapInt32 reverses the byte order of an already-loaded 32-bit value.
func SwapInt32(v int32) int32 {
	u := uint32(v)
	return int32(u>>24 | (u>>8)&0xFF00 | (u<<8)&0xFF0000 | u<<24)
}
