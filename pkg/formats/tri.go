// Package formats provides codecs for Quake-era model assets.
// Alias TRI (trilib) triangle file writer and reader.
package formats

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
)

// TRI format errors.
var (
	ErrInvalidTri = errors.New("invalid TRI data")
)

const (
	// TriMagic is the big-endian magic number opening a TRI file.
	TriMagic int32 = 123322
	// TriFloatStart marks the start of an object.
	TriFloatStart float32 = 99999.0
	// TriFloatEnd marks the end of the object list.
	TriFloatEnd float32 = -99999.0

	// TriObjectName and TriTextureName are the names written for every object.
	TriObjectName  = "exported_object"
	TriTextureName = "default_skin"

	// triPointFloats is the float count of one aliaspoint: normal, position,
	// color, u, v.
	triPointFloats = 11
	// TriRecordSize is the on-disk size of one triangle.
	TriRecordSize = 3 * triPointFloats * 4

	maxTriTriangles = 200000
)

// TriPoint is one corner as stored in a TRI file.
type TriPoint struct {
	Normal   mgl32.Vec3
	Position mgl32.Vec3
	Color    mgl32.Vec3
	U, V     float32
}

// TriObject is one named triangle list.
type TriObject struct {
	Name      string
	Texture   string
	Triangles [][3]TriPoint
	EndName   string // name repeated after the end marker, if any
}

// TriFile is a decoded TRI file.
type TriFile struct {
	Objects []TriObject
}

type triWriter struct {
	w   *bufio.Writer
	buf [4]byte
	err error
}

func (tw *triWriter) putInt32(v int32) {
	binary.BigEndian.PutUint32(tw.buf[:], uint32(v))
	tw.write(tw.buf[:])
}

func (tw *triWriter) putFloat(v float32) {
	binary.BigEndian.PutUint32(tw.buf[:], math.Float32bits(v))
	tw.write(tw.buf[:])
}

func (tw *triWriter) cstring(s string) {
	tw.write([]byte(s))
	tw.write([]byte{0})
}

func (tw *triWriter) vec3(v mgl32.Vec3) {
	tw.putFloat(v[0])
	tw.putFloat(v[1])
	tw.putFloat(v[2])
}

func (tw *triWriter) write(p []byte) {
	if tw.err != nil {
		return
	}
	_, tw.err = tw.w.Write(p)
}

// EncodeTri writes the triangles as a single-object TRI file. Normals,
// colors and texture coordinates are written as zero.
func EncodeTri(w io.Writer, tris []Triangle) error {
	tw := &triWriter{w: bufio.NewWriter(w)}

	tw.putInt32(TriMagic)
	tw.putFloat(TriFloatStart)
	tw.cstring(TriObjectName)
	tw.putInt32(int32(len(tris)))
	tw.cstring(TriTextureName)

	var zero mgl32.Vec3
	for _, tri := range tris {
		for _, p := range tri.Vertices {
			tw.vec3(zero)
			tw.vec3(p)
			tw.vec3(zero)
			tw.putFloat(0)
			tw.putFloat(0)
		}
	}

	tw.putFloat(TriFloatEnd)
	tw.cstring(TriObjectName)

	if tw.err == nil {
		tw.err = tw.w.Flush()
	}
	if tw.err != nil {
		return fmt.Errorf("%w: %w", ErrIOFailure, tw.err)
	}
	return nil
}

// WriteTriFile creates or truncates path and writes the triangles to it. A
// failed write may leave a partial file behind.
func WriteTriFile(path string, tris []Triangle) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %w", ErrIOFailure, path, err)
	}
	if err := EncodeTri(f, tris); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %w", ErrIOFailure, path, err)
	}
	return nil
}

// ParseTri reads a TRI file: the magic, then objects opened by the start
// marker, each optionally followed by the end marker and a trailing name.
func ParseTri(data []byte) (*TriFile, error) {
	fr := NewFieldReader(bytes.NewReader(data))

	magic, err := fr.ReadInt32BE()
	if err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	if magic != TriMagic {
		return nil, fmt.Errorf("%w: magic 0x%08X, expected 0x%08X", ErrInvalidTri, uint32(magic), uint32(TriMagic))
	}

	tf := &TriFile{}
	for fr.Offset() < int64(len(data)) {
		marker, err := readFloatBE(fr)
		if err != nil {
			return nil, fmt.Errorf("reading marker: %w", err)
		}

		switch marker {
		case TriFloatEnd:
			name, err := readCString(data, fr)
			if err != nil {
				return nil, fmt.Errorf("reading end name: %w", err)
			}
			if n := len(tf.Objects); n > 0 {
				tf.Objects[n-1].EndName = name
			}
		case TriFloatStart:
			obj, err := parseTriObject(data, fr)
			if err != nil {
				return nil, fmt.Errorf("reading object %d: %w", len(tf.Objects), err)
			}
			tf.Objects = append(tf.Objects, *obj)
		default:
			return nil, fmt.Errorf("%w: unexpected marker %v at offset %d", ErrInvalidTri, marker, fr.Offset()-4)
		}
	}
	return tf, nil
}

// ParseTriFile reads a TRI file from disk.
func ParseTriFile(path string) (*TriFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading TRI file: %w", err)
	}
	return ParseTri(data)
}

func parseTriObject(data []byte, fr *FieldReader) (*TriObject, error) {
	obj := &TriObject{}
	var err error
	if obj.Name, err = readCString(data, fr); err != nil {
		return nil, err
	}
	count, err := fr.ReadInt32BE()
	if err != nil {
		return nil, err
	}
	if count < 0 || count > maxTriTriangles {
		return nil, fmt.Errorf("%w: %d triangles", ErrSuspiciousCount, count)
	}
	if obj.Texture, err = readCString(data, fr); err != nil {
		return nil, err
	}

	obj.Triangles = make([][3]TriPoint, count)
	for i := range obj.Triangles {
		for c := 0; c < 3; c++ {
			var f [triPointFloats]float32
			for k := range f {
				if f[k], err = readFloatBE(fr); err != nil {
					return nil, fmt.Errorf("triangle %d: %w", i, err)
				}
			}
			obj.Triangles[i][c] = TriPoint{
				Normal:   mgl32.Vec3{f[0], f[1], f[2]},
				Position: mgl32.Vec3{f[3], f[4], f[5]},
				Color:    mgl32.Vec3{f[6], f[7], f[8]},
				U:        f[9],
				V:        f[10],
			}
		}
	}
	return obj, nil
}

func readFloatBE(fr *FieldReader) (float32, error) {
	v, err := fr.ReadInt32BE()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(uint32(v)), nil
}

// readCString reads up to and including a NUL byte. A missing terminator at
// end of input ends the string, as trilib does.
func readCString(data []byte, fr *FieldReader) (string, error) {
	rest := data[fr.Offset():]
	end := bytes.IndexByte(rest, 0)
	size := end + 1
	if end < 0 {
		end, size = len(rest), len(rest)
	}
	if _, err := fr.ReadBytes(size); err != nil {
		return "", err
	}
	return string(rest[:end]), nil
}
