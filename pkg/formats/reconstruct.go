package formats

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// ErrIndexOutOfRange is matched by IndexOutOfRangeError.
var ErrIndexOutOfRange = errors.New("vertex index out of range")

// IndexOutOfRangeError reports a triangle corner that points past the frame's vertices.
type IndexOutOfRangeError struct {
	Triangle    int
	Corner      int
	Index       int32
	VertexCount int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("triangle %d corner %d: vertex index %d out of range [0,%d)",
		e.Triangle, e.Corner, e.Index, e.VertexCount)
}

// Unwrap lets errors.Is match ErrIndexOutOfRange.
func (e *IndexOutOfRangeError) Unwrap() error {
	return ErrIndexOutOfRange
}

// Triangle is a triangle with unpacked vertex positions.
type Triangle struct {
	Vertices [3]mgl32.Vec3
}

// Unpack expands the packed position: byte*scale + origin per axis.
func (p PackedVertex) Unpack(scale, origin mgl32.Vec3) mgl32.Vec3 {
	var v mgl32.Vec3
	for axis := 0; axis < 3; axis++ {
		// The inner conversion rounds the product and keeps the compiler from fusing it with the add.
		v[axis] = float32(float32(p.Position[axis])*scale[axis]) + origin[axis]
	}
	return v
}

// Reconstruct gathers each triangle's corners from a frame's packed vertices
// and unpacks them. Light normals are not resolved.
func Reconstruct(verts []PackedVertex, tris []TriangleIndex, scale, origin mgl32.Vec3) ([]Triangle, error) {
	out := make([]Triangle, len(tris))
	for t, tri := range tris {
		for c, idx := range tri.Vertices {
			if idx < 0 || int(idx) >= len(verts) {
				return nil, &IndexOutOfRangeError{Triangle: t, Corner: c, Index: idx, VertexCount: len(verts)}
			}
			out[t].Vertices[c] = verts[idx].Unpack(scale, origin)
		}
	}
	return out, nil
}

// Bounds returns the axis-aligned bounds of the triangles. Both are zero for
// an empty slice.
func Bounds(tris []Triangle) (lo, hi mgl32.Vec3) {
	if len(tris) == 0 {
		return
	}
	lo = tris[0].Vertices[0]
	hi = lo
	for _, tri := range tris {
		for _, v := range tri.Vertices {
			for axis := 0; axis < 3; axis++ {
				if v[axis] < lo[axis] {
					lo[axis] = v[axis]
				}
				if v[axis] > hi[axis] {
					hi[axis] = v[axis]
				}
			}
		}
	}
	return lo, hi
}
