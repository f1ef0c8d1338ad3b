//go:build ignore

// This program generates a test MDL file for unit tests and manual runs.
// Run with: go run generate_mdl.go
package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
)

func f32(buf *bytes.Buffer, v float32) {
	binary.Write(buf, binary.LittleEndian, math.Float32bits(v))
}

func i32(buf *bytes.Buffer, v int32) {
	binary.Write(buf, binary.LittleEndian, v)
}

func name16(buf *bytes.Buffer, s string) {
	var n [16]byte
	copy(n[:], s)
	buf.Write(n[:])
}

// frame writes one single-frame record body: bbox, name, 4 vertices.
func frame(buf *bytes.Buffer, name string, lift uint8) {
	buf.Write([]byte{0, 0, 0, 0}) // bbox min
	buf.Write([]byte{8, 8, 8, 0}) // bbox max
	name16(buf, name)
	buf.Write([]byte{0, 0, lift, 0}) // apex corners of a tetrahedron
	buf.Write([]byte{8, 0, 0, 1})
	buf.Write([]byte{0, 8, 0, 2})
	buf.Write([]byte{0, 0, 8 + lift, 3})
}

func main() {
	// A 4-vertex tetrahedron with one 4x4 skin, one single frame and a
	// two-member frame group. Frame count is 4: 1 for the single, 1+2 for the group.
	var buf bytes.Buffer

	// Header (84 bytes)
	buf.WriteString("IDPO")
	i32(&buf, 6)
	f32(&buf, 0.5) // scale
	f32(&buf, 0.5)
	f32(&buf, 0.5)
	f32(&buf, -2) // scale origin
	f32(&buf, -2)
	f32(&buf, 0)
	f32(&buf, 4) // bounding radius
	f32(&buf, 0) // eye position
	f32(&buf, 0)
	f32(&buf, 3)
	i32(&buf, 1) // skins
	i32(&buf, 4) // skin width
	i32(&buf, 4) // skin height
	i32(&buf, 4) // vertices
	i32(&buf, 4) // triangles
	i32(&buf, 4) // frames
	i32(&buf, 0) // sync type
	i32(&buf, 0) // flags
	f32(&buf, 1) // size

	// Skin: single, 4x4 checkerboard of colors 7 and 15
	i32(&buf, 0)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x+y)%2 == 0 {
				buf.WriteByte(7)
			} else {
				buf.WriteByte(15)
			}
		}
	}

	// Texture vertices
	for _, st := range [][3]int32{{0, 0, 0}, {0, 3, 0}, {0, 0, 3}, {1, 3, 3}} {
		i32(&buf, st[0])
		i32(&buf, st[1])
		i32(&buf, st[2])
	}

	// Triangles
	for _, tri := range [][4]int32{{1, 0, 1, 2}, {1, 0, 1, 3}, {1, 0, 2, 3}, {0, 1, 2, 3}} {
		for _, v := range tri {
			i32(&buf, v)
		}
	}

	// Frame 0: single
	i32(&buf, 0)
	frame(&buf, "base", 0)

	// Frame 1: group of two
	i32(&buf, 1)
	i32(&buf, 2)
	buf.Write([]byte{0, 0, 0, 0})
	buf.Write([]byte{8, 8, 10, 0})
	f32(&buf, 0.1)
	f32(&buf, 0.2)
	frame(&buf, "pulse1", 1)
	frame(&buf, "pulse2", 2)

	if err := os.WriteFile("tetra.mdl", buf.Bytes(), 0644); err != nil {
		panic(err)
	}

	println("Generated tetra.mdl:", buf.Len(), "bytes")
	println("  - 1 skin (4x4)")
	println("  - 4 vertices, 4 triangles")
	println("  - 1 single frame + 1 group of 2")
}
