//go:build ignore

// This program generates a small test PAK file for manual runs.
// Run with: go run generate.go [model.mdl]
package main

import (
	"bytes"
	"encoding/binary"
	"os"

	"github.com/Faultbox/polyextract/pkg/encoding"
)

func main() {
	// Test files to include
	files := []struct {
		name    string
		content []byte
	}{
		{"gfx/palette.lmp", grayPalette()},
		{"readme.txt", []byte("Hello, PAK!")},
	}
	if len(os.Args) > 1 {
		model, err := os.ReadFile(os.Args[1])
		if err != nil {
			panic(err)
		}
		files = append(files, struct {
			name    string
			content []byte
		}{"progs/test.mdl", model})
	}

	var data bytes.Buffer
	offsets := make([]int32, len(files))
	for i, file := range files {
		offsets[i] = int32(12 + data.Len())
		data.Write(file.content)
	}

	var buf bytes.Buffer
	buf.WriteString("PACK")
	binary.Write(&buf, binary.LittleEndian, int32(12+data.Len())) // directory offset
	binary.Write(&buf, binary.LittleEndian, int32(64*len(files))) // directory length
	buf.Write(data.Bytes())

	for i, file := range files {
		buf.Write(encoding.UTF8ToFixedString(nil, file.name, 56))
		binary.Write(&buf, binary.LittleEndian, offsets[i])
		binary.Write(&buf, binary.LittleEndian, int32(len(file.content)))
	}

	if err := os.WriteFile("test.pak", buf.Bytes(), 0644); err != nil {
		panic(err)
	}

	println("Generated test.pak:", buf.Len(), "bytes,", len(files), "files")
}

// grayPalette is a 256-step gray ramp.
func grayPalette() []byte {
	p := make([]byte, 768)
	for i := 0; i < 256; i++ {
		p[i*3], p[i*3+1], p[i*3+2] = byte(i), byte(i), byte(i)
	}
	return p
}
