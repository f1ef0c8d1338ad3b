package main

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/polyextract/internal/assets"
	"github.com/Faultbox/polyextract/internal/extract"
)

func TestMatchEntry(t *testing.T) {
	tests := []struct {
		entry, pattern string
		want           bool
	}{
		{"progs/player.mdl", "", true},
		{"progs/player.mdl", "*.mdl", true},
		{"progs/player.mdl", "*.MDL", true},
		{"progs/player.mdl", "progs/", true},
		{"gfx/palette.lmp", "*.mdl", false},
	}
	for _, tt := range tests {
		if got := matchEntry(tt.entry, tt.pattern); got != tt.want {
			t.Errorf("matchEntry(%q, %q) = %v, want %v", tt.entry, tt.pattern, got, tt.want)
		}
	}
}

// emptyModel is a valid header with no skins, vertices, triangles or frames.
func emptyModel() []byte {
	var buf bytes.Buffer
	buf.WriteString("IDPO")
	le := binary.LittleEndian
	binary.Write(&buf, le, int32(6))
	binary.Write(&buf, le, [10]float32{1, 1, 1})
	binary.Write(&buf, le, [8]int32{})
	binary.Write(&buf, le, float32(0))
	return buf.Bytes()
}

func writePAK(t *testing.T, name string, content []byte) string {
	t.Helper()
	le := binary.LittleEndian
	var buf bytes.Buffer
	buf.WriteString("PACK")
	binary.Write(&buf, le, int32(12+len(content)))
	binary.Write(&buf, le, int32(64))
	buf.Write(content)
	var entry [56]byte
	copy(entry[:], name)
	buf.Write(entry[:])
	binary.Write(&buf, le, int32(12))
	binary.Write(&buf, le, int32(len(content)))

	path := filepath.Join(t.TempDir(), "pak0.pak")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunInput_PakEntry(t *testing.T) {
	if len(emptyModel()) != 84 {
		t.Fatalf("header is %d bytes", len(emptyModel()))
	}
	archive := writePAK(t, "progs/empty.mdl", emptyModel())
	session := extract.NewSession(extract.Options{OutputDir: t.TempDir()})
	archives := assets.NewManager()
	defer archives.Close()

	res, err := runInput(session, archives, "pak:"+archive+":progs/empty.mdl")
	if err != nil {
		t.Fatalf("runInput failed: %v", err)
	}
	if res.Input != "progs/empty.mdl" || res.Header.Version != 6 {
		t.Errorf("result = %+v", res)
	}

	if _, err := runInput(session, archives, "pak:"+archive+":progs/missing.mdl"); err == nil {
		t.Error("expected error for missing entry")
	}
	if _, err := runInput(session, archives, "pak:"+archive); err == nil {
		t.Error("expected error for missing entry name")
	}
}
