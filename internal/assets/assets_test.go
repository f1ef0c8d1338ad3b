package assets

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/polyextract/pkg/pak"
)

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

func TestParseRef(t *testing.T) {
	tests := []struct {
		ref            string
		archive, entry string
		ok             bool
	}{
		{"pak:id1/pak0.pak:progs/player.mdl", "id1/pak0.pak", "progs/player.mdl", true},
		{`pak:C:\quake\pak0.pak:gfx/palette.lmp`, `C:\quake\pak0.pak`, "gfx/palette.lmp", true},
		{"pak:pak0.pak", "", "", false},
		{"pak:pak0.pak:", "", "", false},
		{"pak::entry", "", "", false},
		{"pak0.pak:entry", "", "", false},
	}
	for _, tt := range tests {
		archive, entry, err := ParseRef(tt.ref)
		if !tt.ok {
			if !errors.Is(err, ErrBadRef) {
				t.Errorf("ParseRef(%q): got %v, want ErrBadRef", tt.ref, err)
			}
			continue
		}
		if err != nil || archive != tt.archive || entry != tt.entry {
			t.Errorf("ParseRef(%q) = %q, %q, %v", tt.ref, archive, entry, err)
		}
	}
}

func TestManager_Load(t *testing.T) {
	path := writePAK(t, "gfx/palette.lmp", []byte("colors"))
	ref := RefPrefix + path + ":gfx/palette.lmp"

	m := NewManager()
	defer m.Close()

	for i := 0; i < 2; i++ {
		data, err := m.Load(ref)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if string(data) != "colors" {
			t.Errorf("data = %q", data)
		}
	}
	if hits, misses := m.cache.Stats(); hits != 1 || misses != 1 {
		t.Errorf("cache stats = %d hits, %d misses", hits, misses)
	}
	if len(m.archives) != 1 {
		t.Errorf("opened %d archives", len(m.archives))
	}

	_, err := m.Load(RefPrefix + path + ":gfx/missing.lmp")
	if !errors.Is(err, pak.ErrEntryNotFound) {
		t.Errorf("missing entry: got %v", err)
	}
}

func TestManager_Open(t *testing.T) {
	path := writePAK(t, "progs/flame.mdl", []byte("IDPO"))

	m := NewManager()
	defer m.Close()

	r, entry, err := m.Open(RefPrefix + path + ":progs/flame.mdl")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if entry != "progs/flame.mdl" {
		t.Errorf("entry = %q", entry)
	}
	data, err := io.ReadAll(r)
	if err != nil || string(data) != "IDPO" {
		t.Errorf("read %q, %v", data, err)
	}

	if _, _, err := m.Open(RefPrefix + filepath.Join(t.TempDir(), "none.pak") + ":x"); err == nil {
		t.Error("expected error for missing archive")
	}
}

func TestCache(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("a"); ok {
		t.Error("empty cache hit")
	}
	c.Set("a", []byte{1})
	if data, ok := c.Get("a"); !ok || data[0] != 1 {
		t.Error("cache miss after Set")
	}
	c.Clear()
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Errorf("stats after Clear = %d, %d", hits, misses)
	}
}
