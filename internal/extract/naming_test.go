package extract

import (
	"path/filepath"
	"testing"

	"github.com/Faultbox/polyextract/internal/preview"
	"github.com/Faultbox/polyextract/pkg/formats"
)

func TestNamer(t *testing.T) {
	n := NewNamer("out", "progs/player.mdl")
	if n.Dir != "out" || n.Base != "player" {
		t.Fatalf("namer = %+v", n)
	}

	tests := []struct {
		got  string
		want string
	}{
		{n.Skin(2), "player_skin2.lbm"},
		{n.SkinPreview(0, preview.FormatWebP), "player_skin0.webp"},
		{n.Frame(&formats.Frame{Kind: formats.FrameSingle, Index: 7}), "player_frame7.tri"},
		{n.Frame(&formats.Frame{Kind: formats.FrameGroup, Index: 3, SubIndex: 1}), "player_frame3_sub1.tri"},
		{n.Manifest(), "player.manifest.toml"},
	}
	for _, tt := range tests {
		if want := filepath.Join("out", tt.want); tt.got != want {
			t.Errorf("got %s, want %s", tt.got, want)
		}
	}
}

func TestNamer_DefaultDir(t *testing.T) {
	n := NewNamer("", filepath.Join("maps", "shambler.v6.mdl"))
	if n.Dir != "maps" || n.Base != "shambler.v6" {
		t.Errorf("namer = %+v", n)
	}

	n = NewNamer("", "soldier")
	if n.Dir != "." || n.Base != "soldier" {
		t.Errorf("namer = %+v", n)
	}
}
