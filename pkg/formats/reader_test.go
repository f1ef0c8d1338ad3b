package formats

import (
	"bytes"
	"errors"
	"testing"
)

func TestFieldReader_Truncated(t *testing.T) {
	fr := NewFieldReader(bytes.NewReader([]byte{1, 0, 0, 0, 9, 9}))

	v, err := fr.ReadInt32LE()
	if err != nil || v != 1 {
		t.Fatalf("ReadInt32LE = %d, %v", v, err)
	}

	_, err = fr.ReadInt32LE()
	var te *TruncatedError
	if !errors.As(err, &te) {
		t.Fatalf("got %v, want TruncatedError", err)
	}
	if te.Requested != 4 || te.Available != 2 || te.Offset != 4 {
		t.Errorf("TruncatedError = %+v", te)
	}
	if !errors.Is(err, ErrTruncatedInput) {
		t.Error("error does not match ErrTruncatedInput")
	}
	if fr.Offset() != 6 {
		t.Errorf("offset = %d, want 6", fr.Offset())
	}
}

func TestFieldReader_ReadBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		want    int
		wantErr error
	}{
		{"exact", 16, 16, nil},
		{"short", 8, 16, ErrTruncatedInput},
		{"large", readChunk + 10, readChunk + 10, nil},
		{"large short", readChunk, readChunk + 1, ErrTruncatedInput},
		{"negative", 4, -1, ErrSuspiciousCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fr := NewFieldReader(bytes.NewReader(make([]byte, tt.input)))
			got, err := fr.ReadBytes(tt.want)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("got %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("got %d bytes, want %d", len(got), tt.want)
			}
		})
	}
}

func TestFieldReader_FixedString(t *testing.T) {
	data := []byte("walk1\x00junk\x00\x00\x00\x00\x00\x00")
	fr := NewFieldReader(bytes.NewReader(data))
	s, err := fr.ReadFixedString(16, nil)
	if err != nil {
		t.Fatal(err)
	}
	if s != "walk1" {
		t.Errorf("got %q, want %q", s, "walk1")
	}
	if fr.Offset() != 16 {
		t.Errorf("offset = %d, want 16", fr.Offset())
	}
}

func TestSwapInt32(t *testing.T) {
	tests := []struct {
		in, want int32
	}{
		{0x01000000, 1},
		{1, 0x01000000},
		{0x12345678, 0x78563412},
		{-1, -1},
	}
	for _, tt := range tests {
		if got := SwapInt32(tt.in); got != tt.want {
			t.Errorf("SwapInt32(0x%08X) = 0x%08X, want 0x%08X", uint32(tt.in), uint32(got), uint32(tt.want))
		}
	}
}
