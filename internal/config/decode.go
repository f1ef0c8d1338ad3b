package config

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/Faultbox/polyextract/pkg/encoding"
	"github.com/Faultbox/polyextract/pkg/formats"
)

// DecodeOptions converts the decode section into decoder options.
func (d DecodeConfig) DecodeOptions() (formats.DecodeOptions, error) {
	opts := formats.DefaultDecodeOptions()

	switch strings.ToLower(d.GroupCountOrder) {
	case "", "little":
		opts.GroupCountOrder = binary.LittleEndian
	case "big":
		opts.GroupCountOrder = binary.BigEndian
	default:
		return opts, fmt.Errorf("unknown byte order %q", d.GroupCountOrder)
	}

	if d.MaxGroupFrames > 0 {
		opts.MaxGroupFrames = d.MaxGroupFrames
	}

	dec, err := encoding.NameDecoder(d.NameCharset)
	if err != nil {
		return opts, err
	}
	opts.NameDecoder = dec

	return opts, nil
}
