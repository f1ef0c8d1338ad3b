// Package encoding provides text encoding utilities for Quake asset names.
package encoding

import (
	"bytes"
	"fmt"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Charset names accepted by Lookup. "raw" keeps the stored bytes unchanged.
const (
	CharsetRaw    = "raw"
	CharsetCP437  = "cp437"
	CharsetLatin1 = "latin1"
	CharsetCP1252 = "cp1252"
)

var charsets = map[string]*charmap.Charmap{
	CharsetCP437:   charmap.CodePage437,
	"ibm437":       charmap.CodePage437,
	CharsetLatin1:  charmap.ISO8859_1,
	"iso-8859-1":   charmap.ISO8859_1,
	CharsetCP1252:  charmap.Windows1252,
	"windows-1252": charmap.Windows1252,
}

// Lookup returns the charmap for name. Raw (or empty) returns nil.
func Lookup(name string) (*charmap.Charmap, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == CharsetRaw {
		return nil, nil
	}
	cm, ok := charsets[name]
	if !ok {
		return nil, fmt.Errorf("unknown charset %q", name)
	}
	return cm, nil
}

// ToUTF8 converts bytes in cm to a UTF-8 string.
// Returns the original bytes as a string if cm is nil or conversion fails.
func ToUTF8(cm *charmap.Charmap, data []byte) string {
	if cm == nil {
		return string(data)
	}
	result, _, err := transform.Bytes(cm.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(result)
}

// FromUTF8 converts a UTF-8 string to bytes in cm.
// Returns the original bytes if cm is nil or conversion fails.
func FromUTF8(cm *charmap.Charmap, s string) []byte {
	if cm == nil {
		return []byte(s)
	}
	result, _, err := transform.Bytes(cm.NewEncoder(), []byte(s))
	if err != nil {
		return []byte(s)
	}
	return result
}

// NameDecoder returns a decoder for fixed-size name fields in the named
// charset, or nil for raw.
func NameDecoder(charset string) (func([]byte) string, error) {
	cm, err := Lookup(charset)
	if err != nil || cm == nil {
		return nil, err
	}
	return func(data []byte) string {
		return FixedStringToUTF8(cm, data)
	}, nil
}

// NormalizePath normalizes an archive path for case-insensitive lookup.
func NormalizePath(path string) string {
	path = strings.ReplaceAll(path, "\\", "/")
	return strings.ToLower(path)
}

// FixedStringToUTF8 converts a fixed-size NUL-terminated field to UTF-8.
func FixedStringToUTF8(cm *charmap.Charmap, data []byte) string {
	if nullIdx := bytes.IndexByte(data, 0); nullIdx >= 0 {
		data = data[:nullIdx]
	}
	return ToUTF8(cm, data)
}

// UTF8ToFixedString encodes s into a size-byte field padded with null bytes.
// Longer strings are cut to fit.
func UTF8ToFixedString(cm *charmap.Charmap, s string, size int) []byte {
	result := make([]byte, size)
	copy(result, FromUTF8(cm, s))
	return result
}
