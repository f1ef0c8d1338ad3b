// Package pak provides reading functionality for Quake PACK archives.
package pak

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/Faultbox/polyextract/pkg/encoding"
)

const (
	pakMagic   = "PACK"
	headerSize = 12
	entrySize  = 64
	nameSize   = 56
)

// Archive errors.
var (
	ErrInvalidPAK    = errors.New("invalid PAK archive")
	ErrEntryNotFound = errors.New("entry not found")
)

// Archive represents an opened PAK archive.
type Archive struct {
	file     *os.File
	size     int64
	header   Header
	fileList map[string]*Entry
}

// Header contains the PAK header.
type Header struct {
	Magic     [4]byte
	DirOffset int32
	DirLength int32
}

// Entry represents a file entry in the directory.
type Entry struct {
	Name   string // as stored, NUL trimmed
	Offset int32
	Size   int32
}

// Open opens a PAK archive for reading.
func Open(path string) (*Archive, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("stat: %w", err)
	}

	archive := &Archive{
		file:     file,
		size:     info.Size(),
		fileList: make(map[string]*Entry),
	}

	if err := archive.readHeader(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading header: %w", err)
	}

	if err := archive.readDirectory(); err != nil {
		file.Close()
		return nil, fmt.Errorf("reading directory: %w", err)
	}

	return archive, nil
}

// Close closes the archive.
func (a *Archive) Close() error {
	if a.file != nil {
		return a.file.Close()
	}
	return nil
}

func (a *Archive) readHeader() error {
	if a.size < headerSize {
		return fmt.Errorf("%w: file is %d bytes", ErrInvalidPAK, a.size)
	}

	if err := binary.Read(io.NewSectionReader(a.file, 0, headerSize), binary.LittleEndian, &a.header); err != nil {
		return fmt.Errorf("reading header: %w", err)
	}

	if string(a.header.Magic[:]) != pakMagic {
		return fmt.Errorf("%w: magic %q", ErrInvalidPAK, a.header.Magic[:])
	}

	h := a.header
	if h.DirOffset < headerSize || h.DirLength < 0 || h.DirLength%entrySize != 0 ||
		int64(h.DirOffset)+int64(h.DirLength) > a.size {
		return fmt.Errorf("%w: directory at %d+%d in %d-byte file", ErrInvalidPAK, h.DirOffset, h.DirLength, a.size)
	}

	return nil
}

func (a *Archive) readDirectory() error {
	dir := make([]byte, a.header.DirLength)
	if _, err := a.file.ReadAt(dir, int64(a.header.DirOffset)); err != nil {
		return err
	}

	for offset := 0; offset < len(dir); offset += entrySize {
		raw := dir[offset : offset+entrySize]
		entry := &Entry{
			Name:   encoding.FixedStringToUTF8(nil, raw[:nameSize]),
			Offset: int32(binary.LittleEndian.Uint32(raw[nameSize:])),
			Size:   int32(binary.LittleEndian.Uint32(raw[nameSize+4:])),
		}

		if entry.Offset < 0 || entry.Size < 0 || int64(entry.Offset)+int64(entry.Size) > a.size {
			return fmt.Errorf("%w: entry %q spans %d+%d", ErrInvalidPAK, entry.Name, entry.Offset, entry.Size)
		}

		a.fileList[encoding.NormalizePath(entry.Name)] = entry
	}

	return nil
}

// List returns all file paths in the archive, sorted.
func (a *Archive) List() []string {
	result := make([]string, 0, len(a.fileList))
	for path := range a.fileList {
		result = append(result, path)
	}
	sort.Strings(result)
	return result
}

// Entry returns the directory entry for path.
func (a *Archive) Entry(path string) (*Entry, bool) {
	entry, ok := a.fileList[encoding.NormalizePath(path)]
	return entry, ok
}

// Contains checks if a file exists.
func (a *Archive) Contains(path string) bool {
	_, ok := a.Entry(path)
	return ok
}

// Open returns a reader over one stored file. PAK entries are never
// compressed, so the reader reads the archive directly.
func (a *Archive) Open(path string) (*io.SectionReader, error) {
	entry, ok := a.Entry(path)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, path)
	}
	return io.NewSectionReader(a.file, int64(entry.Offset), int64(entry.Size)), nil
}

// Read reads a file from the archive.
func (a *Archive) Read(path string) ([]byte, error) {
	sr, err := a.Open(path)
	if err != nil {
		return nil, err
	}

	result := make([]byte, sr.Size())
	if _, err := io.ReadFull(sr, result); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return result, nil
}
