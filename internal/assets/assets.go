// Package assets resolves files stored inside PAK archives.
package assets

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Faultbox/polyextract/pkg/pak"
)

// RefPrefix marks an archive reference: pak:<archive>:<entry>.
const RefPrefix = "pak:"

// ErrBadRef is returned for malformed archive references.
var ErrBadRef = errors.New("malformed archive reference")

// IsRef reports whether s names an archive entry rather than a plain file.
func IsRef(s string) bool {
	return strings.HasPrefix(s, RefPrefix)
}

// ParseRef splits pak:<archive>:<entry>. The archive path may itself contain
// colons (drive letters), so the entry is taken after the last one.
func ParseRef(ref string) (archive, entry string, err error) {
	if !IsRef(ref) {
		return "", "", fmt.Errorf("%w: %q lacks the %s prefix", ErrBadRef, ref, RefPrefix)
	}
	rest := strings.TrimPrefix(ref, RefPrefix)
	i := strings.LastIndex(rest, ":")
	if i <= 0 || i == len(rest)-1 {
		return "", "", fmt.Errorf("%w: %q, want %s<archive>:<entry>", ErrBadRef, ref, RefPrefix)
	}
	return rest[:i], rest[i+1:], nil
}

// Manager opens each archive once and caches entries read through it.
type Manager struct {
	archives map[string]*pak.Archive
	cache    *Cache
	mu       sync.Mutex
}

// NewManager creates a new asset manager.
func NewManager() *Manager {
	return &Manager{
		archives: make(map[string]*pak.Archive),
		cache:    NewCache(),
	}
}

func (m *Manager) archive(path string) (*pak.Archive, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a, ok := m.archives[path]; ok {
		return a, nil
	}
	a, err := pak.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive %s: %w", path, err)
	}
	m.archives[path] = a
	return a, nil
}

// Load reads the entry named by ref.
func (m *Manager) Load(ref string) ([]byte, error) {
	if data, ok := m.cache.Get(ref); ok {
		return data, nil
	}

	path, entry, err := ParseRef(ref)
	if err != nil {
		return nil, err
	}
	a, err := m.archive(path)
	if err != nil {
		return nil, err
	}
	data, err := a.Read(entry)
	if err != nil {
		return nil, err
	}
	m.cache.Set(ref, data)
	return data, nil
}

// Open returns a streaming reader over the entry named by ref, plus the entry
// name. The reader stays valid until Close.
func (m *Manager) Open(ref string) (*io.SectionReader, string, error) {
	path, entry, err := ParseRef(ref)
	if err != nil {
		return nil, "", err
	}
	a, err := m.archive(path)
	if err != nil {
		return nil, "", err
	}
	r, err := a.Open(entry)
	if err != nil {
		return nil, "", err
	}
	return r, entry, nil
}

// Close closes all archives.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, archive := range m.archives {
		archive.Close()
	}
	m.archives = make(map[string]*pak.Archive)
	m.cache.Clear()
}

// Cache is a simple in-memory cache for loaded entries.
type Cache struct {
	data map[string][]byte
	mu   sync.RWMutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string][]byte),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return data, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string][]byte)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.hits, c.misses
}
