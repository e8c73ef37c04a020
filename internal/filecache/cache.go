// Package filecache memoizes values decoded from files. An entry is reused
// only while the file's modification time and size are unchanged.
package filecache

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type entry[T any] struct {
	modTime time.Time
	size    int64
	value   T
}

// Cache holds decoded file contents keyed by path. It is safe for
// concurrent use. The zero value is not usable; call New.
type Cache[T any] struct {
	mu      sync.Mutex
	entries map[string]entry[T]
}

// New returns an empty cache.
func New[T any]() *Cache[T] {
	return &Cache[T]{entries: make(map[string]entry[T])}
}

// Get returns the value for path, calling load on the file's contents when
// there is no entry or the file changed since it was cached. A failed load
// is not cached.
func (c *Cache[T]) Get(path string, load func(io.Reader) (T, error)) (T, error) {
	var zero T

	info, err := os.Stat(path)
	if err != nil {
		return zero, fmt.Errorf("stat %s: %w", path, err)
	}

	c.mu.Lock()
	e, ok := c.entries[path]
	c.mu.Unlock()
	if ok && e.modTime.Equal(info.ModTime()) && e.size == info.Size() {
		return e.value, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return zero, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	v, err := load(f)
	if err != nil {
		return zero, err
	}

	c.mu.Lock()
	c.entries[path] = entry[T]{modTime: info.ModTime(), size: info.Size(), value: v}
	c.mu.Unlock()
	return v, nil
}

func (c *Cache[T]) entryCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
