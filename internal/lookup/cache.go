// Package lookup memoizes dictionary search results on disk so interrupted
// runs do not repeat their network lookups.
package lookup

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Cache is a JSON file backed memo of lookup results keyed by query text.
// Get and Set are safe for concurrent use; Flush persists the current state.
type Cache[T any] struct {
	path string

	mu      sync.Mutex
	entries map[string]T
	dirty   bool
}

// Open loads the cache at path. A missing file yields an empty cache; the
// file is created on the first Flush.
func Open[T any](path string) (*Cache[T], error) {
	cache := &Cache[T]{
		path:    path,
		entries: map[string]T{},
	}
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.ReadFile(%s) > %w", path, err)
	}
	if err := json.Unmarshal(content, &cache.entries); err != nil {
		return nil, fmt.Errorf("parse cache %s: %w", path, err)
	}
	return cache, nil
}

// Get returns the memoized result for key.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	return value, ok
}

// Set memoizes a result for key.
func (c *Cache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	c.dirty = true
}

// Len returns the number of memoized results.
func (c *Cache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Flush writes the cache back to its file when anything changed since the
// last flush. The write goes through a temporary file so a crash cannot
// truncate the previous state.
func (c *Cache[T]) Flush() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.dirty {
		return nil
	}
	content, err := json.Marshal(c.entries)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, c.path); err != nil {
		return fmt.Errorf("os.Rename(%s) > %w", c.path, err)
	}
	c.dirty = false
	return nil
}
