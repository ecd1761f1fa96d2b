package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DocumentBackend stores all keys in a single JSON document. The
// document is read once at open into an in-memory cache; mutations go
// to the cache and a debounced flush writes the whole document back.
type DocumentBackend struct {
	path     string
	mu       sync.Mutex
	cache    map[string]json.RawMessage // full (namespaced) key -> envelope bytes
	dirty    bool
	closed   bool
	debounce *debouncer
}

// NewDocumentBackend opens (or creates) the document at path.
func NewDocumentBackend(path string, debounce time.Duration) (*DocumentBackend, error) {
	b := &DocumentBackend{
		path:  path,
		cache: map[string]json.RawMessage{},
	}
	b.debounce = newDebouncer(debounce, b.Flush)

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return b, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(raw, &b.cache); err != nil {
		return nil, err
	}
	if b.cache == nil {
		b.cache = map[string]json.RawMessage{}
	}
	return b, nil
}

// Path returns the document file path.
func (b *DocumentBackend) Path() string {
	return b.path
}

// Get reads the value stored under key from the cache.
func (b *DocumentBackend) Get(key string) (json.RawMessage, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, false, ErrNotInitialized
	}
	raw, exists := b.cache[Namespace+key]
	if !exists {
		return nil, false, nil
	}
	data, ok := decodeValue(raw, key)
	return data, ok, nil
}

// Set stores the enveloped value in the cache and schedules a flush.
func (b *DocumentBackend) Set(key string, value any) error {
	raw, err := encodeValue(value)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrNotInitialized
	}
	b.cache[Namespace+key] = raw
	b.dirty = true
	b.debounce.Schedule()
	return nil
}

// Remove deletes the value stored under key and schedules a flush.
func (b *DocumentBackend) Remove(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrNotInitialized
	}
	if _, exists := b.cache[Namespace+key]; !exists {
		return nil
	}
	delete(b.cache, Namespace+key)
	b.dirty = true
	b.debounce.Schedule()
	return nil
}

// Clear removes every namespaced key. Foreign keys that ended up in
// the document stay.
func (b *DocumentBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return ErrNotInitialized
	}
	for key := range b.cache {
		if strings.HasPrefix(key, Namespace) {
			delete(b.cache, key)
			b.dirty = true
		}
	}
	if b.dirty {
		b.debounce.Schedule()
	}
	return nil
}

// Keys lists all namespaced keys, prefix stripped.
func (b *DocumentBackend) Keys() ([]string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrNotInitialized
	}
	keys := []string{}
	for key := range b.cache {
		if strings.HasPrefix(key, Namespace) {
			keys = append(keys, strings.TrimPrefix(key, Namespace))
		}
	}
	return keys, nil
}

// Flush writes the whole document synchronously if the cache is dirty.
func (b *DocumentBackend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushLocked()
}

func (b *DocumentBackend) flushLocked() error {
	if !b.dirty {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(b.path), 0755); err != nil {
		return wrapWriteErr(err)
	}
	raw, err := json.MarshalIndent(b.cache, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(b.path, raw, 0644); err != nil {
		return wrapWriteErr(err)
	}
	b.dirty = false
	return nil
}

// Close flushes pending state and marks the backend unusable.
func (b *DocumentBackend) Close() error {
	b.debounce.Stop()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	err := b.flushLocked()
	b.closed = true
	return err
}
