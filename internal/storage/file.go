package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// FileBackend stores one JSON file per key in a directory. Writes are
// synchronous; Flush is a no-op. This is the default backend.
type FileBackend struct {
	dir string
}

// NewFileBackend creates a FileBackend rooted at dir.
// The directory is created on first write.
func NewFileBackend(dir string) *FileBackend {
	return &FileBackend{dir: dir}
}

// Path returns the storage directory.
func (b *FileBackend) Path() string {
	return b.dir
}

func (b *FileBackend) keyPath(key string) string {
	return filepath.Join(b.dir, Namespace+key+".json")
}

// Get reads the value stored under key.
func (b *FileBackend) Get(key string) (json.RawMessage, bool, error) {
	raw, err := os.ReadFile(b.keyPath(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	data, ok := decodeValue(raw, key)
	return data, ok, nil
}

// Set writes the enveloped value under key.
func (b *FileBackend) Set(key string, value any) error {
	raw, err := encodeValue(value)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(b.dir, 0755); err != nil {
		return wrapWriteErr(err)
	}
	return wrapWriteErr(os.WriteFile(b.keyPath(key), raw, 0644))
}

// Remove deletes the value stored under key.
func (b *FileBackend) Remove(key string) error {
	err := os.Remove(b.keyPath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// isKeyFile reports whether name is one of this backend's key files.
// The other backends' host files (deck.json, deck.db) also carry the
// namespace prefix but are never keys.
func isKeyFile(name string) bool {
	if name == documentFile || name == sqliteFile {
		return false
	}
	return strings.HasPrefix(name, Namespace) && strings.HasSuffix(name, ".json")
}

// Clear removes every namespaced key file. Files without the namespace
// prefix and the other backends' data files are left untouched.
func (b *FileBackend) Clear() error {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !isKeyFile(entry.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(b.dir, entry.Name())); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}

// Keys lists all namespaced keys, prefix stripped.
func (b *FileBackend) Keys() ([]string, error) {
	entries, err := os.ReadDir(b.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}

	keys := []string{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isKeyFile(name) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(strings.TrimPrefix(name, Namespace), ".json"))
	}
	return keys, nil
}

// Flush is a no-op; writes are synchronous.
func (b *FileBackend) Flush() error {
	return nil
}

// Close is a no-op.
func (b *FileBackend) Close() error {
	return nil
}
