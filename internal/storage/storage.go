// Package storage persists app state through one of three key-value
// backends selected once at startup. Every value is wrapped in a
// versioned envelope and written under a namespace prefix so that
// Clear and Keys never touch foreign data living in the same host
// location.
package storage

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// Version is the envelope version written with every value.
	Version = "1.0"

	// Namespace prefixes every key before it reaches a backend.
	Namespace = "deck."

	// DefaultDebounce is the quiet period before cached backends
	// flush to disk. Restarted on every Set so rapid successive
	// mutations collapse into one write.
	DefaultDebounce = 500 * time.Millisecond
)

// ErrStorageFull signals a quota/disk-full condition. It is distinct
// from generic write failure so callers can tell the user to free
// space or export data. Detect with errors.Is.
var ErrStorageFull = errors.New("storage full")

// ErrNotInitialized is returned when a backend is used after Close.
var ErrNotInitialized = errors.New("storage backend not initialized")

// Backend is the uniform contract over all persistence backends.
// All recoverable storage errors are returned, never panicked.
type Backend interface {
	// Get reads the value stored under key. The second return is
	// false when the key is missing or its stored bytes do not parse;
	// a parse failure is swallowed, not surfaced, favoring
	// availability over strictness.
	Get(key string) (json.RawMessage, bool, error)

	// Set wraps value in the versioned envelope and stores it.
	// Cached backends defer the actual write behind the debounce
	// window; Flush forces it.
	Set(key string, value any) error

	// Remove deletes the value stored under key. Removing a missing
	// key is not an error.
	Remove(key string) error

	// Clear removes every namespaced key. Idempotent; foreign keys
	// in the same host location are left untouched.
	Clear() error

	// Keys lists all namespaced keys, prefix stripped.
	Keys() ([]string, error)

	// Flush writes any pending cached state synchronously.
	Flush() error

	// Close flushes and releases the backend.
	Close() error
}

// envelope is the persistence wrapper around every stored value.
type envelope struct {
	Version   string          `json:"version"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
}

// encodeValue wraps value in an envelope and serializes it.
func encodeValue(value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{
		Version:   Version,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// decodeValue unwraps an envelope. Legacy un-enveloped payloads are
// returned as-is; unparseable bytes read as a miss. A version mismatch
// is logged but the read is still attempted (no migration engine).
func decodeValue(raw []byte, key string) (json.RawMessage, bool) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if json.Valid(raw) {
			// Legacy payload written before the envelope existed.
			return json.RawMessage(raw), true
		}
		return nil, false
	}

	if env.Data == nil {
		// Parsed, but not an envelope. Treat as legacy.
		if json.Valid(raw) {
			return json.RawMessage(raw), true
		}
		return nil, false
	}

	if env.Version != Version {
		log.Printf("storage: key %q has version %q, expected %q; reading anyway", key, env.Version, Version)
	}
	return env.Data, true
}

// isStorageFull reports whether err is a quota/disk-full condition.
func isStorageFull(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "no space left") ||
		strings.Contains(msg, "disk quota exceeded") ||
		strings.Contains(msg, "database or disk is full")
}

// wrapWriteErr upgrades quota conditions to ErrStorageFull.
func wrapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	if isStorageFull(err) {
		return errors.Join(ErrStorageFull, err)
	}
	return err
}

// DefaultDataDir returns the default data directory: ~/.config/deck
func DefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "deck"), nil
}

// Open probes the environment once and returns the matching backend.
// Precedence: DECK_BACKEND override, then an existing SQLite database,
// then an existing document file, then the file-per-key default. The
// selection sticks for the process lifetime; a backend that fails
// later surfaces its error to the caller, it is never silently
// swapped for another.
func Open(dir string) (Backend, error) {
	switch os.Getenv("DECK_BACKEND") {
	case "sqlite":
		return NewSQLiteBackend(SQLitePath(dir), DefaultDebounce)
	case "document":
		return NewDocumentBackend(DocumentPath(dir), DefaultDebounce)
	case "file":
		return NewFileBackend(dir), nil
	}

	if _, err := os.Stat(SQLitePath(dir)); err == nil {
		return NewSQLiteBackend(SQLitePath(dir), DefaultDebounce)
	}
	if _, err := os.Stat(DocumentPath(dir)); err == nil {
		return NewDocumentBackend(DocumentPath(dir), DefaultDebounce)
	}
	return NewFileBackend(dir), nil
}

// Host files of the other backends. The FileBackend must never treat
// these as its own keys even though they share the namespace prefix.
const (
	sqliteFile   = "deck.db"
	documentFile = "deck.json"
)

// SQLitePath returns the SQLite database path inside dir.
func SQLitePath(dir string) string {
	return filepath.Join(dir, sqliteFile)
}

// DocumentPath returns the single-document file path inside dir.
func DocumentPath(dir string) string {
	return filepath.Join(dir, documentFile)
}
