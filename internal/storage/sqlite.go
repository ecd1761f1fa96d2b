package storage

import (
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

const currentSchemaVersion = 1

// SQLiteBackend stores keys in a kv table. Like DocumentBackend it
// serves reads from an in-memory cache loaded at open and flushes
// mutations behind the debounce window, replacing the namespaced rows
// in one transaction.
type SQLiteBackend struct {
	db       *sql.DB
	path     string
	mu       sync.Mutex
	cache    map[string]json.RawMessage // full (namespaced) key -> envelope bytes
	dirty    bool
	closed   bool
	debounce *debouncer
}

// NewSQLiteBackend opens (or creates) the database at path and loads
// all namespaced rows into the cache.
func NewSQLiteBackend(path string, debounce time.Duration) (*SQLiteBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	b := &SQLiteBackend{
		db:    db,
		path:  path,
		cache: map[string]json.RawMessage{},
	}
	b.debounce = newDebouncer(debounce, b.Flush)

	if err := b.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	if err := b.loadCache(); err != nil {
		db.Close()
		return nil, err
	}
	return b, nil
}

// Path returns the database file path.
func (b *SQLiteBackend) Path() string {
	return b.path
}

func (b *SQLiteBackend) migrate() error {
	var version int
	err := b.db.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		// Table doesn't exist or is empty, start fresh
		version = 0
	}

	if version < 1 {
		schema := `
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY
			);

			CREATE TABLE IF NOT EXISTS kv (
				key TEXT PRIMARY KEY NOT NULL,
				value TEXT NOT NULL
			);

			INSERT OR REPLACE INTO schema_version (version) VALUES (1);
		`
		if _, err := b.db.Exec(schema); err != nil {
			return err
		}
	}

	return nil
}

func (b *SQLiteBackend) loadCache() error {
	rows, err := b.db.Query("SELECT key, value FROM kv WHERE key LIKE ?", Namespace+"%")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return err
		}
		b.cache[key] = json.RawMessage(value)
	}
	return rows.Err()
}

// Get reads the value stored under key from the cache.
func (b *SQLiteBackend) Get(key string) (json.RawMessage, bool, error) {
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
func (b *SQLiteBackend) Set(key string, value any) error {
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
func (b *SQLiteBackend) Remove(key string) error {
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

// Clear removes every namespaced key.
func (b *SQLiteBackend) Clear() error {
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
func (b *SQLiteBackend) Keys() ([]string, error) {
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

// Flush replaces the namespaced rows with the cache contents in one
// transaction. All or nothing.
func (b *SQLiteBackend) Flush() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushLocked()
}

func (b *SQLiteBackend) flushLocked() error {
	if !b.dirty {
		return nil
	}

	tx, err := b.db.Begin()
	if err != nil {
		return wrapWriteErr(err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM kv WHERE key LIKE ?", Namespace+"%"); err != nil {
		return wrapWriteErr(err)
	}

	stmt, err := tx.Prepare("INSERT INTO kv (key, value) VALUES (?, ?)")
	if err != nil {
		return wrapWriteErr(err)
	}
	defer stmt.Close()

	for key, value := range b.cache {
		if _, err := stmt.Exec(key, string(value)); err != nil {
			return wrapWriteErr(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return wrapWriteErr(err)
	}
	b.dirty = false
	return nil
}

// Close flushes pending state and closes the database.
func (b *SQLiteBackend) Close() error {
	b.debounce.Stop()

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	flushErr := b.flushLocked()
	b.closed = true
	if err := b.db.Close(); err != nil && flushErr == nil {
		flushErr = err
	}
	return flushErr
}
