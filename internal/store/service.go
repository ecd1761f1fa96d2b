// Package store owns the in-memory entity state and persists it
// through a storage backend. The backend sees only serialized
// envelopes; all Website/Tag shape knowledge stays here.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/lkoehl/deck/internal/model"
	"github.com/lkoehl/deck/internal/storage"
)

// Storage keys, one per collection.
const (
	KeyWebsites = "websites"
	KeyTags     = "tags"
	KeySettings = "settings"
)

// Service binds a model.Store to a storage backend.
type Service struct {
	backend storage.Backend
	Data    *model.Store
}

// Open loads all collections from the backend. Missing or corrupt
// keys load as empty collections.
func Open(backend storage.Backend) (*Service, error) {
	s := &Service{
		backend: backend,
		Data:    model.NewStore(),
	}

	if err := s.load(KeyWebsites, &s.Data.Websites); err != nil {
		return nil, err
	}
	if err := s.load(KeyTags, &s.Data.Tags); err != nil {
		return nil, err
	}
	if err := s.load(KeySettings, &s.Data.Settings); err != nil {
		return nil, err
	}

	if s.Data.Websites == nil {
		s.Data.Websites = []model.Website{}
	}
	if s.Data.Tags == nil {
		s.Data.Tags = []model.Tag{}
	}
	return s, nil
}

func (s *Service) load(key string, target any) error {
	raw, ok, err := s.backend.Get(key)
	if err != nil {
		return fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return nil
	}
	// A value that no longer matches the expected shape reads as
	// empty rather than failing the whole open.
	if err := json.Unmarshal(raw, target); err != nil {
		return nil
	}
	return nil
}

// Save writes all collections to the backend. The write may sit in
// the backend's cache until its debounce window elapses; use Flush
// for a durability guarantee.
func (s *Service) Save() error {
	if err := s.backend.Set(KeyWebsites, s.Data.Websites); err != nil {
		return fmt.Errorf("save %s: %w", KeyWebsites, err)
	}
	if err := s.backend.Set(KeyTags, s.Data.Tags); err != nil {
		return fmt.Errorf("save %s: %w", KeyTags, err)
	}
	if err := s.backend.Set(KeySettings, s.Data.Settings); err != nil {
		return fmt.Errorf("save %s: %w", KeySettings, err)
	}
	return nil
}

// Flush forces any pending backend write to disk.
func (s *Service) Flush() error {
	return s.backend.Flush()
}

// Close saves, flushes and releases the backend.
func (s *Service) Close() error {
	if err := s.Save(); err != nil {
		return err
	}
	return s.backend.Close()
}

// ClearAll removes every persisted collection and resets the
// in-memory state.
func (s *Service) ClearAll() error {
	if err := s.backend.Clear(); err != nil {
		return err
	}
	s.Data = model.NewStore()
	return nil
}
