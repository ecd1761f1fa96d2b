package importer

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/lkoehl/deck/internal/model"
)

// ErrInvalidImport is returned when the document is not a usable
// export file. The whole import is rejected; no partial state.
var ErrInvalidImport = errors.New("invalid import data")

// jsonDocument mirrors the export document shape. Websites is a raw
// message so a missing key can be told apart from an empty array.
type jsonDocument struct {
	Websites json.RawMessage `json:"websites"`
	Tags     []model.Tag     `json:"tags"`
	Settings *model.Settings `json:"settings"`
	Version  string          `json:"version"`
}

// ParseJSON parses an export document. A document lacking a websites
// array is rejected outright with ErrInvalidImport.
func ParseJSON(r io.Reader) ([]model.Website, []model.Tag, *model.Settings, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, nil, err
	}

	var doc jsonDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nil, nil, ErrInvalidImport
	}
	if doc.Websites == nil {
		return nil, nil, nil, ErrInvalidImport
	}

	var websites []model.Website
	if err := json.Unmarshal(doc.Websites, &websites); err != nil {
		return nil, nil, nil, ErrInvalidImport
	}
	if websites == nil {
		websites = []model.Website{}
	}

	tags := doc.Tags
	if tags == nil {
		tags = []model.Tag{}
	}

	return websites, tags, doc.Settings, nil
}

// ApplyJSON parses and applies an export document to the store
// atomically: on any error the store is untouched.
func ApplyJSON(store *model.Store, r io.Reader) (added, skipped int, err error) {
	websites, tags, settings, err := ParseJSON(r)
	if err != nil {
		return 0, 0, err
	}

	added, skipped = store.MergeImported(websites, tags)
	if settings != nil {
		store.Settings = *settings
	}
	return added, skipped, nil
}
