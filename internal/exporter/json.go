package exporter

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lkoehl/deck/internal/model"
)

// DocumentVersion is written into every export document.
const DocumentVersion = "1.0"

// Document is the user-facing export file shape. Import accepts the
// same shape.
type Document struct {
	Websites  []model.Website `json:"websites"`
	Tags      []model.Tag     `json:"tags"`
	Settings  model.Settings  `json:"settings"`
	Version   string          `json:"version"`
	Timestamp string          `json:"timestamp"`
}

// ExportJSON renders the store as an export document.
func ExportJSON(store *model.Store) ([]byte, error) {
	doc := Document{
		Websites:  store.Websites,
		Tags:      store.Tags,
		Settings:  store.Settings,
		Version:   DocumentVersion,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if doc.Websites == nil {
		doc.Websites = []model.Website{}
	}
	if doc.Tags == nil {
		doc.Tags = []model.Tag{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/deck-export-YYYY-MM-DD.json
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("deck-export-%s.json", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}
