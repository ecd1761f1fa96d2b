package model

import (
	"hash/fnv"
	"strings"
	"time"
)

// tagPalette supplies colors for tags created without an explicit one
// (inline tag creation, bookmark import). Muted tones matching the UI.
var tagPalette = []string{
	"#5F8787",
	"#87875F",
	"#875F87",
	"#5F875F",
	"#87645F",
	"#5F6487",
}

// defaultTagColor picks a palette color by name so the same tag name
// always lands on the same color.
func defaultTagColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	return tagPalette[h.Sum32()%uint32(len(tagPalette))]
}

// Tag represents a user-defined label attachable to multiple websites.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewTagParams holds parameters for creating a new Tag.
type NewTagParams struct {
	Name  string
	Color string
}

// NewTag creates a Tag with generated UUID and timestamps. An empty
// Color gets a default palette color derived from the name.
func NewTag(params NewTagParams) Tag {
	color := params.Color
	if color == "" {
		color = defaultTagColor(params.Name)
	}
	now := time.Now()
	return Tag{
		ID:        generateUUID(),
		Name:      params.Name,
		Color:     color,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
