package model

import "time"

// MaxExtraLinks is the maximum number of extra links per website.
const MaxExtraLinks = 10

// Website represents a launchpad tile: a saved URL with icon styling,
// tags and a grid position.
type Website struct {
	ID                  string      `json:"id"`
	Name                string      `json:"name"`
	URL                 string      `json:"url"`
	Favicon             string      `json:"favicon"`
	TagIDs              []string    `json:"tagIds"`
	CustomIcon          string      `json:"customIcon,omitempty"`
	IconZoom            float64     `json:"iconZoom,omitempty"`
	IconOffsetX         int         `json:"iconOffsetX,omitempty"`
	IconOffsetY         int         `json:"iconOffsetY,omitempty"`
	IconBackgroundColor string      `json:"iconBackgroundColor,omitempty"`
	ExtraLinks          []ExtraLink `json:"extraLinks"`
	Position            Position    `json:"position"`
	CreatedAt           time.Time   `json:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt"`
	VisitCount          int         `json:"visitCount"`
	VisitedAt           *time.Time  `json:"visitedAt"` // nil = never visited
}

// ExtraLink is a secondary URL attached to a website (e.g. a project's
// issue tracker next to its homepage).
type ExtraLink struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Position locates a website on the grid. Order values need not be
// contiguous; display sequence is sort by (Page, Order).
type Position struct {
	Page  int `json:"page"`
	Order int `json:"order"`
}

// NewWebsiteParams holds parameters for creating a new Website.
type NewWebsiteParams struct {
	Name     string
	URL      string
	Favicon  string
	TagIDs   []string
	Position Position
}

// NewWebsite creates a Website with generated UUID and timestamps.
func NewWebsite(params NewWebsiteParams) Website {
	tagIDs := params.TagIDs
	if tagIDs == nil {
		tagIDs = []string{}
	}

	now := time.Now()
	return Website{
		ID:         generateUUID(),
		Name:       params.Name,
		URL:        params.URL,
		Favicon:    params.Favicon,
		TagIDs:     tagIDs,
		ExtraLinks: []ExtraLink{},
		Position:   params.Position,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// NewExtraLink creates an ExtraLink with a generated UUID.
func NewExtraLink(name, url string) ExtraLink {
	return ExtraLink{
		ID:   generateUUID(),
		Name: name,
		URL:  url,
	}
}

// HasTag reports whether the website carries the given tag id.
func (w *Website) HasTag(tagID string) bool {
	for _, id := range w.TagIDs {
		if id == tagID {
			return true
		}
	}
	return false
}
