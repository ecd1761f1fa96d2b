package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/lkoehl/deck/internal/model"
	"github.com/lkoehl/deck/internal/validate"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestWebsite_JSONSerialization(t *testing.T) {
	tests := []struct {
		name    string
		website model.Website
	}{
		{
			name: "website with all fields",
			website: model.Website{
				ID:                  "w1",
				Name:                "TanStack Router",
				URL:                 "https://tanstack.com/router",
				Favicon:             "https://icons.duckduckgo.com/ip3/tanstack.com.ico",
				TagIDs:              []string{"t1", "t2"},
				CustomIcon:          "data:image/png;base64,AAAA",
				IconZoom:            1.5,
				IconOffsetX:         -2,
				IconOffsetY:         4,
				IconBackgroundColor: "#1A1A2E",
				ExtraLinks: []model.ExtraLink{
					{ID: "e1", Name: "Docs", URL: "https://tanstack.com/router/latest/docs"},
				},
				Position:   model.Position{Page: 1, Order: 3},
				CreatedAt:  time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC),
				UpdatedAt:  time.Date(2025, 1, 20, 14, 22, 0, 0, time.UTC),
				VisitCount: 7,
				VisitedAt:  timePtr(time.Date(2025, 1, 20, 14, 22, 0, 0, time.UTC)),
			},
		},
		{
			name: "minimal website (never visited)",
			website: model.Website{
				ID:         "w2",
				Name:       "Hacker News",
				URL:        "https://news.ycombinator.com/",
				TagIDs:     []string{},
				ExtraLinks: []model.ExtraLink{},
				Position:   model.Position{Page: 0, Order: 0},
				CreatedAt:  time.Date(2025, 1, 10, 8, 0, 0, 0, time.UTC),
				VisitedAt:  nil,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.website)
			if err != nil {
				t.Fatalf("failed to marshal: %v", err)
			}

			var got model.Website
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("failed to unmarshal: %v", err)
			}

			if got.ID != tt.website.ID {
				t.Errorf("ID mismatch: got %q, want %q", got.ID, tt.website.ID)
			}
			if got.Name != tt.website.Name {
				t.Errorf("Name mismatch: got %q, want %q", got.Name, tt.website.Name)
			}
			if got.URL != tt.website.URL {
				t.Errorf("URL mismatch: got %q, want %q", got.URL, tt.website.URL)
			}
			if got.Position != tt.website.Position {
				t.Errorf("Position mismatch: got %+v, want %+v", got.Position, tt.website.Position)
			}
			if got.VisitCount != tt.website.VisitCount {
				t.Errorf("VisitCount mismatch: got %d, want %d", got.VisitCount, tt.website.VisitCount)
			}
		})
	}
}

func TestNewWebsite_Defaults(t *testing.T) {
	w := model.NewWebsite(model.NewWebsiteParams{
		Name:     "Example",
		URL:      "https://example.com/",
		Position: model.Position{Page: 2, Order: 5},
	})

	if w.ID == "" {
		t.Error("expected generated ID")
	}
	if w.TagIDs == nil {
		t.Error("TagIDs should be initialized, not nil")
	}
	if w.ExtraLinks == nil {
		t.Error("ExtraLinks should be initialized, not nil")
	}
	if w.VisitedAt != nil {
		t.Error("new website should never have been visited")
	}
	if w.Position.Page != 2 || w.Position.Order != 5 {
		t.Errorf("position not applied: %+v", w.Position)
	}
}

func TestNewTag_GeneratesIDAndTimestamps(t *testing.T) {
	tag := model.NewTag(model.NewTagParams{Name: "work", Color: "#5F8787"})

	if tag.ID == "" {
		t.Error("expected generated ID")
	}
	if tag.Name != "work" {
		t.Errorf("expected name 'work', got %q", tag.Name)
	}
	if tag.CreatedAt.IsZero() || tag.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestNewTag_DefaultColor(t *testing.T) {
	tag := model.NewTag(model.NewTagParams{Name: "work"})
	if !validate.IsValidHexColor(tag.Color) {
		t.Errorf("tag created without a color should get a palette color, got %q", tag.Color)
	}

	// Same name, same color.
	again := model.NewTag(model.NewTagParams{Name: "Work"})
	if again.Color != tag.Color {
		t.Errorf("color should be stable per name, got %q and %q", tag.Color, again.Color)
	}

	explicit := model.NewTag(model.NewTagParams{Name: "work", Color: "#112233"})
	if explicit.Color != "#112233" {
		t.Errorf("explicit color must win, got %q", explicit.Color)
	}
}

func TestSettings_PageSize(t *testing.T) {
	tests := []struct {
		name     string
		settings model.Settings
		want     int
	}{
		{"default grid", model.DefaultSettings(), 24},
		{"custom grid", model.Settings{Columns: 5, Rows: 3}, 15},
		{"zero value falls back", model.Settings{}, 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.settings.PageSize(); got != tt.want {
				t.Errorf("PageSize() = %d, want %d", got, tt.want)
			}
		})
	}
}
