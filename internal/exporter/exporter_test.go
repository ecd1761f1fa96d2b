package exporter_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/lkoehl/deck/internal/exporter"
	"github.com/lkoehl/deck/internal/importer"
	"github.com/lkoehl/deck/internal/model"
)

func sampleStore() *model.Store {
	store := model.NewStore()
	store.Tags = []model.Tag{
		{ID: "t1", Name: "work", Color: "#5F8787"},
		{ID: "t2", Name: "unused", Color: "#000000"},
	}
	store.Websites = []model.Website{
		{
			ID: "w1", Name: "GitHub", URL: "https://github.com/",
			TagIDs:    []string{"t1"},
			Position:  model.Position{Page: 0, Order: 0},
			CreatedAt: time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
		},
		{
			ID: "w2", Name: "Weather & News", URL: "https://example.com/?a=1&b=2",
			TagIDs:    []string{},
			Position:  model.Position{Page: 0, Order: 1},
			CreatedAt: time.Date(2025, 1, 16, 10, 0, 0, 0, time.UTC),
		},
	}
	return store
}

func TestExportJSON_Shape(t *testing.T) {
	data, err := exporter.ExportJSON(sampleStore())
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}

	for _, key := range []string{"websites", "tags", "settings", "version", "timestamp"} {
		if _, exists := doc[key]; !exists {
			t.Errorf("export document missing %q", key)
		}
	}

	var version string
	if err := json.Unmarshal(doc["version"], &version); err != nil || version != "1.0" {
		t.Errorf("expected version \"1.0\", got %s", doc["version"])
	}
}

func TestExportJSON_RoundTripThroughImport(t *testing.T) {
	store := sampleStore()

	data, err := exporter.ExportJSON(store)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	fresh := model.NewStore()
	added, skipped, err := importer.ApplyJSON(fresh, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if added != 2 || skipped != 0 {
		t.Errorf("expected 2 added / 0 skipped, got %d / %d", added, skipped)
	}
	if len(fresh.Tags) != 2 {
		t.Errorf("expected 2 tags after round trip, got %d", len(fresh.Tags))
	}

	w := fresh.GetWebsiteByID("w1")
	if w == nil || !w.HasTag("t1") {
		t.Errorf("tag association lost in round trip: %+v", w)
	}
}

func TestExportHTML_GroupsByTag(t *testing.T) {
	out := exporter.ExportHTML(sampleStore())

	if !strings.HasPrefix(out, "<!DOCTYPE NETSCAPE-Bookmark-file-1>") {
		t.Error("missing Netscape doctype")
	}
	if !strings.Contains(out, "<DT><H3>work</H3>") {
		t.Error("expected a folder for the work tag")
	}
	if strings.Contains(out, "<DT><H3>unused</H3>") {
		t.Error("tags with no websites should not produce folders")
	}
	// HTML-escaped name and URL
	if !strings.Contains(out, "Weather &amp; News") {
		t.Error("website name should be HTML-escaped")
	}
	if !strings.Contains(out, "https://example.com/?a=1&amp;b=2") {
		t.Error("website URL should be HTML-escaped")
	}
}

func TestExportHTML_RoundTripThroughImport(t *testing.T) {
	out := exporter.ExportHTML(sampleStore())

	websites, tags, err := importer.ParseHTML(strings.NewReader(out))
	if err != nil {
		t.Fatalf("re-import failed: %v", err)
	}
	if len(websites) != 2 {
		t.Fatalf("expected 2 websites, got %d", len(websites))
	}
	if len(tags) != 1 || tags[0].Name != "work" {
		t.Errorf("expected the work tag, got %+v", tags)
	}
}
