package importer_test

import (
	"strings"
	"testing"

	"github.com/lkoehl/deck/internal/importer"
	"github.com/lkoehl/deck/internal/model"
)

const sampleHTML = `<!DOCTYPE NETSCAPE-Bookmark-file-1>
<TITLE>Bookmarks</TITLE>
<H1>Bookmarks</H1>
<DL><p>
    <DT><A HREF="https://news.ycombinator.com/" ADD_DATE="1736500000">Hacker News</A>
    <DT><H3>Development</H3>
    <DL><p>
        <DT><A HREF="https://github.com/">GitHub</A>
        <DT><H3>React</H3>
        <DL><p>
            <DT><A HREF="https://react.dev/">React Docs</A>
        </DL><p>
    </DL><p>
</DL><p>
`

func findWebsite(websites []model.Website, name string) *model.Website {
	for i := range websites {
		if websites[i].Name == name {
			return &websites[i]
		}
	}
	return nil
}

func findTag(tags []model.Tag, name string) *model.Tag {
	for i := range tags {
		if tags[i].Name == name {
			return &tags[i]
		}
	}
	return nil
}

func TestParseHTML_FoldersBecomeTags(t *testing.T) {
	websites, tags, err := importer.ParseHTML(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(websites) != 3 {
		t.Fatalf("expected 3 websites, got %d", len(websites))
	}
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %d", len(tags))
	}

	dev := findTag(tags, "Development")
	react := findTag(tags, "React")
	if dev == nil || react == nil {
		t.Fatalf("missing expected tags, got %+v", tags)
	}
	if dev.Color == "" || react.Color == "" {
		t.Error("folder tags should get a default color")
	}

	hn := findWebsite(websites, "Hacker News")
	if hn == nil {
		t.Fatal("missing Hacker News")
	}
	if len(hn.TagIDs) != 0 {
		t.Errorf("root-level website should have no tags, got %v", hn.TagIDs)
	}
	if hn.CreatedAt.Unix() != 1736500000 {
		t.Errorf("ADD_DATE not honoured: %v", hn.CreatedAt)
	}

	gh := findWebsite(websites, "GitHub")
	if gh == nil {
		t.Fatal("missing GitHub")
	}
	if !gh.HasTag(dev.ID) {
		t.Error("GitHub should carry the Development tag")
	}

	// Nested folder: website inherits all enclosing tags
	rd := findWebsite(websites, "React Docs")
	if rd == nil {
		t.Fatal("missing React Docs")
	}
	if !rd.HasTag(dev.ID) || !rd.HasTag(react.ID) {
		t.Errorf("nested website should inherit both tags, got %v", rd.TagIDs)
	}
}

func TestParseHTML_SequentialOrder(t *testing.T) {
	websites, _, err := importer.ParseHTML(strings.NewReader(sampleHTML))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	for i, w := range websites {
		if w.Position.Page != 0 {
			t.Errorf("website %d: expected page 0, got %d", i, w.Position.Page)
		}
		if w.Position.Order != i {
			t.Errorf("website %d: expected order %d, got %d", i, i, w.Position.Order)
		}
	}
}

func TestParseHTML_SkipsUnsafeAndEmptyHrefs(t *testing.T) {
	input := `<DL><p>
		<DT><A HREF="javascript:alert(1)">Bad</A>
		<DT><A HREF="">Empty</A>
		<DT><A HREF="https://example.com/">Good</A>
	</DL><p>`

	websites, _, err := importer.ParseHTML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(websites) != 1 || websites[0].Name != "Good" {
		t.Errorf("expected only the safe anchor, got %+v", websites)
	}
}

func TestParseHTML_FallsBackToURLAsName(t *testing.T) {
	input := `<DL><p><DT><A HREF="https://example.com/"></A></DL><p>`

	websites, _, err := importer.ParseHTML(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if len(websites) != 1 {
		t.Fatalf("expected 1 website, got %d", len(websites))
	}
	if websites[0].Name != "https://example.com/" {
		t.Errorf("expected URL fallback name, got %q", websites[0].Name)
	}
}
