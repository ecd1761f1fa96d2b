package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/lkoehl/deck/internal/model"
)

// DefaultHTMLExportPath returns the default path for Netscape HTML
// exports: ~/Downloads/deck-export-YYYY-MM-DD.html
func DefaultHTMLExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("deck-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML exports the store to Netscape bookmark HTML format,
// grouped by tag. Untagged websites come first at the root level.
func ExportHTML(store *model.Store) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	// Untagged websites at root level
	for _, w := range store.Websites {
		if len(w.TagIDs) == 0 {
			writeWebsite(&b, w, 1)
		}
	}

	// One folder per tag
	for _, tag := range store.Tags {
		tagged := store.WebsitesWithTag(tag.ID)
		if len(tagged) == 0 {
			continue
		}

		b.WriteString(fmt.Sprintf("    <DT><H3>%s</H3>\n", html.EscapeString(tag.Name)))
		b.WriteString("    <DL><p>\n")
		for _, w := range tagged {
			writeWebsite(&b, w, 2)
		}
		b.WriteString("    </DL><p>\n")
	}

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeWebsite writes a single DT/A entry at the given indent level.
func writeWebsite(b *strings.Builder, w model.Website, indent int) {
	prefix := strings.Repeat("    ", indent)
	b.WriteString(fmt.Sprintf("%s<DT><A HREF=\"%s\" ADD_DATE=\"%d\">%s</A>\n",
		prefix,
		html.EscapeString(w.URL),
		w.CreatedAt.Unix(),
		html.EscapeString(w.Name)))
}
