package importer

import (
	"io"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/lkoehl/deck/internal/model"
	"github.com/lkoehl/deck/internal/validate"
)

// ParseHTML parses Netscape bookmark HTML into websites and tags.
// Folder names become tags; an anchor inherits the tags of every
// folder enclosing it. Websites are positioned sequentially on page 0;
// the caller repositions on merge if needed.
func ParseHTML(r io.Reader) ([]model.Website, []model.Tag, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, nil, err
	}

	var websites []model.Website
	var tags []model.Tag
	tagByName := map[string]*model.Tag{} // lower-cased name -> tag

	// Track the stack of enclosing folder tags
	var tagStack []string // tag IDs
	var pendingTag *model.Tag

	order := 0

	internTag := func(name string) *model.Tag {
		key := strings.ToLower(name)
		if t, exists := tagByName[key]; exists {
			return t
		}
		tags = append(tags, model.NewTag(model.NewTagParams{Name: name}))
		t := &tags[len(tags)-1]
		tagByName[key] = t
		return t
	}

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				// Folder definition - becomes a tag
				name := getTextContent(n)
				if name != "" {
					// Mark as pending - pushed when we see the next DL
					pendingTag = internTag(name)
				}
				return // Don't recurse into H3

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					return
				}
				normalized, err := validate.NormalizeURL(href)
				if err != nil {
					// Skip javascript:/data:/place: style entries
					return
				}

				name := getTextContent(n)
				if name == "" {
					name = href // fallback to URL as name
				}

				// Parse ADD_DATE timestamp
				createdAt := time.Now()
				if addDate := getAttr(n, "add_date"); addDate != "" {
					if ts, err := strconv.ParseInt(addDate, 10, 64); err == nil {
						createdAt = time.Unix(ts, 0)
					}
				}

				tagIDs := make([]string, len(tagStack))
				copy(tagIDs, tagStack)

				websites = append(websites, model.Website{
					ID:         model.GenerateUUID(),
					Name:       name,
					URL:        normalized,
					TagIDs:     tagIDs,
					ExtraLinks: []model.ExtraLink{},
					Position:   model.Position{Page: 0, Order: order},
					CreatedAt:  createdAt,
					UpdatedAt:  createdAt,
				})
				order++
				return // Don't recurse into A

			case "dl":
				// Definition list - marks folder contents
				pushed := false
				if pendingTag != nil {
					tagStack = append(tagStack, pendingTag.ID)
					pendingTag = nil
					pushed = true
				}

				for c := n.FirstChild; c != nil; c = c.NextSibling {
					parse(c)
				}

				if pushed && len(tagStack) > 0 {
					tagStack = tagStack[:len(tagStack)-1]
				}
				return // We handled children
			}
		}

		// Recurse into children
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			parse(c)
		}
	}

	parse(doc)
	return websites, tags, nil
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
