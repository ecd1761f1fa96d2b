// Package tagquery turns a free-text search string into either a plain
// substring filter or a tag-scoped filter plus residual free text,
// using a "tag:" sentinel prefix.
package tagquery

import (
	"strings"

	"github.com/lkoehl/deck/internal/model"
)

const prefix = "tag:"

// Match is the result of resolving a tag query remainder against the
// known tags.
type Match struct {
	Tag            *model.Tag // nil when no tag name is a prefix of the remainder
	AdditionalText string     // residual free text after the matched tag name
}

// IsTagQuery reports whether the trimmed, case-insensitive query starts
// with "tag:".
func IsTagQuery(query string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(query)), prefix)
}

// ParseTagQuery returns the trimmed text after the "tag:" prefix, or
// empty string when the prefix is absent or nothing follows it.
func ParseTagQuery(query string) string {
	trimmed := strings.TrimSpace(query)
	if !strings.HasPrefix(strings.ToLower(trimmed), prefix) {
		return ""
	}
	return strings.TrimSpace(trimmed[len(prefix):])
}

// FindMatchingTag selects, among all tags whose lower-cased name is a
// prefix of the lower-cased remainder, the one with the longest name.
// The longest-prefix rule disambiguates cases like tags "dev" and
// "development" against remainder "development tools". On equal-length
// candidates the first seen wins.
//
// AdditionalText is everything after the matched name in the
// original-cased remainder, trimmed, so both "work github" and
// "workgithub" input styles resolve.
func FindMatchingTag(remainder string, tags []model.Tag) Match {
	remainder = strings.TrimSpace(remainder)
	lower := strings.ToLower(remainder)

	var best *model.Tag
	for i := range tags {
		name := strings.ToLower(tags[i].Name)
		if name == "" || !strings.HasPrefix(lower, name) {
			continue
		}
		if best == nil || len(tags[i].Name) > len(best.Name) {
			best = &tags[i]
		}
	}

	if best == nil {
		return Match{}
	}

	return Match{
		Tag:            best,
		AdditionalText: strings.TrimSpace(remainder[len(best.Name):]),
	}
}

// FilterTags returns the tags whose names contain searchText,
// case-insensitive. Empty search text returns tags unchanged.
func FilterTags(tags []model.Tag, searchText string) []model.Tag {
	if searchText == "" {
		return tags
	}

	needle := strings.ToLower(searchText)
	var result []model.Tag
	for _, t := range tags {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			result = append(result, t)
		}
	}
	return result
}
