package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/lkoehl/deck/internal/model"
	"github.com/lkoehl/deck/internal/tagquery"
)

// Result represents a search match.
type Result struct {
	Website        *model.Website
	MatchedIndexes []int
	Score          int
}

// websiteNames implements fuzzy.Source for a website slice.
type websiteNames []*model.Website

func (wn websiteNames) String(i int) string {
	return wn[i].Name
}

func (wn websiteNames) Len() int {
	return len(wn)
}

// Search resolves a query against the store. A "tag:" query narrows to
// websites carrying the matched tag, then fuzzy-matches any residual
// text within that subset. Plain queries fuzzy-match all website names.
func Search(store *model.Store, query string) []Result {
	if query == "" {
		return nil
	}

	if tagquery.IsTagQuery(query) {
		remainder := tagquery.ParseTagQuery(query)
		if remainder == "" {
			return nil
		}

		m := tagquery.FindMatchingTag(remainder, store.Tags)
		if m.Tag == nil {
			return nil
		}

		tagged := store.WebsitesWithTag(m.Tag.ID)
		if m.AdditionalText == "" {
			results := make([]Result, len(tagged))
			for i := range tagged {
				results[i] = Result{Website: &tagged[i]}
			}
			return results
		}
		return fuzzyMatch(tagged, m.AdditionalText)
	}

	return fuzzyMatch(store.Websites, query)
}

// fuzzyMatch runs fuzzy matching over website names.
// Results are sorted by match score, best first.
func fuzzyMatch(websites []model.Website, query string) []Result {
	candidates := make(websiteNames, len(websites))
	for i := range websites {
		candidates[i] = &websites[i]
	}

	matches := fuzzy.FindFrom(query, candidates)

	results := make([]Result, len(matches))
	for i, m := range matches {
		results[i] = Result{
			Website:        candidates[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}
	return results
}
