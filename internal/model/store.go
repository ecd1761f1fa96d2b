package model

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/lkoehl/deck/internal/validate"
)

// ErrDuplicateName is returned when adding or renaming an entity whose
// name is already taken (case-insensitive).
var ErrDuplicateName = errors.New("name already in use")

// ErrNotFound is returned when an update targets an ID not in the store.
var ErrNotFound = errors.New("not found")

// ErrExtraLinkLimit is returned when a website already carries
// MaxExtraLinks extra links.
var ErrExtraLinkLimit = errors.New("extra link limit reached")

// Store holds all websites, tags and settings.
type Store struct {
	Websites []Website `json:"websites"`
	Tags     []Tag     `json:"tags"`
	Settings Settings  `json:"settings"`
}

// NewStore creates an empty Store with initialized slices and default settings.
func NewStore() *Store {
	return &Store{
		Websites: []Website{},
		Tags:     []Tag{},
		Settings: DefaultSettings(),
	}
}

// GetWebsiteByID finds a website by ID, returns nil if not found.
func (s *Store) GetWebsiteByID(id string) *Website {
	for i := range s.Websites {
		if s.Websites[i].ID == id {
			return &s.Websites[i]
		}
	}
	return nil
}

// GetTagByID finds a tag by ID, returns nil if not found.
func (s *Store) GetTagByID(id string) *Tag {
	for i := range s.Tags {
		if s.Tags[i].ID == id {
			return &s.Tags[i]
		}
	}
	return nil
}

// GetTagByName finds a tag by name, case-insensitive. Returns nil if not found.
func (s *Store) GetTagByName(name string) *Tag {
	for i := range s.Tags {
		if strings.EqualFold(s.Tags[i].Name, name) {
			return &s.Tags[i]
		}
	}
	return nil
}

// WebsitesOnPage returns the websites on the given page, sorted by
// Order. Duplicate order values keep their original relative position.
func (s *Store) WebsitesOnPage(page int) []Website {
	var result []Website
	for _, w := range s.Websites {
		if w.Position.Page == page {
			result = append(result, w)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position.Order < result[j].Position.Order
	})
	return result
}

// WebsitesWithTag returns all websites carrying the given tag id,
// in grid order.
func (s *Store) WebsitesWithTag(tagID string) []Website {
	var result []Website
	for _, w := range s.Websites {
		if w.HasTag(tagID) {
			result = append(result, w)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		a, b := result[i].Position, result[j].Position
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		return a.Order < b.Order
	})
	return result
}

// PageCount returns the number of pages in use (at least 1).
func (s *Store) PageCount() int {
	max := 0
	for _, w := range s.Websites {
		if w.Position.Page > max {
			max = w.Position.Page
		}
	}
	return max + 1
}

// NextOrder returns an order value after all existing tiles on the page.
func (s *Store) NextOrder(page int) int {
	next := 0
	for _, w := range s.Websites {
		if w.Position.Page == page && w.Position.Order >= next {
			next = w.Position.Order + 1
		}
	}
	return next
}

// AddWebsite appends a website. Rejects a duplicate name (case-insensitive).
func (s *Store) AddWebsite(w Website) error {
	for i := range s.Websites {
		if strings.EqualFold(s.Websites[i].Name, w.Name) {
			return ErrDuplicateName
		}
	}
	s.Websites = append(s.Websites, w)
	return nil
}

// UpdateWebsite replaces the website with the same ID. A rename onto
// another website's name (case-insensitive) is rejected, same as on add.
// Returns ErrNotFound if no website has that ID.
func (s *Store) UpdateWebsite(w Website) error {
	for i := range s.Websites {
		if s.Websites[i].ID != w.ID && strings.EqualFold(s.Websites[i].Name, w.Name) {
			return ErrDuplicateName
		}
	}
	for i := range s.Websites {
		if s.Websites[i].ID == w.ID {
			w.UpdatedAt = time.Now()
			w.CreatedAt = s.Websites[i].CreatedAt
			s.Websites[i] = w
			return nil
		}
	}
	return ErrNotFound
}

// DeleteWebsite removes the website with the given ID.
// Returns false if no website has that ID.
func (s *Store) DeleteWebsite(id string) bool {
	for i := range s.Websites {
		if s.Websites[i].ID == id {
			s.Websites = append(s.Websites[:i], s.Websites[i+1:]...)
			return true
		}
	}
	return false
}

// MoveWebsite repositions a website to (page, order).
// Returns false if no website has that ID.
func (s *Store) MoveWebsite(id string, page, order int) bool {
	w := s.GetWebsiteByID(id)
	if w == nil {
		return false
	}
	w.Position = Position{Page: page, Order: order}
	w.UpdatedAt = time.Now()
	return true
}

// RecordVisit bumps the visit counter and timestamp.
// Returns false if no website has that ID.
func (s *Store) RecordVisit(id string) bool {
	w := s.GetWebsiteByID(id)
	if w == nil {
		return false
	}
	now := time.Now()
	w.VisitCount++
	w.VisitedAt = &now
	return true
}

// AddExtraLink attaches a secondary link to a website. Rejects the link
// when the website already carries MaxExtraLinks links or a link with
// the same name (case-insensitive).
func (s *Store) AddExtraLink(websiteID string, link ExtraLink) error {
	w := s.GetWebsiteByID(websiteID)
	if w == nil {
		return ErrNotFound
	}
	if len(w.ExtraLinks) >= MaxExtraLinks {
		return ErrExtraLinkLimit
	}
	for _, l := range w.ExtraLinks {
		if strings.EqualFold(l.Name, link.Name) {
			return ErrDuplicateName
		}
	}
	w.ExtraLinks = append(w.ExtraLinks, link)
	w.UpdatedAt = time.Now()
	return nil
}

// RemoveExtraLink detaches an extra link from a website.
// Returns false if the website or the link is missing.
func (s *Store) RemoveExtraLink(websiteID, linkID string) bool {
	w := s.GetWebsiteByID(websiteID)
	if w == nil {
		return false
	}
	for i, l := range w.ExtraLinks {
		if l.ID == linkID {
			w.ExtraLinks = append(w.ExtraLinks[:i], w.ExtraLinks[i+1:]...)
			w.UpdatedAt = time.Now()
			return true
		}
	}
	return false
}

// AddTag appends a tag. Rejects a duplicate name (case-insensitive).
func (s *Store) AddTag(t Tag) error {
	if s.GetTagByName(t.Name) != nil {
		return ErrDuplicateName
	}
	s.Tags = append(s.Tags, t)
	return nil
}

// UpdateTag replaces the tag with the same ID. A rename onto another
// tag's name (case-insensitive) is rejected, same as on add.
// Returns ErrNotFound if no tag has that ID.
func (s *Store) UpdateTag(t Tag) error {
	if existing := s.GetTagByName(t.Name); existing != nil && existing.ID != t.ID {
		return ErrDuplicateName
	}
	for i := range s.Tags {
		if s.Tags[i].ID == t.ID {
			t.UpdatedAt = time.Now()
			t.CreatedAt = s.Tags[i].CreatedAt
			s.Tags[i] = t
			return nil
		}
	}
	return ErrNotFound
}

// DeleteTag removes a tag and detaches it from every website.
// The websites themselves survive. Returns false if no tag has that ID.
func (s *Store) DeleteTag(id string) bool {
	found := false
	for i := range s.Tags {
		if s.Tags[i].ID == id {
			s.Tags = append(s.Tags[:i], s.Tags[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return false
	}

	for i := range s.Websites {
		w := &s.Websites[i]
		kept := w.TagIDs[:0]
		for _, tagID := range w.TagIDs {
			if tagID != id {
				kept = append(kept, tagID)
			}
		}
		w.TagIDs = kept
	}
	return true
}

// sanitizeExtraLinks drops extra links with unusable names and
// case-insensitive duplicates, then truncates to MaxExtraLinks.
// Import documents are not trusted to respect the per-website limits.
func sanitizeExtraLinks(links []ExtraLink) []ExtraLink {
	kept := []ExtraLink{}
	seen := map[string]bool{}
	for _, l := range links {
		if !validate.IsValidExtraLinkName(l.Name) {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(l.Name))
		if seen[key] {
			continue
		}
		seen[key] = true
		kept = append(kept, l)
		if len(kept) == MaxExtraLinks {
			break
		}
	}
	return kept
}

// MergeImported appends imported websites and tags, skipping websites
// whose URL already exists and tags whose name already exists. Extra
// links are sanitized per website. Returns the number of websites
// added and skipped.
func (s *Store) MergeImported(websites []Website, tags []Tag) (added, skipped int) {
	tagIDRemap := make(map[string]string)
	for _, t := range tags {
		if existing := s.GetTagByName(t.Name); existing != nil {
			tagIDRemap[t.ID] = existing.ID
			continue
		}
		s.Tags = append(s.Tags, t)
	}

	existingURLs := make(map[string]bool)
	for _, w := range s.Websites {
		existingURLs[w.URL] = true
	}

	for _, w := range websites {
		if existingURLs[w.URL] {
			skipped++
			continue
		}
		for i, tagID := range w.TagIDs {
			if mapped, ok := tagIDRemap[tagID]; ok {
				w.TagIDs[i] = mapped
			}
		}
		w.ExtraLinks = sanitizeExtraLinks(w.ExtraLinks)
		s.Websites = append(s.Websites, w)
		existingURLs[w.URL] = true
		added++
	}
	return added, skipped
}
