package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/lkoehl/deck/internal/favicon"
	"github.com/lkoehl/deck/internal/search"
	"github.com/lkoehl/deck/internal/tui/layout"
)

// Mode identifies which view or modal is active.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeAddWebsite
	ModeEditWebsite
	ModeEditTags
	ModeConfirmDelete
	ModeMove
	ModeCheckLoading
	ModeCheckResults
	ModeHelp
)

// MessageType categorizes the status message shown in the help bar.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageWarning
	MessageError
)

// SearchState holds state for the search overlay.
type SearchState struct {
	Input   textinput.Model // Query input ("tag:" syntax supported)
	Results []search.Result // Current match results
	Cursor  int             // Selected index in results
}

// NewSearchState creates a new SearchState with initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search or tag:..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth

	return SearchState{
		Input: input,
	}
}

// Reset clears the search state for a new session.
func (s *SearchState) Reset() {
	s.Input.Reset()
	s.Results = nil
	s.Cursor = 0
}

// ModalState holds state for the add/edit website and tag modals.
type ModalState struct {
	NameInput  textinput.Model
	URLInput   textinput.Model
	TagsInput  textinput.Model
	FocusIdx   int    // Which input has focus (0=name, 1=url, 2=tags)
	EditItemID string // ID of website being edited (empty = adding)
	DeleteID   string // ID of website pending delete confirmation
	FormError  string // Validation error shown inside the modal
}

// NewModalState creates a new ModalState with initialized inputs.
func NewModalState(cfg layout.LayoutConfig) ModalState {
	nameInput := textinput.New()
	nameInput.Placeholder = "Name"
	nameInput.CharLimit = cfg.Input.NameCharLimit
	nameInput.Width = cfg.Input.StandardWidth

	urlInput := textinput.New()
	urlInput.Placeholder = "https://..."
	urlInput.CharLimit = cfg.Input.URLCharLimit
	urlInput.Width = cfg.Input.StandardWidth

	tagsInput := textinput.New()
	tagsInput.Placeholder = "tag1, tag2, tag3"
	tagsInput.CharLimit = cfg.Input.TagsCharLimit
	tagsInput.Width = cfg.Input.StandardWidth

	return ModalState{
		NameInput: nameInput,
		URLInput:  urlInput,
		TagsInput: tagsInput,
	}
}

// ResetInputs clears all modal inputs for a new modal session.
func (m *ModalState) ResetInputs() {
	m.NameInput.Reset()
	m.URLInput.Reset()
	m.TagsInput.Reset()
	m.FocusIdx = 0
	m.EditItemID = ""
	m.DeleteID = ""
	m.FormError = ""
}

// CheckState holds state for the favicon/link check feature.
type CheckState struct {
	Groups      []CheckGroup // Results grouped by status/error type
	GroupCursor int          // Selected group index
	ItemCursor  int          // Selected website in group
	Total       int          // Total websites being checked
}

// CheckGroup represents a group of check results.
type CheckGroup struct {
	Label       string           // "DEAD", "DNS failure", etc.
	Description string           // "404/410 responses", etc.
	Status      favicon.Status   // For categorization
	Error       string           // Error type for unreachable
	Results     []favicon.Result // Websites in this group
}

// NewCheckState creates an empty CheckState.
func NewCheckState() CheckState {
	return CheckState{}
}

// Reset clears all check state.
func (c *CheckState) Reset() {
	c.Groups = nil
	c.GroupCursor = 0
	c.ItemCursor = 0
	c.Total = 0
}

// CurrentGroup returns the currently selected group, or nil if none.
func (c *CheckState) CurrentGroup() *CheckGroup {
	if len(c.Groups) == 0 || c.GroupCursor >= len(c.Groups) {
		return nil
	}
	return &c.Groups[c.GroupCursor]
}

// CurrentResult returns the currently selected result in the current group, or nil if none.
func (c *CheckState) CurrentResult() *favicon.Result {
	group := c.CurrentGroup()
	if group == nil || len(group.Results) == 0 || c.ItemCursor >= len(group.Results) {
		return nil
	}
	return &group.Results[c.ItemCursor]
}
