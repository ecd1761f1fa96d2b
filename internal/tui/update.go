package tui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lkoehl/deck/internal/favicon"
	"github.com/lkoehl/deck/internal/model"
	"github.com/lkoehl/deck/internal/search"
	"github.com/lkoehl/deck/internal/validate"
)

// handleNormalKey processes keys in the main grid view.
func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	cols := a.gridColumns()
	websites := a.pageWebsites()

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Right):
		if a.cursor < len(websites)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Left):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Down):
		if a.cursor+cols < len(websites) {
			a.cursor += cols
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor-cols >= 0 {
			a.cursor -= cols
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(websites) > 0 {
			a.cursor = len(websites) - 1
		}

	case key.Matches(msg, a.keys.NextPage):
		if a.page < a.data.PageCount()-1 {
			a.page++
			a.cursor = 0
		}

	case key.Matches(msg, a.keys.PrevPage):
		if a.page > 0 {
			a.page--
			a.cursor = 0
		}

	case key.Matches(msg, a.keys.Open):
		a.openSelected()

	case key.Matches(msg, a.keys.YankURL):
		a.yankSelected()

	case key.Matches(msg, a.keys.Add):
		a.modal.ResetInputs()
		a.modal.NameInput.Focus()
		a.mode = ModeAddWebsite

	case key.Matches(msg, a.keys.Edit):
		if w := a.selectedWebsite(); w != nil {
			a.modal.ResetInputs()
			a.modal.EditItemID = w.ID
			a.modal.NameInput.SetValue(w.Name)
			a.modal.URLInput.SetValue(w.URL)
			a.modal.TagsInput.SetValue(a.tagNamesFor(w))
			a.modal.NameInput.Focus()
			a.mode = ModeEditWebsite
		}

	case key.Matches(msg, a.keys.EditTags):
		if w := a.selectedWebsite(); w != nil {
			a.modal.ResetInputs()
			a.modal.EditItemID = w.ID
			a.modal.TagsInput.SetValue(a.tagNamesFor(w))
			a.modal.TagsInput.Focus()
			a.mode = ModeEditTags
		}

	case key.Matches(msg, a.keys.Delete):
		if w := a.selectedWebsite(); w != nil {
			a.modal.DeleteID = w.ID
			a.mode = ModeConfirmDelete
		}

	case key.Matches(msg, a.keys.Move):
		if a.selectedWebsite() != nil {
			a.mode = ModeMove
		}

	case key.Matches(msg, a.keys.Search):
		a.search.Reset()
		a.search.Input.Focus()
		a.mode = ModeSearch

	case key.Matches(msg, a.keys.Check):
		if len(a.data.Websites) > 0 {
			a.check.Reset()
			a.check.Total = len(a.data.Websites)
			a.mode = ModeCheckLoading
			return a, a.runCheck()
		}
		a.setMessage(MessageInfo, "Nothing to check")

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp
	}

	return a, nil
}

// handleSearchKey processes keys in the search overlay.
func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.search.Reset()
		a.mode = ModeNormal
		return a, nil

	case "enter":
		if len(a.search.Results) > 0 && a.search.Cursor < len(a.search.Results) {
			selected := a.search.Results[a.search.Cursor].Website
			a.data.RecordVisit(selected.ID)
			a.saveStore()
			a.launch(selected)
			a.search.Reset()
			a.mode = ModeNormal
		}
		return a, nil

	case "ctrl+n", "down":
		if a.search.Cursor < len(a.search.Results)-1 {
			a.search.Cursor++
		}
		return a, nil

	case "ctrl+p", "up":
		if a.search.Cursor > 0 {
			a.search.Cursor--
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	a.search.Results = search.Search(a.data, a.search.Input.Value())
	a.search.Cursor = 0
	return a, cmd
}

// handleFormKey processes keys in the add/edit website modal.
func (a App) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.modal.ResetInputs()
		a.mode = ModeNormal
		return a, nil

	case "tab":
		a.modal.FocusIdx = (a.modal.FocusIdx + 1) % 3
		a.focusFormInput()
		return a, nil

	case "shift+tab":
		a.modal.FocusIdx = (a.modal.FocusIdx + 2) % 3
		a.focusFormInput()
		return a, nil

	case "enter":
		a.submitForm()
		return a, nil
	}

	var cmd tea.Cmd
	switch a.modal.FocusIdx {
	case 0:
		a.modal.NameInput, cmd = a.modal.NameInput.Update(msg)
	case 1:
		a.modal.URLInput, cmd = a.modal.URLInput.Update(msg)
	case 2:
		a.modal.TagsInput, cmd = a.modal.TagsInput.Update(msg)
	}
	return a, cmd
}

// focusFormInput moves input focus to match FocusIdx.
func (a *App) focusFormInput() {
	a.modal.NameInput.Blur()
	a.modal.URLInput.Blur()
	a.modal.TagsInput.Blur()
	switch a.modal.FocusIdx {
	case 0:
		a.modal.NameInput.Focus()
	case 1:
		a.modal.URLInput.Focus()
	case 2:
		a.modal.TagsInput.Focus()
	}
}

// submitForm validates the modal inputs and applies the add or edit.
func (a *App) submitForm() {
	name := strings.TrimSpace(a.modal.NameInput.Value())
	if name == "" || !validate.IsValidName(name) {
		a.modal.FormError = "Name is required (max 50 characters)"
		return
	}

	websiteURL, err := validate.NormalizeURL(a.modal.URLInput.Value())
	if err != nil {
		a.modal.FormError = "Invalid URL"
		return
	}

	tagIDs := a.resolveTagNames(a.modal.TagsInput.Value())

	if a.modal.EditItemID == "" {
		page := a.targetPage()
		w := model.NewWebsite(model.NewWebsiteParams{
			Name:    name,
			URL:     websiteURL,
			Favicon: favicon.ServiceURL(a.config.FaviconService, websiteURL),
			TagIDs:  tagIDs,
			Position: model.Position{
				Page:  page,
				Order: a.data.NextOrder(page),
			},
		})
		if err := a.data.AddWebsite(w); err != nil {
			a.modal.FormError = "A website with that name already exists"
			return
		}
		if page != a.page {
			a.page = page
			a.cursor = 0
		}
		a.setMessage(MessageSuccess, "Added "+name)
	} else {
		w := a.data.GetWebsiteByID(a.modal.EditItemID)
		if w == nil {
			a.modal.ResetInputs()
			a.mode = ModeNormal
			return
		}
		updated := *w
		updated.Name = name
		if updated.URL != websiteURL {
			updated.URL = websiteURL
			updated.Favicon = favicon.ServiceURL(a.config.FaviconService, websiteURL)
		}
		updated.TagIDs = tagIDs
		if err := a.data.UpdateWebsite(updated); err != nil {
			a.modal.FormError = "A website with that name already exists"
			return
		}
		a.setMessage(MessageSuccess, "Updated "+name)
	}

	a.saveStore()
	a.modal.ResetInputs()
	a.mode = ModeNormal
	a.clampCursor()
}

// targetPage returns the page a new website lands on: the current page,
// or the first page after it with room left.
func (a App) targetPage() int {
	size := a.data.Settings.PageSize()
	page := a.page
	for len(a.data.WebsitesOnPage(page)) >= size {
		page++
	}
	return page
}

// handleTagsKey processes keys in the edit-tags modal.
func (a App) handleTagsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		a.modal.ResetInputs()
		a.mode = ModeNormal
		return a, nil

	case "enter":
		if w := a.data.GetWebsiteByID(a.modal.EditItemID); w != nil {
			updated := *w
			updated.TagIDs = a.resolveTagNames(a.modal.TagsInput.Value())
			if err := a.data.UpdateWebsite(updated); err == nil {
				a.saveStore()
				a.setMessage(MessageSuccess, "Tags updated")
			}
		}
		a.modal.ResetInputs()
		a.mode = ModeNormal
		return a, nil
	}

	var cmd tea.Cmd
	a.modal.TagsInput, cmd = a.modal.TagsInput.Update(msg)
	return a, cmd
}

// handleConfirmKey processes keys in the delete confirmation modal.
func (a App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		if w := a.data.GetWebsiteByID(a.modal.DeleteID); w != nil {
			name := w.Name
			a.data.DeleteWebsite(w.ID)
			a.saveStore()
			a.setMessage(MessageSuccess, "Deleted "+name)
		}
		a.modal.ResetInputs()
		a.mode = ModeNormal
		a.clampCursor()
		return a, nil

	case "esc", "n":
		a.modal.ResetInputs()
		a.mode = ModeNormal
		return a, nil
	}
	return a, nil
}

// handleMoveKey processes keys in tile move mode. Horizontal and
// vertical movement swaps the tile with its neighbor; bracket keys
// send the tile to an adjacent page.
func (a App) handleMoveKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cols := a.gridColumns()

	switch {
	case key.Matches(msg, a.keys.Move), key.Matches(msg, a.keys.Open):
		a.mode = ModeNormal
		return a, nil

	case key.Matches(msg, a.keys.Right):
		a.swapWithNeighbor(1)

	case key.Matches(msg, a.keys.Left):
		a.swapWithNeighbor(-1)

	case key.Matches(msg, a.keys.Down):
		a.swapWithNeighbor(cols)

	case key.Matches(msg, a.keys.Up):
		a.swapWithNeighbor(-cols)

	case key.Matches(msg, a.keys.NextPage):
		a.sendToPage(a.page + 1)

	case key.Matches(msg, a.keys.PrevPage):
		a.sendToPage(a.page - 1)

	default:
		if msg.String() == "esc" {
			a.mode = ModeNormal
		}
	}
	return a, nil
}

// swapWithNeighbor exchanges the selected tile's order with the tile
// at cursor+delta on the same page.
func (a *App) swapWithNeighbor(delta int) {
	websites := a.pageWebsites()
	target := a.cursor + delta
	if target < 0 || target >= len(websites) || a.cursor >= len(websites) {
		return
	}

	current := websites[a.cursor]
	neighbor := websites[target]
	a.data.MoveWebsite(current.ID, a.page, neighbor.Position.Order)
	a.data.MoveWebsite(neighbor.ID, a.page, current.Position.Order)
	a.cursor = target
	a.saveStore()
}

// sendToPage appends the selected tile to the end of another page.
func (a *App) sendToPage(page int) {
	if page < 0 {
		return
	}
	w := a.selectedWebsite()
	if w == nil {
		return
	}
	a.data.MoveWebsite(w.ID, page, a.data.NextOrder(page))
	a.saveStore()
	a.page = page
	a.cursor = len(a.pageWebsites()) - 1
}

// handleCheckLoadingKey allows bailing out of a running check.
func (a App) handleCheckLoadingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		a.check.Reset()
		a.mode = ModeNormal
	}
	return a, nil
}

// handleCheckResultsKey processes keys in the check results view.
func (a App) handleCheckResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	group := a.check.CurrentGroup()

	switch {
	case key.Matches(msg, a.keys.Down):
		if group != nil && a.check.ItemCursor < len(group.Results)-1 {
			a.check.ItemCursor++
		} else if a.check.GroupCursor < len(a.check.Groups)-1 {
			a.check.GroupCursor++
			a.check.ItemCursor = 0
		}

	case key.Matches(msg, a.keys.Up):
		if a.check.ItemCursor > 0 {
			a.check.ItemCursor--
		} else if a.check.GroupCursor > 0 {
			a.check.GroupCursor--
			if prev := a.check.CurrentGroup(); prev != nil && len(prev.Results) > 0 {
				a.check.ItemCursor = len(prev.Results) - 1
			}
		}

	case key.Matches(msg, a.keys.Open):
		if r := a.check.CurrentResult(); r != nil {
			a.launch(r.Website)
		}

	case key.Matches(msg, a.keys.Delete):
		if r := a.check.CurrentResult(); r != nil {
			name := r.Website.Name
			a.data.DeleteWebsite(r.Website.ID)
			a.saveStore()
			a.removeCheckResult()
			a.clampCursor()
			a.setMessage(MessageSuccess, "Deleted "+name)
		}

	default:
		if msg.String() == "esc" || key.Matches(msg, a.keys.Quit) {
			a.check.Reset()
			a.mode = ModeNormal
		}
	}
	return a, nil
}

// removeCheckResult drops the selected result from its group,
// removing the group when it empties.
func (a *App) removeCheckResult() {
	group := a.check.CurrentGroup()
	if group == nil {
		return
	}
	group.Results = append(group.Results[:a.check.ItemCursor], group.Results[a.check.ItemCursor+1:]...)
	if len(group.Results) == 0 {
		a.check.Groups = append(a.check.Groups[:a.check.GroupCursor], a.check.Groups[a.check.GroupCursor+1:]...)
		a.check.GroupCursor = 0
		a.check.ItemCursor = 0
		return
	}
	if a.check.ItemCursor >= len(group.Results) {
		a.check.ItemCursor = len(group.Results) - 1
	}
}

// handleHelpKey closes the help overlay.
func (a App) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "?", "esc", "q":
		a.mode = ModeNormal
	}
	return a, nil
}

// openSelected records a visit and opens the selected website.
func (a *App) openSelected() {
	w := a.selectedWebsite()
	if w == nil {
		return
	}
	a.data.RecordVisit(w.ID)
	a.saveStore()
	a.launch(w)
}

// launch opens a website URL in the browser (when an opener is wired).
func (a *App) launch(w *model.Website) {
	if a.openURL == nil {
		return
	}
	if err := a.openURL(w.URL); err != nil {
		a.setMessage(MessageError, "Open failed: "+err.Error())
		return
	}
	a.setMessage(MessageInfo, "Opened "+w.Name)
}

// yankSelected copies the selected website URL to the clipboard.
func (a *App) yankSelected() {
	w := a.selectedWebsite()
	if w == nil {
		return
	}
	if err := clipboard.WriteAll(w.URL); err != nil {
		a.setMessage(MessageError, "Clipboard unavailable")
		return
	}
	a.setMessage(MessageSuccess, "Yanked "+w.URL)
}

// tagNamesFor returns the website's tag names as a comma-separated string.
func (a App) tagNamesFor(w *model.Website) string {
	names := make([]string, 0, len(w.TagIDs))
	for _, id := range w.TagIDs {
		if tag := a.data.GetTagByID(id); tag != nil {
			names = append(names, tag.Name)
		}
	}
	return strings.Join(names, ", ")
}

// resolveTagNames maps a comma-separated tag name list to tag IDs,
// creating tags that do not exist yet.
func (a *App) resolveTagNames(raw string) []string {
	ids := []string{}
	seen := map[string]bool{}
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		tag := a.data.GetTagByName(name)
		if tag == nil {
			created := model.NewTag(model.NewTagParams{Name: name})
			if err := a.data.AddTag(created); err != nil {
				continue
			}
			tag = a.data.GetTagByID(created.ID)
		}
		if tag != nil && !seen[tag.ID] {
			seen[tag.ID] = true
			ids = append(ids, tag.ID)
		}
	}
	return ids
}

// runCheck probes every website and groups the problem results.
func (a App) runCheck() tea.Cmd {
	websites := make([]model.Website, len(a.data.Websites))
	copy(websites, a.data.Websites)
	concurrency := a.config.ProbeConcurrency
	timeout := time.Duration(a.config.ProbeTimeoutSeconds) * time.Second

	return func() tea.Msg {
		results := favicon.ProbeWebsites(websites, concurrency, timeout, nil)
		return checkDoneMsg{groups: groupCheckResults(results)}
	}
}

// groupCheckResults buckets problem results: dead links first, then
// unreachable ones grouped by error type. Healthy results are dropped.
func groupCheckResults(results []favicon.Result) []CheckGroup {
	var dead []favicon.Result
	unreachable := map[string][]favicon.Result{}
	var errOrder []string

	for _, r := range results {
		switch r.Status {
		case favicon.Dead:
			dead = append(dead, r)
		case favicon.Unreachable:
			if _, ok := unreachable[r.Error]; !ok {
				errOrder = append(errOrder, r.Error)
			}
			unreachable[r.Error] = append(unreachable[r.Error], r)
		}
	}

	var groups []CheckGroup
	if len(dead) > 0 {
		groups = append(groups, CheckGroup{
			Label:       "DEAD",
			Description: "404/410 responses",
			Status:      favicon.Dead,
			Results:     dead,
		})
	}
	for _, errType := range errOrder {
		groups = append(groups, CheckGroup{
			Label:       errType,
			Description: "could not be reached",
			Status:      favicon.Unreachable,
			Error:       errType,
			Results:     unreachable[errType],
		})
	}
	return groups
}
