package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lkoehl/deck/internal/model"
	"github.com/lkoehl/deck/internal/tui/layout"
)

// renderView creates the complete launchpad view.
func (a App) renderView() string {
	switch a.mode {
	case ModeSearch:
		return a.renderSearch()
	case ModeAddWebsite, ModeEditWebsite, ModeEditTags, ModeConfirmDelete:
		return a.renderModal()
	case ModeCheckLoading:
		return a.renderCheckLoading()
	case ModeCheckResults:
		return a.renderCheckResults()
	case ModeHelp:
		return a.renderHelpOverlay()
	}

	header := a.renderHeader()
	grid := a.renderGrid()
	helpBar := a.renderHelpBar()

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, header, grid, helpBar),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the title and page indicator.
func (a App) renderHeader() string {
	title := a.styles.Title.Render("deck")

	pages := a.data.PageCount()
	pageInfo := a.styles.PageInfo.Render(fmt.Sprintf("page %d/%d", a.page+1, pages))

	var moveIndicator string
	if a.mode == ModeMove {
		moveIndicator = "  " + a.styles.SearchPrompt.Render("[move]")
	}

	return title + "  " + pageInfo + moveIndicator + "\n"
}

// renderGrid renders the website tiles for the current page.
func (a App) renderGrid() string {
	websites := a.pageWebsites()
	if len(websites) == 0 {
		return a.styles.Empty.Render("(empty page - press 'a' to add a website)")
	}

	grid := layout.CalculateGrid(a.width, a.data.Settings.Columns, a.cfg.Grid)

	var rows []string
	for start := 0; start < len(websites); start += grid.Columns {
		end := start + grid.Columns
		if end > len(websites) {
			end = len(websites)
		}

		tiles := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			tiles = append(tiles, a.renderTile(websites[i], i == a.cursor, grid.TileWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	return strings.Join(rows, "\n")
}

// renderTile renders a single website tile. The domain label line is
// dropped when labels are switched off in settings.
func (a App) renderTile(w model.Website, selected bool, width int) string {
	innerWidth := width - 4 // border + padding
	if innerWidth < 1 {
		innerWidth = 1
	}

	name, _ := layout.TruncateText(w.Name, innerWidth, a.cfg.Text)

	var body strings.Builder
	body.WriteString(a.styles.TileName.Render(name))
	if a.data.Settings.ShowLabels {
		domain, _ := layout.TruncateText(displayDomain(w.URL), innerWidth, a.cfg.Text)
		body.WriteString("\n")
		body.WriteString(a.styles.TileURL.Render(domain))
	}

	tile := a.styles.Tile
	if selected {
		tile = a.styles.TileSelected
		if a.mode == ModeMove {
			tile = a.styles.TileMoving
		}
	}
	return tile.Width(width - 2).Render(body.String())
}

// displayDomain strips the scheme for compact tile display.
func displayDomain(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	return strings.TrimSuffix(url, "/")
}

// renderSearch renders the full-screen search view.
func (a App) renderSearch() string {
	contentStyle := lipgloss.NewStyle().Padding(1, 2)

	var results strings.Builder
	if a.search.Input.Value() == "" {
		results.WriteString(a.styles.Empty.Render("Type to search, tag:<name> to filter by tag"))
	} else if len(a.search.Results) == 0 {
		results.WriteString(a.styles.Empty.Render("No matches"))
	} else {
		maxVisible := layout.CalculateGridHeight(a.height, a.cfg.Grid)
		start, end := layout.CalculateVisibleListItems(maxVisible, a.search.Cursor, len(a.search.Results))

		for i := start; i < end; i++ {
			r := a.search.Results[i]
			line := r.Website.Name + "  " + a.styles.TileURL.Render(displayDomain(r.Website.URL))
			if tags := a.tagNamesFor(r.Website); tags != "" {
				line += "  " + a.styles.Tag.Render("#"+strings.ReplaceAll(tags, ", ", " #"))
			}
			if i == a.search.Cursor {
				results.WriteString(a.styles.SearchPrompt.Render("> ") + line)
			} else {
				results.WriteString("  " + line)
			}
			results.WriteString("\n")
		}
	}

	countStr := fmt.Sprintf("%d results", len(a.search.Results))
	if len(a.search.Results) == 1 {
		countStr = "1 result"
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		a.styles.Title.Render("Find")+"  "+a.styles.Empty.Render(countStr),
		"",
		a.styles.SearchPrompt.Render("/ ")+a.search.Input.View(),
		"",
		strings.TrimRight(results.String(), "\n"),
	)

	main := lipgloss.Place(
		a.width,
		a.height-3,
		lipgloss.Left,
		lipgloss.Top,
		contentStyle.Render(content),
	)

	return lipgloss.JoinVertical(lipgloss.Left, main, a.renderHelpBar())
}

// renderModal renders the current modal dialog.
func (a App) renderModal() string {
	modalWidth := layout.CalculateModalWidth(a.width, a.cfg.Modal.DefaultWidthPercent, a.cfg.Modal)
	modalStyle := a.styles.Modal.Width(modalWidth)

	var content strings.Builder

	switch a.mode {
	case ModeAddWebsite, ModeEditWebsite:
		title := "Add Website"
		if a.mode == ModeEditWebsite {
			title = "Edit Website"
		}
		content.WriteString(a.styles.ModalTitle.Render(title))
		content.WriteString("\n\n")
		content.WriteString(a.formLabel("Name:", 0) + "\n")
		content.WriteString(a.modal.NameInput.View())
		content.WriteString("\n\n")
		content.WriteString(a.formLabel("URL:", 1) + "\n")
		content.WriteString(a.modal.URLInput.View())
		content.WriteString("\n\n")
		content.WriteString(a.formLabel("Tags:", 2) + "\n")
		content.WriteString(a.modal.TagsInput.View())

	case ModeEditTags:
		content.WriteString(a.styles.ModalTitle.Render("Edit Tags"))
		content.WriteString("\n\n")
		content.WriteString(a.styles.Label.Render("Tags (comma-separated):") + "\n")
		content.WriteString(a.modal.TagsInput.View())

	case ModeConfirmDelete:
		content.WriteString(a.styles.ModalTitle.Render("Delete Website?"))
		content.WriteString("\n\n")
		if w := a.data.GetWebsiteByID(a.modal.DeleteID); w != nil {
			content.WriteString("\"" + w.Name + "\"\n\n")
		}
		content.WriteString(a.styles.Help.Render("This action cannot be undone.") + "\n\n")
		content.WriteString(a.renderHintsInline([]Hint{
			{Key: "Enter", Desc: "confirm"},
			{Key: "Esc", Desc: "cancel"},
		}))
	}

	if a.modal.FormError != "" {
		content.WriteString("\n\n")
		content.WriteString(a.styles.Error.Render(a.modal.FormError))
	}

	modal := lipgloss.Place(
		a.width,
		a.height-3, // Leave room for help bar
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(content.String()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

// formLabel highlights the label of the focused form input.
func (a App) formLabel(label string, idx int) string {
	if a.modal.FocusIdx == idx {
		return a.styles.SearchPrompt.Render(label)
	}
	return a.styles.Label.Render(label)
}

// renderCheckLoading renders the loading screen during link checking.
func (a App) renderCheckLoading() string {
	modalWidth := layout.CalculateModalWidth(a.width, a.cfg.Modal.DefaultWidthPercent, a.cfg.Modal)
	modalStyle := a.styles.Modal.Width(modalWidth)

	var content strings.Builder
	content.WriteString(a.styles.ModalTitle.Render("Check Links"))
	content.WriteString("\n\n")
	content.WriteString(fmt.Sprintf("Checking %d websites...", a.check.Total))

	modal := lipgloss.Place(
		a.width,
		a.height-3,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(content.String()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

// renderCheckResults renders the grouped problem list after checking.
func (a App) renderCheckResults() string {
	contentStyle := lipgloss.NewStyle().Padding(1, 2)

	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Check Results"))
	content.WriteString("\n\n")

	if len(a.check.Groups) == 0 {
		content.WriteString(a.styles.Empty.Render("All websites healthy!"))
	} else {
		itemWidth := a.width - 10
		for gi, group := range a.check.Groups {
			label := fmt.Sprintf("%s (%d)", group.Label, len(group.Results))
			content.WriteString(a.styles.ModalTitle.Render(label))
			content.WriteString("  " + a.styles.Empty.Render(group.Description))
			content.WriteString("\n")

			for ri, r := range group.Results {
				line := r.Website.Name + "  " + displayDomain(r.Website.URL)
				if r.StatusCode > 0 {
					line += fmt.Sprintf("  [%d]", r.StatusCode)
				}
				line, _ = layout.TruncateText(line, itemWidth, a.cfg.Text)

				if gi == a.check.GroupCursor && ri == a.check.ItemCursor {
					content.WriteString(a.styles.SearchPrompt.Render("> ") + line)
				} else {
					content.WriteString("  " + line)
				}
				content.WriteString("\n")
			}
			content.WriteString("\n")
		}
	}

	main := lipgloss.Place(
		a.width,
		a.height-3,
		lipgloss.Left,
		lipgloss.Top,
		contentStyle.Render(strings.TrimRight(content.String(), "\n")),
	)

	return lipgloss.JoinVertical(lipgloss.Left, main, a.renderHelpBar())
}

// renderHelpOverlay renders the help overlay.
func (a App) renderHelpOverlay() string {
	modalStyle := lipgloss.NewStyle().Padding(1, 2)

	// Left column: Navigation
	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("h/j/k/l  move\n")
	left.WriteString("[/]      prev/next page\n")
	left.WriteString("gg       first tile\n")
	left.WriteString("G        last tile\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("act") + "\n")
	left.WriteString("enter/o  open\n")
	left.WriteString("Y        yank url\n")
	left.WriteString("/        search\n")
	left.WriteString("C        check links\n")

	// Right column: Edit
	var right strings.Builder
	right.WriteString(a.styles.Title.Render("edit") + "\n")
	right.WriteString("a    add website\n")
	right.WriteString("e    edit\n")
	right.WriteString("t    tags\n")
	right.WriteString("m    move tile\n")
	right.WriteString("d    delete\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("search") + "\n")
	right.WriteString("text       fuzzy match\n")
	right.WriteString("tag:name   filter by tag\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close  [q] quit"))

	leftCol := lipgloss.NewStyle().Width(28).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(28).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}

// renderHelpBar renders the message line and contextual hints.
func (a App) renderHelpBar() string {
	var lines []string

	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	hints := a.renderHints(a.getContextualHints())
	if hints != "" {
		lines = append(lines, hints)
	}

	return a.styles.Help.Render(strings.Join(lines, "\n"))
}

// renderMessageLine renders the styled message with prefix based on type.
func (a App) renderMessageLine() string {
	var msgStyle lipgloss.Style
	var prefix string

	switch a.messageType {
	case MessageError:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true)
		prefix = "✗ "
	case MessageWarning:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC8800", Dark: "#FFAA00"}).
			Bold(true)
		prefix = "⚠ "
	case MessageSuccess:
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true)
		prefix = "✓ "
	default: // MessageInfo
		msgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)
	}

	return msgStyle.Render(prefix + a.messageText)
}
