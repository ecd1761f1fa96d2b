// Package picker implements the result list shown by quick-open when a
// query matches more than one website.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/lkoehl/deck/internal/model"
	"github.com/lkoehl/deck/internal/search"
)

// TagNamesFunc resolves a website's tag IDs to display names.
type TagNamesFunc func(w *model.Website) []string

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#303030", Dark: "#D0D0D0"}).
			Bold(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#606060"})

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}).
			Bold(true)

	domainStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#707070", Dark: "#808080"})

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"})

	visitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#606060"}).
			Italic(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#909090", Dark: "#606060"})
)

// Picker is the interactive list for choosing one of several matches.
type Picker struct {
	results   []search.Result
	query     string
	tagNames  TagNamesFunc
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a Picker over the given results. tagNames may be nil,
// in which case rows carry no tag column.
func New(results []search.Result, query string, tagNames TagNamesFunc) Picker {
	return Picker{
		results:  results,
		query:    query,
		tagNames: tagNames,
		width:    80,
		height:   24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c", "q":
			p.cancelled = true
			return p, tea.Quit

		case "enter":
			p.selected = true
			return p, tea.Quit

		case "j", "down", "ctrl+n":
			if p.cursor < len(p.results)-1 {
				p.cursor++
			}

		case "k", "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
		}
	}

	return p, nil
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	count := fmt.Sprintf("%d matches", len(p.results))
	if len(p.results) == 1 {
		count = "1 match"
	}
	b.WriteString(titleStyle.Render("Find: "+p.query) + "  " + countStyle.Render(count))
	b.WriteString("\n\n")

	for i, result := range p.results {
		w := result.Website

		prefix := "  "
		if i == p.cursor {
			prefix = cursorStyle.Render("> ")
		}

		line := w.Name + "  " + domainStyle.Render(displayDomain(w.URL))
		if p.tagNames != nil {
			if names := p.tagNames(w); len(names) > 0 {
				line += "  " + tagStyle.Render("#"+strings.Join(names, " #"))
			}
		}
		if w.VisitCount > 0 {
			line += "  " + visitStyle.Render(fmt.Sprintf("%d visits", w.VisitCount))
		}

		b.WriteString(prefix + line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("[j/k] move  [enter] open  [esc] cancel"))

	return b.String()
}

// displayDomain strips the scheme for compact row display.
func displayDomain(url string) string {
	url = strings.TrimPrefix(url, "https://")
	url = strings.TrimPrefix(url, "http://")
	return strings.TrimSuffix(url, "/")
}

// SelectedWebsite returns the chosen website, or nil when the picker
// was cancelled or nothing was chosen.
func (p Picker) SelectedWebsite() *model.Website {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Website
	}
	return nil
}

// Cancelled reports whether the user backed out without choosing.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
