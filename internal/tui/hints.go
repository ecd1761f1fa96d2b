package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar.
func (a App) renderHints(hints HintSet) string {
	allHints := hints.All()
	if len(allHints) == 0 {
		return ""
	}

	parts := make([]string, len(allHints))
	for i, h := range allHints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for modals: "Enter confirm  Esc cancel"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	Edit   []Hint // Edit hints (a, e, d, etc.)
	Action []Hint // Action hints (Enter, Tab, etc.)
	System []Hint // System hints (?, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + Edit + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.Edit)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.Edit...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		return HintSet{
			Nav: []Hint{
				{Key: "h/j/k/l", Desc: "move"},
				{Key: "[/]", Desc: "page"},
			},
			Action: []Hint{
				{Key: "Enter", Desc: "open"},
				{Key: "/", Desc: "search"},
			},
			Edit: []Hint{
				{Key: "a", Desc: "add"},
				{Key: "e", Desc: "edit"},
				{Key: "d", Desc: "del"},
			},
			System: []Hint{
				{Key: "?", Desc: "help"},
				{Key: "q", Desc: "quit"},
			},
		}

	case ModeSearch:
		return HintSet{
			Nav: []Hint{
				{Key: "↑/↓", Desc: "move"},
			},
			Action: []Hint{
				{Key: "Enter", Desc: "open"},
			},
			System: []Hint{
				{Key: "Esc", Desc: "cancel"},
			},
		}

	case ModeAddWebsite, ModeEditWebsite:
		return HintSet{
			Nav: []Hint{
				{Key: "Tab", Desc: "next field"},
			},
			Action: []Hint{
				{Key: "Enter", Desc: "save"},
			},
			System: []Hint{
				{Key: "Esc", Desc: "cancel"},
			},
		}

	case ModeEditTags:
		return HintSet{
			Action: []Hint{
				{Key: "Enter", Desc: "save"},
			},
			System: []Hint{
				{Key: "Esc", Desc: "cancel"},
			},
		}

	case ModeConfirmDelete:
		// Hints are shown inside the modal itself.
		return HintSet{}

	case ModeMove:
		return HintSet{
			Nav: []Hint{
				{Key: "h/j/k/l", Desc: "swap"},
				{Key: "[/]", Desc: "send to page"},
			},
			System: []Hint{
				{Key: "m/Esc", Desc: "done"},
			},
		}

	case ModeCheckLoading:
		return HintSet{
			System: []Hint{
				{Key: "Esc", Desc: "cancel"},
			},
		}

	case ModeCheckResults:
		return HintSet{
			Nav: []Hint{
				{Key: "j/k", Desc: "move"},
			},
			Action: []Hint{
				{Key: "Enter", Desc: "open"},
			},
			Edit: []Hint{
				{Key: "d", Desc: "del"},
			},
			System: []Hint{
				{Key: "Esc", Desc: "close"},
			},
		}

	case ModeHelp:
		return HintSet{
			System: []Hint{{Key: "?/q/Esc", Desc: "close"}},
		}

	default:
		return HintSet{}
	}
}
