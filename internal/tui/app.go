package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lkoehl/deck/internal/model"
	"github.com/lkoehl/deck/internal/storage"
	"github.com/lkoehl/deck/internal/store"
	"github.com/lkoehl/deck/internal/tui/layout"
)

// App is the main bubbletea model for the launchpad.
type App struct {
	service *store.Service
	data    *model.Store
	keys    KeyMap
	styles  Styles
	cfg     layout.LayoutConfig
	config  storage.Config

	mode Mode

	// Grid navigation state
	page   int // current page index
	cursor int // selected tile index on the page

	// Feature state
	search SearchState
	modal  ModalState
	check  CheckState

	// Status message in the help bar
	messageText string
	messageType MessageType

	// For gg command
	lastKeyWasG bool

	// Browser/clipboard integration, replaceable in tests
	openURL func(string) error

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Service *store.Service
	Config  *storage.Config    // optional, uses defaults if nil
	Keys    *KeyMap            // optional, uses default if nil
	Styles  *Styles            // optional, uses default if nil
	OpenURL func(string) error // optional browser opener
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	config := storage.DefaultConfig()
	if params.Config != nil {
		config = *params.Config
	}

	cfg := layout.DefaultConfig()

	app := App{
		service: params.Service,
		data:    params.Service.Data,
		keys:    keys,
		styles:  styles,
		cfg:     cfg,
		config:  config,
		mode:    ModeNormal,
		search:  NewSearchState(cfg),
		modal:   NewModalState(cfg),
		check:   NewCheckState(),
		openURL: params.OpenURL,
		width:   80,
		height:  24,
	}

	return app
}

// Cursor returns the current cursor position on the page.
func (a App) Cursor() int {
	return a.cursor
}

// Page returns the current page index.
func (a App) Page() int {
	return a.page
}

// Mode returns the current UI mode.
func (a App) Mode() Mode {
	return a.mode
}

// Store returns the underlying data store.
func (a App) Store() *model.Store {
	return a.data
}

// pageWebsites returns the websites on the current page in order.
func (a App) pageWebsites() []model.Website {
	return a.data.WebsitesOnPage(a.page)
}

// selectedWebsite returns the website under the cursor, or nil.
func (a App) selectedWebsite() *model.Website {
	websites := a.pageWebsites()
	if len(websites) == 0 || a.cursor >= len(websites) {
		return nil
	}
	return a.data.GetWebsiteByID(websites[a.cursor].ID)
}

// clampCursor keeps the cursor inside the current page after mutations.
func (a *App) clampCursor() {
	n := len(a.pageWebsites())
	if n == 0 {
		a.cursor = 0
		return
	}
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// gridColumns returns the effective column count: the configured
// columns, narrowed when the terminal cannot fit them.
func (a App) gridColumns() int {
	grid := layout.CalculateGrid(a.width, a.data.Settings.Columns, a.cfg.Grid)
	return grid.Columns
}

// setMessage sets the status message shown in the help bar.
func (a *App) setMessage(kind MessageType, text string) {
	a.messageType = kind
	a.messageText = text
}

// saveStore persists the current store. Called after any mutation.
func (a *App) saveStore() {
	if err := a.service.Save(); err != nil {
		a.setMessage(MessageError, "Save failed: "+err.Error())
	}
}

// checkDoneMsg carries the grouped probe results back into Update.
type checkDoneMsg struct {
	groups []CheckGroup
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case checkDoneMsg:
		if a.mode != ModeCheckLoading {
			return a, nil
		}
		a.check.Groups = msg.groups
		a.check.GroupCursor = 0
		a.check.ItemCursor = 0
		a.mode = ModeCheckResults
		return a, nil

	case tea.KeyMsg:
		// Any keypress clears a stale status message.
		a.messageText = ""

		switch a.mode {
		case ModeNormal:
			return a.handleNormalKey(msg)
		case ModeSearch:
			return a.handleSearchKey(msg)
		case ModeAddWebsite, ModeEditWebsite:
			return a.handleFormKey(msg)
		case ModeEditTags:
			return a.handleTagsKey(msg)
		case ModeConfirmDelete:
			return a.handleConfirmKey(msg)
		case ModeMove:
			return a.handleMoveKey(msg)
		case ModeCheckLoading:
			return a.handleCheckLoadingKey(msg)
		case ModeCheckResults:
			return a.handleCheckResultsKey(msg)
		case ModeHelp:
			return a.handleHelpKey(msg)
		}
	}

	return a, nil
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
