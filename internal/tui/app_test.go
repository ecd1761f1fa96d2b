package tui_test

import (
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lkoehl/deck/internal/model"
	"github.com/lkoehl/deck/internal/storage"
	"github.com/lkoehl/deck/internal/store"
	"github.com/lkoehl/deck/internal/tui"
)

// newTestService builds a file-backed service seeded with n websites
// on page 0.
func newTestService(t *testing.T, n int) *store.Service {
	t.Helper()

	svc, err := store.Open(storage.NewFileBackend(t.TempDir()))
	if err != nil {
		t.Fatalf("open service: %v", err)
	}

	svc.Data.Settings = model.DefaultSettings()
	for i := 0; i < n; i++ {
		svc.Data.Websites = append(svc.Data.Websites, model.Website{
			ID:       fmt.Sprintf("w%d", i),
			Name:     fmt.Sprintf("Site %d", i),
			URL:      fmt.Sprintf("https://site%d.example.com/", i),
			TagIDs:   []string{},
			Position: model.Position{Page: 0, Order: i},
		})
	}
	return svc
}

func newTestApp(t *testing.T, n int) tui.App {
	t.Helper()

	app := tui.NewApp(tui.AppParams{Service: newTestService(t, n)})

	// Fixed terminal size so the grid resolves to 6 columns.
	updated, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(tui.App)
}

func press(t *testing.T, app tui.App, keys string) tui.App {
	t.Helper()
	for _, r := range keys {
		updated, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		app = updated.(tui.App)
	}
	return app
}

func pressKey(t *testing.T, app tui.App, keyType tea.KeyType) tui.App {
	t.Helper()
	updated, _ := app.Update(tea.KeyMsg{Type: keyType})
	return updated.(tui.App)
}

func TestApp_Navigation_HL(t *testing.T) {
	app := newTestApp(t, 3)

	if app.Cursor() != 0 {
		t.Errorf("expected initial cursor 0, got %d", app.Cursor())
	}

	app = press(t, app, "l")
	if app.Cursor() != 1 {
		t.Errorf("after l, expected cursor 1, got %d", app.Cursor())
	}

	app = press(t, app, "h")
	if app.Cursor() != 0 {
		t.Errorf("after h, expected cursor 0, got %d", app.Cursor())
	}

	// h at the first tile should stay (no wrap)
	app = press(t, app, "h")
	if app.Cursor() != 0 {
		t.Errorf("h at first tile should stay at 0, got %d", app.Cursor())
	}

	// l at the last tile should stay
	app = press(t, app, "ll")
	app = press(t, app, "l")
	if app.Cursor() != 2 {
		t.Errorf("l at last tile should stay at 2, got %d", app.Cursor())
	}
}

func TestApp_Navigation_JK_RowJump(t *testing.T) {
	// 8 websites in a 6-column grid: two rows.
	app := newTestApp(t, 8)

	// j from tile 0 jumps one row down to tile 6
	app = press(t, app, "j")
	if app.Cursor() != 6 {
		t.Errorf("after j, expected cursor 6, got %d", app.Cursor())
	}

	// k jumps back up
	app = press(t, app, "k")
	if app.Cursor() != 0 {
		t.Errorf("after k, expected cursor 0, got %d", app.Cursor())
	}

	// j from a tile with no tile below should stay
	app = press(t, app, "lll")
	app = press(t, app, "j")
	if app.Cursor() != 3 {
		t.Errorf("j with no tile below should stay at 3, got %d", app.Cursor())
	}
}

func TestApp_Navigation_GG_G(t *testing.T) {
	app := newTestApp(t, 5)

	app = press(t, app, "G")
	if app.Cursor() != 4 {
		t.Errorf("G should go to last tile (4), got %d", app.Cursor())
	}

	app = press(t, app, "gg")
	if app.Cursor() != 0 {
		t.Errorf("gg should go to first tile (0), got %d", app.Cursor())
	}
}

func TestApp_Navigation_SingleG_Cancels(t *testing.T) {
	app := newTestApp(t, 5)

	app = press(t, app, "l")
	app = press(t, app, "gl")

	// The single g was cancelled by l, so cursor just moved right again.
	if app.Cursor() != 2 {
		t.Errorf("single g followed by l should cancel gg, cursor at %d", app.Cursor())
	}
}

func TestApp_EmptyStore(t *testing.T) {
	app := newTestApp(t, 0)

	app = press(t, app, "jklhG")
	if app.Cursor() != 0 {
		t.Errorf("cursor should stay at 0 for empty store, got %d", app.Cursor())
	}
}

func TestApp_PageNavigation(t *testing.T) {
	svc := newTestService(t, 2)
	svc.Data.Websites = append(svc.Data.Websites, model.Website{
		ID:       "p2",
		Name:     "Second Page",
		URL:      "https://second.example.com/",
		TagIDs:   []string{},
		Position: model.Position{Page: 1, Order: 0},
	})

	app := tui.NewApp(tui.AppParams{Service: svc})

	app = press(t, app, "]")
	if app.Page() != 1 {
		t.Errorf("] should move to page 1, got %d", app.Page())
	}
	if app.Cursor() != 0 {
		t.Errorf("cursor should reset on page change, got %d", app.Cursor())
	}

	// ] past the last page stays
	app = press(t, app, "]")
	if app.Page() != 1 {
		t.Errorf("] past last page should stay at 1, got %d", app.Page())
	}

	app = press(t, app, "[")
	if app.Page() != 0 {
		t.Errorf("[ should move back to page 0, got %d", app.Page())
	}

	app = press(t, app, "[")
	if app.Page() != 0 {
		t.Errorf("[ at first page should stay at 0, got %d", app.Page())
	}
}

func TestApp_AddWebsite_Flow(t *testing.T) {
	app := newTestApp(t, 0)

	app = press(t, app, "a")
	if app.Mode() != tui.ModeAddWebsite {
		t.Fatal("expected add website mode after pressing 'a'")
	}

	app = press(t, app, "GitHub")
	app = pressKey(t, app, tea.KeyTab)
	app = press(t, app, "github.com")
	app = pressKey(t, app, tea.KeyEnter)

	if app.Mode() != tui.ModeNormal {
		t.Fatalf("expected normal mode after submit, got %d", app.Mode())
	}

	websites := app.Store().Websites
	if len(websites) != 1 {
		t.Fatalf("expected 1 website, got %d", len(websites))
	}
	if websites[0].Name != "GitHub" {
		t.Errorf("expected name GitHub, got %q", websites[0].Name)
	}
	if websites[0].URL != "https://github.com/" {
		t.Errorf("expected normalized URL, got %q", websites[0].URL)
	}
	if websites[0].Favicon == "" {
		t.Error("expected favicon URL to be resolved")
	}
}

func TestApp_AddWebsite_InvalidURL_StaysInModal(t *testing.T) {
	app := newTestApp(t, 0)

	app = press(t, app, "a")
	app = press(t, app, "Broken")
	app = pressKey(t, app, tea.KeyTab)
	app = press(t, app, "not a url")
	app = pressKey(t, app, tea.KeyEnter)

	if app.Mode() != tui.ModeAddWebsite {
		t.Error("expected to stay in modal on invalid URL")
	}
	if len(app.Store().Websites) != 0 {
		t.Error("no website should be added with invalid URL")
	}
}

func TestApp_AddWebsite_Cancel(t *testing.T) {
	app := newTestApp(t, 0)

	app = press(t, app, "a")
	app = press(t, app, "GitHub")
	app = pressKey(t, app, tea.KeyEsc)

	if app.Mode() != tui.ModeNormal {
		t.Error("expected normal mode after Esc")
	}
	if len(app.Store().Websites) != 0 {
		t.Error("no website should be added after cancel")
	}
}

func TestApp_AddWebsite_WithTags(t *testing.T) {
	app := newTestApp(t, 0)

	app = press(t, app, "a")
	app = press(t, app, "GitHub")
	app = pressKey(t, app, tea.KeyTab)
	app = press(t, app, "github.com")
	app = pressKey(t, app, tea.KeyTab)
	app = press(t, app, "work, development")
	app = pressKey(t, app, tea.KeyEnter)

	data := app.Store()
	if len(data.Tags) != 2 {
		t.Fatalf("expected 2 tags created, got %d", len(data.Tags))
	}
	if len(data.Websites) != 1 || len(data.Websites[0].TagIDs) != 2 {
		t.Fatal("expected website to carry both tag IDs")
	}
}

func TestApp_EditWebsite_DuplicateName_StaysInModal(t *testing.T) {
	app := newTestApp(t, 2)

	app = press(t, app, "e")
	if app.Mode() != tui.ModeEditWebsite {
		t.Fatal("expected edit website mode after pressing 'e'")
	}

	// Replace "Site 0" with the name of the other website, case changed.
	for i := 0; i < len("Site 0"); i++ {
		app = pressKey(t, app, tea.KeyBackspace)
	}
	app = press(t, app, "site 1")
	app = pressKey(t, app, tea.KeyEnter)

	if app.Mode() != tui.ModeEditWebsite {
		t.Error("rename onto an existing name should keep the modal open")
	}
	if app.Store().GetWebsiteByID("w0").Name != "Site 0" {
		t.Error("rejected rename must not mutate the store")
	}
	view := app.View()
	if !strings.Contains(view, "already exists") {
		t.Error("expected a duplicate-name error in the modal")
	}
}

func TestApp_AddWebsite_SpillsToNextPage(t *testing.T) {
	svc := newTestService(t, 2)
	svc.Data.Settings.Columns = 2
	svc.Data.Settings.Rows = 1 // page holds two tiles

	app := tui.NewApp(tui.AppParams{Service: svc})
	updated, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = updated.(tui.App)

	app = press(t, app, "a")
	app = press(t, app, "Third")
	app = pressKey(t, app, tea.KeyTab)
	app = press(t, app, "third.example.com")
	app = pressKey(t, app, tea.KeyEnter)

	var added *model.Website
	for i := range app.Store().Websites {
		if app.Store().Websites[i].Name == "Third" {
			added = &app.Store().Websites[i]
		}
	}
	if added == nil {
		t.Fatal("expected website to be added")
	}
	if added.Position.Page != 1 {
		t.Errorf("full page should spill the new tile to page 1, got %d", added.Position.Page)
	}
	if app.Page() != 1 {
		t.Errorf("view should follow the new tile to page 1, got %d", app.Page())
	}
}

func TestApp_Delete_Confirm(t *testing.T) {
	app := newTestApp(t, 2)

	app = press(t, app, "d")
	if app.Mode() != tui.ModeConfirmDelete {
		t.Fatal("expected confirm delete mode after pressing 'd'")
	}

	app = pressKey(t, app, tea.KeyEnter)
	if app.Mode() != tui.ModeNormal {
		t.Error("expected normal mode after confirming")
	}
	if len(app.Store().Websites) != 1 {
		t.Errorf("expected 1 website after delete, got %d", len(app.Store().Websites))
	}
	if app.Store().Websites[0].ID != "w1" {
		t.Error("expected w0 to be deleted")
	}
}

func TestApp_Delete_Cancel(t *testing.T) {
	app := newTestApp(t, 2)

	app = press(t, app, "d")
	app = pressKey(t, app, tea.KeyEsc)

	if app.Mode() != tui.ModeNormal {
		t.Error("expected normal mode after cancel")
	}
	if len(app.Store().Websites) != 2 {
		t.Error("cancel should not delete anything")
	}
}

func TestApp_EditTags_CreatesAndAttaches(t *testing.T) {
	app := newTestApp(t, 1)

	app = press(t, app, "t")
	if app.Mode() != tui.ModeEditTags {
		t.Fatal("expected edit tags mode after pressing 't'")
	}

	app = press(t, app, "work")
	app = pressKey(t, app, tea.KeyEnter)

	data := app.Store()
	if len(data.Tags) != 1 || data.Tags[0].Name != "work" {
		t.Fatal("expected tag 'work' to be created")
	}
	w := data.GetWebsiteByID("w0")
	if w == nil || !w.HasTag(data.Tags[0].ID) {
		t.Error("expected website to carry the new tag")
	}
}

func TestApp_Search_TagQuery(t *testing.T) {
	svc := newTestService(t, 3)
	tag := model.Tag{ID: "t1", Name: "work"}
	svc.Data.Tags = append(svc.Data.Tags, tag)
	svc.Data.Websites[1].TagIDs = []string{"t1"}

	var opened string
	app := tui.NewApp(tui.AppParams{
		Service: svc,
		OpenURL: func(url string) error {
			opened = url
			return nil
		},
	})

	app = press(t, app, "/")
	if app.Mode() != tui.ModeSearch {
		t.Fatal("expected search mode after pressing '/'")
	}

	app = press(t, app, "tag:work")
	app = pressKey(t, app, tea.KeyEnter)

	if app.Mode() != tui.ModeNormal {
		t.Error("expected normal mode after opening a result")
	}
	if opened != "https://site1.example.com/" {
		t.Errorf("expected tagged website to open, got %q", opened)
	}

	w := app.Store().GetWebsiteByID("w1")
	if w == nil || w.VisitCount != 1 {
		t.Error("expected visit to be recorded")
	}
}

func TestApp_Search_Escape(t *testing.T) {
	app := newTestApp(t, 2)

	app = press(t, app, "/")
	app = press(t, app, "site")
	app = pressKey(t, app, tea.KeyEsc)

	if app.Mode() != tui.ModeNormal {
		t.Error("expected normal mode after Esc")
	}
}

func TestApp_Open_RecordsVisit(t *testing.T) {
	svc := newTestService(t, 1)

	var opened string
	app := tui.NewApp(tui.AppParams{
		Service: svc,
		OpenURL: func(url string) error {
			opened = url
			return nil
		},
	})

	app = pressKey(t, app, tea.KeyEnter)

	if opened != "https://site0.example.com/" {
		t.Errorf("expected site0 to open, got %q", opened)
	}
	w := app.Store().GetWebsiteByID("w0")
	if w == nil || w.VisitCount != 1 || w.VisitedAt == nil {
		t.Error("expected visit to be recorded")
	}
}

func TestApp_Move_SwapsOrder(t *testing.T) {
	app := newTestApp(t, 3)

	app = press(t, app, "m")
	if app.Mode() != tui.ModeMove {
		t.Fatal("expected move mode after pressing 'm'")
	}

	app = press(t, app, "l")

	page := app.Store().WebsitesOnPage(0)
	if page[0].ID != "w1" || page[1].ID != "w0" {
		t.Errorf("expected w0 and w1 to swap, got %s, %s", page[0].ID, page[1].ID)
	}
	if app.Cursor() != 1 {
		t.Errorf("cursor should follow the moved tile, got %d", app.Cursor())
	}

	app = press(t, app, "m")
	if app.Mode() != tui.ModeNormal {
		t.Error("expected m to leave move mode")
	}
}

func TestApp_Move_SendToNextPage(t *testing.T) {
	app := newTestApp(t, 2)

	app = press(t, app, "m")
	app = press(t, app, "]")

	if app.Page() != 1 {
		t.Errorf("expected to follow tile to page 1, got %d", app.Page())
	}

	w := app.Store().GetWebsiteByID("w0")
	if w == nil || w.Position.Page != 1 {
		t.Error("expected w0 to move to page 1")
	}
	if len(app.Store().WebsitesOnPage(0)) != 1 {
		t.Error("expected one website left on page 0")
	}
}

func TestApp_Help_Toggle(t *testing.T) {
	app := newTestApp(t, 0)

	app = press(t, app, "?")
	if app.Mode() != tui.ModeHelp {
		t.Fatal("expected help mode after pressing '?'")
	}

	app = press(t, app, "?")
	if app.Mode() != tui.ModeNormal {
		t.Error("expected ? to close help")
	}
}

func TestApp_Quit(t *testing.T) {
	app := newTestApp(t, 0)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg from quit command")
	}
}

func TestApp_View_RendersTiles(t *testing.T) {
	app := newTestApp(t, 2)

	view := app.View()
	if view == "" {
		t.Fatal("expected non-empty view")
	}
	for _, want := range []string{"deck", "Site 0", "Site 1", "page 1/1"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestApp_View_ShowLabelsOff_HidesDomains(t *testing.T) {
	svc := newTestService(t, 1)
	svc.Data.Settings.ShowLabels = false

	app := tui.NewApp(tui.AppParams{Service: svc})
	updated, _ := app.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	app = updated.(tui.App)

	view := app.View()
	if !strings.Contains(view, "Site 0") {
		t.Error("tile name should always render")
	}
	if strings.Contains(view, "site0") {
		t.Error("domain label should be hidden when labels are off")
	}

	// Default settings keep the label line.
	labelled := newTestApp(t, 1).View()
	if !strings.Contains(labelled, "site0") {
		t.Error("domain label should render when labels are on")
	}
}

func TestApp_View_EmptyPage(t *testing.T) {
	app := newTestApp(t, 0)

	view := app.View()
	if !strings.Contains(view, "empty page") {
		t.Error("expected empty page hint")
	}
}
