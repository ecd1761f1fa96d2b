package main

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lkoehl/deck/internal/exporter"
	"github.com/lkoehl/deck/internal/favicon"
	"github.com/lkoehl/deck/internal/importer"
	"github.com/lkoehl/deck/internal/model"
	"github.com/lkoehl/deck/internal/picker"
	"github.com/lkoehl/deck/internal/search"
	"github.com/lkoehl/deck/internal/storage"
	"github.com/lkoehl/deck/internal/store"
	"github.com/lkoehl/deck/internal/tui"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "import":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: deck import <file.json|file.html>\n")
				os.Exit(1)
			}
			runImport(os.Args[2])
			return
		case "export":
			runExport(os.Args[2:])
			return
		case "check":
			runCheck()
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `deck - website launchpad for your terminal

Usage:
  deck                  Open interactive launchpad
  deck <query>          Quick search → select → open ("tag:name" filters by tag)
  deck import <file>    Import websites from JSON or bookmarks HTML
  deck export [path]    Export websites to JSON (--html for bookmarks HTML)
  deck check            Probe website and favicon URLs for dead links
  deck help             Show this help

TUI Keybindings:
  Navigation:
    h/j/k/l     Move across the grid
    [/]         Previous/next page
    gg/G        Jump to first/last tile

  Actions:
    Enter/o     Open website in browser
    Y           Copy URL to clipboard
    /           Search (plain text or tag:name)
    C           Check links

  Editing:
    a           Add website
    e           Edit selected website
    t           Edit tags
    m           Move tile (hjkl swaps, [/] sends to page)
    d           Delete

  Other:
    ?           Show help overlay
    q           Quit

Data Storage:
  ~/.config/deck (file, document, or sqlite backend; DECK_BACKEND overrides)
`
	fmt.Print(help)
}

// openService opens the storage backend and loads the data store.
func openService() *store.Service {
	dir, err := storage.DefaultDataDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating data dir: %v\n", err)
		os.Exit(1)
	}

	backend, err := storage.Open(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening storage: %v\n", err)
		os.Exit(1)
	}

	svc, err := store.Open(backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading websites: %v\n", err)
		os.Exit(1)
	}
	return svc
}

// loadConfig loads the tool configuration, creating it on first run.
func loadConfig() *storage.Config {
	path, err := storage.DefaultConfigFilePath()
	if err != nil {
		cfg := storage.DefaultConfig()
		return &cfg
	}
	cfg, err := storage.LoadConfig(path)
	if err != nil {
		def := storage.DefaultConfig()
		return &def
	}
	return cfg
}

// runTUI runs the full interactive launchpad.
func runTUI() {
	svc := openService()
	cfg := loadConfig()

	app := tui.NewApp(tui.AppParams{
		Service: svc,
		Config:  cfg,
		OpenURL: openURL,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}

	if err := svc.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving websites: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch performs a search and opens the selected website.
func runQuickSearch(query string) {
	svc := openService()
	defer svc.Close()

	results := search.Search(svc.Data, query)
	if len(results) == 0 {
		fmt.Printf("No websites found for '%s'\n", query)
		return
	}

	var selected *model.Website

	if len(results) == 1 {
		// Single result - select it directly
		selected = results[0].Website
		fmt.Printf("Opening: %s\n", selected.Name)
	} else {
		// Multiple results - show picker
		p := picker.New(results, query, func(w *model.Website) []string {
			names := make([]string, 0, len(w.TagIDs))
			for _, id := range w.TagIDs {
				if tag := svc.Data.GetTagByID(id); tag != nil {
					names = append(names, tag.Name)
				}
			}
			return names
		})
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			return
		}
		selected = finalPicker.SelectedWebsite()
	}

	if selected == nil {
		return
	}

	svc.Data.RecordVisit(selected.ID)
	if err := svc.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving websites: %v\n", err)
	}

	if err := openURL(selected.URL); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening browser: %v\n", err)
	}
}

// openURL opens a URL in the default browser.
func openURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform %s", runtime.GOOS)
	}
	return cmd.Start()
}

// runImport handles the import subcommand. JSON documents replace
// nothing and merge; bookmarks HTML folders become tags.
func runImport(filePath string) {
	svc := openService()
	defer svc.Close()

	file, err := os.Open(filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	var added, skipped int
	if strings.HasSuffix(strings.ToLower(filePath), ".html") ||
		strings.HasSuffix(strings.ToLower(filePath), ".htm") {
		websites, tags, err := importer.ParseHTML(file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing HTML: %v\n", err)
			os.Exit(1)
		}
		added, skipped = svc.Data.MergeImported(websites, tags)
	} else {
		added, skipped, err = importer.ApplyJSON(svc.Data, file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error importing: %v\n", err)
			os.Exit(1)
		}
	}

	if err := svc.Save(); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving websites: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d websites", added)
	if skipped > 0 {
		fmt.Printf(" (%d duplicates skipped)", skipped)
	}
	fmt.Println()
}

// runExport handles the export subcommand.
func runExport(args []string) {
	asHTML := false
	outputPath := ""
	for _, arg := range args {
		if arg == "--html" {
			asHTML = true
			continue
		}
		outputPath = arg
	}

	svc := openService()
	defer svc.Close()

	var data []byte
	var err error
	if asHTML {
		if outputPath == "" {
			outputPath, err = exporter.DefaultHTMLExportPath()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error getting export path: %v\n", err)
				os.Exit(1)
			}
		}
		data = []byte(exporter.ExportHTML(svc.Data))
	} else {
		if outputPath == "" {
			outputPath, err = exporter.DefaultExportPath()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error getting export path: %v\n", err)
				os.Exit(1)
			}
		}
		data, err = exporter.ExportJSON(svc.Data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting: %v\n", err)
			os.Exit(1)
		}
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d websites, %d tags to %s\n",
		len(svc.Data.Websites), len(svc.Data.Tags), outputPath)
}

// runCheck probes every website URL and its favicon candidates,
// printing the ones that need attention.
func runCheck() {
	svc := openService()
	defer svc.Close()

	cfg := loadConfig()

	websites := svc.Data.Websites
	if len(websites) == 0 {
		fmt.Println("Nothing to check")
		return
	}

	fmt.Printf("Checking %d websites...\n", len(websites))
	results := favicon.ProbeWebsites(
		websites,
		cfg.ProbeConcurrency,
		time.Duration(cfg.ProbeTimeoutSeconds)*time.Second,
		func(completed, total int) {
			fmt.Printf("\r[%d/%d]", completed, total)
		},
	)
	fmt.Println()

	problems := 0
	for _, r := range results {
		switch r.Status {
		case favicon.Dead:
			problems++
			fmt.Printf("DEAD        %-30s %s [%d]\n", r.Website.Name, r.Website.URL, r.StatusCode)
		case favicon.Unreachable:
			problems++
			fmt.Printf("UNREACHABLE %-30s %s (%s)\n", r.Website.Name, r.Website.URL, r.Error)
		}
	}

	if problems == 0 {
		fmt.Println("All websites healthy")
	} else {
		fmt.Printf("%d of %d websites need attention\n", problems, len(websites))
	}
}
