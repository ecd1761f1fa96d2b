package layout

import "testing"

func TestCalculateGrid(t *testing.T) {
	cfg := DefaultConfig().Grid

	tests := []struct {
		name           string
		terminalWidth  int
		desiredColumns int
		wantColumns    int
	}{
		{"wide terminal keeps all columns", 120, 6, 6},
		{"narrow terminal drops columns", 60, 6, 3},
		{"very narrow keeps one column", 10, 6, 1},
		{"zero desired clamps to one", 80, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateGrid(tt.terminalWidth, tt.desiredColumns, cfg)
			if got.Columns != tt.wantColumns {
				t.Errorf("Columns = %d, want %d", got.Columns, tt.wantColumns)
			}
			if got.TileWidth < cfg.MinTileWidth {
				t.Errorf("TileWidth %d below minimum %d", got.TileWidth, cfg.MinTileWidth)
			}
		})
	}
}

func TestCalculateGridHeight(t *testing.T) {
	cfg := DefaultConfig().Grid

	if got := CalculateGridHeight(30, cfg); got != 24 {
		t.Errorf("CalculateGridHeight(30) = %d, want 24", got)
	}
	// Tiny terminal clamps to minimum
	if got := CalculateGridHeight(5, cfg); got != cfg.MinHeight {
		t.Errorf("CalculateGridHeight(5) = %d, want %d", got, cfg.MinHeight)
	}
}

func TestCalculateVisibleListItems(t *testing.T) {
	tests := []struct {
		name        string
		maxVisible  int
		selectedIdx int
		totalItems  int
		wantStart   int
		wantEnd     int
	}{
		{"all fit", 10, 0, 5, 0, 5},
		{"window at top", 5, 2, 20, 0, 5},
		{"window follows selection", 5, 9, 20, 5, 10},
		{"window at bottom", 5, 19, 20, 15, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateVisibleListItems(tt.maxVisible, tt.selectedIdx, tt.totalItems)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("got (%d, %d), want (%d, %d)", start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestCalculateViewportOffset(t *testing.T) {
	tests := []struct {
		name           string
		selected       int
		total          int
		viewportHeight int
		want           int
	}{
		{"all fit", 3, 5, 10, 0},
		{"selection centered", 10, 30, 10, 5},
		{"clamped at top", 1, 30, 10, 0},
		{"clamped at bottom", 29, 30, 10, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateViewportOffset(tt.selected, tt.total, tt.viewportHeight); got != tt.want {
				t.Errorf("got %d, want %d", got, tt.want)
			}
		})
	}
}
