package layout

// GridLayout holds calculated grid dimensions.
type GridLayout struct {
	Columns   int
	TileWidth int
}

// CalculateGrid computes how many of the desired columns fit the
// terminal and how wide each tile gets. Columns are dropped before
// tiles shrink below MinTileWidth.
func CalculateGrid(terminalWidth, desiredColumns int, cfg GridConfig) GridLayout {
	if desiredColumns < 1 {
		desiredColumns = 1
	}

	columns := desiredColumns
	for columns > 1 {
		width := tileWidthFor(terminalWidth, columns, cfg)
		if width >= cfg.MinTileWidth {
			break
		}
		columns--
	}

	width := tileWidthFor(terminalWidth, columns, cfg)
	if width < cfg.MinTileWidth {
		width = cfg.MinTileWidth
	}

	return GridLayout{Columns: columns, TileWidth: width}
}

func tileWidthFor(terminalWidth, columns int, cfg GridConfig) int {
	spacing := cfg.TileSpacing * (columns - 1)
	return (terminalWidth - spacing) / columns
}

// CalculateGridHeight computes the content height for the grid.
// Returns at least MinHeight.
func CalculateGridHeight(terminalHeight int, cfg GridConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateVisibleListItems computes the start and end indices for a scrollable list.
// Returns (start, end) where items[start:end] should be displayed.
func CalculateVisibleListItems(maxVisible, selectedIdx, totalItems int) (start, end int) {
	if totalItems <= maxVisible {
		return 0, totalItems
	}

	if selectedIdx >= maxVisible {
		start = selectedIdx - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalItems {
		end = totalItems
	}

	return start, end
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
