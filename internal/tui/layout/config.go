package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Grid  GridConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// GridConfig holds grid dimension configuration.
type GridConfig struct {
	// HeightReduction is subtracted from terminal height for grid content.
	// Accounts for: app padding (1) + header (2) + help bar (3) = 6
	HeightReduction int

	// MinHeight is the minimum grid height.
	MinHeight int

	// MinTileWidth is the narrowest a tile may get before the grid
	// drops columns.
	MinTileWidth int

	// TileSpacing is the horizontal gap between tiles.
	TileSpacing int

	// TileHeight is the rendered height of one tile row.
	TileHeight int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the standard modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int

	// TagsMaxVisible: max tags shown in the tag picker.
	TagsMaxVisible int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// Character limits
	NameCharLimit   int
	URLCharLimit    int
	TagsCharLimit   int
	ColorCharLimit  int
	SearchCharLimit int

	// Display widths
	StandardWidth int
	SearchWidth   int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Grid: GridConfig{
			HeightReduction: 6, // app padding (1) + header (2) + help bar (3)
			MinHeight:       4,
			MinTileWidth:    14,
			TileSpacing:     2,
			TileHeight:      3,
		},
		Modal: ModalConfig{
			DefaultWidthPercent: 40,
			MinWidth:            50,
			MaxWidth:            80,
			TagsMaxVisible:      8,
		},
		Input: InputConfig{
			NameCharLimit:   50,
			URLCharLimit:    500,
			TagsCharLimit:   200,
			ColorCharLimit:  7,
			SearchCharLimit: 100,
			StandardWidth:   40,
			SearchWidth:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
