package model

// Settings holds grid layout preferences.
type Settings struct {
	Columns      int  `json:"columns"`
	Rows         int  `json:"rows"`
	OpenInNewTab bool `json:"openInNewTab"`
	ShowLabels   bool `json:"showLabels"`
}

// DefaultSettings returns the default grid configuration.
func DefaultSettings() Settings {
	return Settings{
		Columns:      6,
		Rows:         4,
		OpenInNewTab: true,
		ShowLabels:   true,
	}
}

// PageSize returns the number of tiles per page.
func (s Settings) PageSize() int {
	size := s.Columns * s.Rows
	if size <= 0 {
		return 24
	}
	return size
}
