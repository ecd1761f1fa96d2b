package layout

import "testing"

func TestStripANSI(t *testing.T) {
	styled := "\x1b[1mBold\x1b[0m plain"
	if got := StripANSI(styled); got != "Bold plain" {
		t.Errorf("StripANSI = %q", got)
	}
}

func TestVisibleLength(t *testing.T) {
	if got := VisibleLength("\x1b[31mred\x1b[0m"); got != 3 {
		t.Errorf("VisibleLength = %d, want 3", got)
	}
}

func TestTruncateText(t *testing.T) {
	cfg := TextConfig{Ellipsis: "..."}

	tests := []struct {
		name      string
		text      string
		maxWidth  int
		want      string
		truncated bool
	}{
		{"fits", "short", 10, "short", false},
		{"exact fit", "exactly10!", 10, "exactly10!", false},
		{"truncated", "a long website name", 10, "a long ...", true},
		{"tiny width", "text", 2, "..", true},
		{"zero width", "text", 0, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, truncated := TruncateText(tt.text, tt.maxWidth, cfg)
			if got != tt.want || truncated != tt.truncated {
				t.Errorf("got (%q, %v), want (%q, %v)", got, truncated, tt.want, tt.truncated)
			}
		})
	}
}

func TestTruncateWithPrefixSuffix(t *testing.T) {
	cfg := TextConfig{Ellipsis: "..."}

	got, truncated := TruncateWithPrefixSuffix("Development", 20, "# ", "/", cfg)
	if truncated {
		t.Errorf("should fit, got %q", got)
	}
	if got != "# Development/" {
		t.Errorf("got %q", got)
	}

	got, truncated = TruncateWithPrefixSuffix("Development", 12, "# ", "/", cfg)
	if !truncated {
		t.Error("expected truncation")
	}
	if VisibleLength(got) > 12 {
		t.Errorf("result too wide: %q", got)
	}
}
