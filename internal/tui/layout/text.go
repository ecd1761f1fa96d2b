package layout

import (
	"regexp"
	"unicode/utf8"
)

// ansiRegex matches ANSI escape sequences.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleLength returns the visible length of a string (excluding ANSI codes).
func VisibleLength(s string) int {
	return utf8.RuneCountInString(StripANSI(s))
}

// TruncateText truncates text to maxWidth with ellipsis.
// Handles edge cases where text is shorter than maxWidth or maxWidth is very small.
// Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	ellipsisLen := utf8.RuneCountInString(cfg.Ellipsis)
	textLen := utf8.RuneCountInString(text)

	if textLen <= maxWidth {
		return text, false
	}

	// Need space for ellipsis
	if maxWidth <= ellipsisLen {
		// Not enough room for any text + ellipsis, just return truncated ellipsis
		runes := []rune(cfg.Ellipsis)
		return string(runes[:maxWidth]), true
	}

	runes := []rune(text)
	truncLen := maxWidth - ellipsisLen
	return string(runes[:truncLen]) + cfg.Ellipsis, true
}

// TruncateWithPrefixSuffix truncates text while preserving prefix and suffix.
// Example: TruncateWithPrefixSuffix("Development", 12, "# ", "/", cfg) -> "# Develop.../"
// Returns the truncated text and whether truncation occurred.
func TruncateWithPrefixSuffix(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	combined := prefix + text + suffix
	combinedLen := utf8.RuneCountInString(combined)

	if combinedLen <= maxWidth {
		return combined, false
	}

	// Calculate available space for text
	prefixLen := utf8.RuneCountInString(prefix)
	suffixLen := utf8.RuneCountInString(suffix)
	ellipsisLen := utf8.RuneCountInString(cfg.Ellipsis)
	overhead := prefixLen + suffixLen + ellipsisLen

	if overhead >= maxWidth {
		// Not enough room even for prefix + ellipsis + suffix
		// Fall back to simple truncation
		return TruncateText(combined, maxWidth, cfg)
	}

	availableForText := maxWidth - overhead
	runes := []rune(text)

	if availableForText <= 0 {
		return prefix + cfg.Ellipsis + suffix, true
	}

	return prefix + string(runes[:availableForText]) + cfg.Ellipsis + suffix, true
}
