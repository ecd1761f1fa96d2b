package validate

import (
	"net/url"
	"strings"
)

const (
	// MaxNameLength is the maximum length for website and tag names.
	MaxNameLength = 50
	// MaxExtraLinkNameLength is the maximum length for extra link names.
	MaxExtraLinkNameLength = 30
)

// IsValidURL reports whether raw is a well-formed http or https URL.
// javascript: and data: URIs parse fine but are rejected as a safety
// boundary.
func IsValidURL(raw string) bool {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return false
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false
	}

	return u.Host != ""
}

// NormalizeURL trims raw and prepends https:// when no scheme is
// present, then re-parses and returns the canonical form. Bare-domain
// inputs gain a trailing slash. Returns an error for input that does
// not parse or fails IsValidURL.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw != "" && !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	if !IsValidURL(raw) {
		return "", &url.Error{Op: "normalize", URL: raw, Err: url.InvalidHostError("")}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String(), nil
}

// Domain extracts the lower-cased host from a URL, without port.
// Returns empty string for unparseable input.
func Domain(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// IsValidName reports whether name is non-empty after trimming and at
// most MaxNameLength characters.
func IsValidName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && len([]rune(trimmed)) <= MaxNameLength
}

// IsValidExtraLinkName reports whether name is non-empty after trimming
// and at most MaxExtraLinkNameLength characters.
func IsValidExtraLinkName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return trimmed != "" && len([]rune(trimmed)) <= MaxExtraLinkNameLength
}

// IsValidHexColor reports whether color is exactly "#" followed by six
// hex digits. The three-digit short form is rejected.
func IsValidHexColor(color string) bool {
	if len(color) != 7 || color[0] != '#' {
		return false
	}
	for i := 1; i < 7; i++ {
		c := color[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
