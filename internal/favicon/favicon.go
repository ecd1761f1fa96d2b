// Package favicon builds third-party favicon URLs and probes them
// best-effort. Resolution is keyed by domain; the host doing the
// actual image fetch is whoever renders the URL.
package favicon

import (
	"fmt"

	"github.com/lkoehl/deck/internal/validate"
)

// Known favicon services, keyed by config name.
var services = map[string]string{
	"duckduckgo": "https://icons.duckduckgo.com/ip3/%s.ico",
	"google":     "https://www.google.com/s2/favicons?domain=%s&sz=64",
	"iconhorse":  "https://icon.horse/icon/%s",
}

// DefaultService is used when the configured service is unknown.
const DefaultService = "duckduckgo"

// ServiceURL builds a favicon URL for the website's domain using the
// named service. Returns empty string when the website URL has no
// extractable domain.
func ServiceURL(service, websiteURL string) string {
	domain := validate.Domain(websiteURL)
	if domain == "" {
		return ""
	}

	pattern, ok := services[service]
	if !ok {
		pattern = services[DefaultService]
	}
	return fmt.Sprintf(pattern, domain)
}

// CandidateURLs returns one favicon URL per known service for the
// website's domain, used by the async prober to find a service that
// actually has the icon.
func CandidateURLs(websiteURL string) []string {
	domain := validate.Domain(websiteURL)
	if domain == "" {
		return nil
	}

	// Stable order: preferred service first.
	order := []string{"duckduckgo", "google", "iconhorse"}
	urls := make([]string, 0, len(order))
	for _, name := range order {
		urls = append(urls, fmt.Sprintf(services[name], domain))
	}
	return urls
}
