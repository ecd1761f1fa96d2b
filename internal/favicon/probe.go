package favicon

import (
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/lkoehl/deck/internal/model"
)

// Status represents the health of a probed URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

// Result holds the probe outcome for a single website.
type Result struct {
	Website    *model.Website
	Status     Status
	StatusCode int    // HTTP status code (0 if connection failed)
	FaviconURL string // first candidate favicon URL that answered, empty if none
	Error      string // error message for unreachable URLs
}

// ProgressFunc is called after each website is probed.
type ProgressFunc func(completed, total int)

// ProbeWebsites checks website URLs and their candidate favicon
// services concurrently. Best effort: no retries, bounded only by the
// client timeout.
func ProbeWebsites(websites []model.Website, concurrency int, timeout time.Duration, onProgress ProgressFunc) []Result {
	if len(websites) == 0 {
		return nil
	}
	if concurrency <= 0 {
		concurrency = 1
	}

	// Suppress noisy HTTP client logging (protocol errors, unsolicited
	// responses, etc.)
	originalOutput := log.Writer()
	log.SetOutput(io.Discard)
	defer log.SetOutput(originalOutput)

	results := make([]Result, len(websites))
	jobs := make(chan int, len(websites))
	var wg sync.WaitGroup

	var progressMu sync.Mutex
	completed := 0

	client := &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= 10 {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = probeWebsite(client, &websites[idx])

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(websites))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range websites {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// probeWebsite checks the site URL, then hunts for a favicon service
// that answers for its domain.
func probeWebsite(client *http.Client, website *model.Website) Result {
	result := Result{Website: website}

	resp, err := headThenGet(client, website.URL)
	if err != nil {
		result.Status = Unreachable
		result.Error = normalizeError(err.Error())
		return result
	}
	resp.Body.Close()

	result.StatusCode = resp.StatusCode
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == 404 || resp.StatusCode == 410:
		result.Status = Dead
	default:
		// Other errors (500, 403, etc.) could be temporary server
		// issues or auth-required pages.
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	if result.Status != Healthy {
		return result
	}

	for _, candidate := range CandidateURLs(website.URL) {
		iconResp, err := headThenGet(client, candidate)
		if err != nil {
			continue
		}
		iconResp.Body.Close()
		if iconResp.StatusCode >= 200 && iconResp.StatusCode < 400 {
			result.FaviconURL = candidate
			break
		}
	}
	return result
}

// headThenGet tries HEAD first (faster, less bandwidth) and falls back
// to GET for servers that don't support HEAD.
func headThenGet(client *http.Client, url string) (*http.Response, error) {
	resp, err := client.Head(url)
	if err != nil {
		return client.Get(url)
	}
	return resp, nil
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
