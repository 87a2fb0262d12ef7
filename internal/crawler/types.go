package crawler

import (
	"fmt"
	"net/http"
	"time"
)

// FetchStatus classifies the outcome of a single fetch attempt.
type FetchStatus string

// Fetch outcomes surfaced to the pipeline.
const (
	FetchStatusSuccess      FetchStatus = "success"
	FetchStatusHTTPError    FetchStatus = "http_error"
	FetchStatusNetworkError FetchStatus = "network_error"
	FetchStatusTimeout      FetchStatus = "timeout"
)

// Page is the raw transport-level result returned by a Fetcher.
type Page struct {
	URL        string
	FinalURL   string
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// ContentLength returns the body length in bytes.
func (p Page) ContentLength() int {
	return len(p.Body)
}

// FetchResult is produced by the engine for every attempted fetch,
// success or failure. Body is present only on success.
type FetchResult struct {
	URL        string
	FinalURL   string
	Depth      int
	Status     FetchStatus
	StatusCode int
	Body       []byte
	FetchedAt  time.Time
	Err        error
}

// Success reports whether the fetch yielded usable HTML.
func (r FetchResult) Success() bool {
	return r.Status == FetchStatusSuccess
}

// Stats summarizes a single crawl session.
type Stats struct {
	Attempted       int
	Succeeded       int
	Failed          int
	SkippedByRobots int
	SkippedByGate   int
	SkippedNonHTML  int
	LinksDiscovered int
	LinksFiltered   int
}

// HTTPStatusError reports a non-2xx response from the origin.
type HTTPStatusError struct {
	StatusCode int
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("http status %d", e.StatusCode)
}
