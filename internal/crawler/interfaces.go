package crawler

import (
	"context"
	"time"
)

// Fetcher fetches a single URL and returns the body plus metadata.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (Page, error)
}

// RobotsPolicy decides whether a URL may be fetched under robots.txt.
type RobotsPolicy interface {
	Allowed(ctx context.Context, rawURL string) bool
}

// RetryPolicy encapsulates transient-failure retry decisions.
type RetryPolicy interface {
	ShouldRetry(err error, attempt int) bool
	Backoff(attempt int) time.Duration
}

// AdmissionPolicy is consulted with the normalized URL before every fetch.
// Returning false skips the URL entirely; it is never fetched and never
// counts against the page budget.
type AdmissionPolicy interface {
	AllowFetch(normalizedURL string) bool
}

// PauseController abstracts how the engine waits between fetches.
type PauseController interface {
	Pause(ctx context.Context, delay time.Duration)
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// Handler receives every FetchResult the engine produces, in crawl order.
// A non-nil error aborts the crawl.
type Handler func(ctx context.Context, result FetchResult) error
