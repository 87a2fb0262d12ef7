package crawler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Engine drives a breadth-first crawl of a single domain. It owns the
// frontier and the visited set; everything else is injected.
type Engine struct {
	cfg     Config
	fetcher Fetcher
	robots  RobotsPolicy
	retry   RetryPolicy
	gate    AdmissionPolicy
	filter  *urlFilter
	clock   Clock
	pause   PauseController
	logger  *zap.Logger
}

// NewEngine wires a crawl engine. robots, retry, gate, clock, pause, and
// logger may be nil; permissive or default implementations are substituted.
func NewEngine(
	cfg Config,
	fetcher Fetcher,
	robots RobotsPolicy,
	retry RetryPolicy,
	gate AdmissionPolicy,
	clock Clock,
	pause PauseController,
	logger *zap.Logger,
) *Engine {
	if robots == nil {
		robots = &allowAllPolicy{}
	}
	if retry == nil {
		retry = NewExponentialRetryPolicy()
	}
	if clock == nil {
		clock = utcClock{}
	}
	if pause == nil {
		pause = NewTimerPause()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:     cfg,
		fetcher: fetcher,
		robots:  robots,
		retry:   retry,
		gate:    gate,
		filter:  newDefaultURLFilter(),
		clock:   clock,
		pause:   pause,
		logger:  logger,
	}
}

// Crawl walks the domain breadth-first starting from cfg.StartURL, calling
// handler for every fetch attempt in crawl order. It stops when the frontier
// drains, the page budget is exhausted, or the context is canceled.
func (e *Engine) Crawl(ctx context.Context, handler Handler) (Stats, error) {
	var stats Stats

	start, err := NormalizeURL(e.cfg.StartURL)
	if err != nil {
		return stats, fmt.Errorf("normalize start url: %w", err)
	}
	startParsed, err := url.Parse(start)
	if err != nil {
		return stats, fmt.Errorf("parse start url: %w", err)
	}

	queue := newFrontier()
	seen := newVisitTracker()
	seen.MarkIfNew(start)
	queue.Push(start, 0)

	e.logger.Info("Crawl started",
		zap.String("start_url", start),
		zap.Int("max_pages", e.cfg.MaxPages),
		zap.Int("max_depth", e.cfg.MaxDepth),
	)

	for queue.Len() > 0 && stats.Attempted < e.cfg.MaxPages {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		entry, ok := queue.Pop()
		if !ok {
			break
		}

		if e.gate != nil && !e.gate.AllowFetch(entry.url) {
			stats.SkippedByGate++
			e.logger.Debug("Skipping already recorded URL", zap.String("url", entry.url))
			continue
		}
		if !e.robots.Allowed(ctx, entry.url) {
			stats.SkippedByRobots++
			TotalRobotsDenied.Inc()
			e.logger.Info("Skipping URL disallowed by robots.txt", zap.String("url", entry.url))
			continue
		}

		if stats.Attempted > 0 {
			e.pause.Pause(ctx, e.cfg.Delay)
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}

		e.logger.Info("Fetching", zap.String("url", entry.url), zap.Int("depth", entry.depth))
		page, fetchErr := e.fetchWithRetry(ctx, entry.url)
		stats.Attempted++
		TotalRequests.Inc()

		result := e.classify(entry, page, fetchErr)
		if !result.Success() {
			stats.Failed++
			TotalRequestErrors.Inc()
			e.logger.Warn("Fetch failed",
				zap.String("url", entry.url),
				zap.String("status", string(result.Status)),
				zap.Int("status_code", result.StatusCode),
				zap.Error(result.Err),
			)
			if handler != nil {
				if herr := handler(ctx, result); herr != nil {
					return stats, herr
				}
			}
			continue
		}

		if !isHTMLContent(page.Headers) {
			stats.SkippedNonHTML++
			e.logger.Debug("Skipping non-HTML content",
				zap.String("url", entry.url),
				zap.String("content_type", page.Headers.Get("Content-Type")),
			)
			continue
		}

		stats.Succeeded++
		TotalPagesFetched.Inc()
		if handler != nil {
			if herr := handler(ctx, result); herr != nil {
				return stats, herr
			}
		}

		if entry.depth < e.cfg.MaxDepth {
			e.enqueueLinks(result, entry.depth, startParsed, queue, seen, &stats)
		}
	}

	e.logger.Info("Crawl finished",
		zap.Int("attempted", stats.Attempted),
		zap.Int("succeeded", stats.Succeeded),
		zap.Int("failed", stats.Failed),
		zap.Int("frontier_remaining", queue.Len()),
	)
	return stats, nil
}

func (e *Engine) fetchWithRetry(ctx context.Context, rawURL string) (Page, error) {
	attempt := 0
	for {
		page, err := e.fetcher.Fetch(ctx, rawURL)
		if err == nil || !e.retry.ShouldRetry(err, attempt) {
			return page, err
		}
		attempt++
		backoff := e.retry.Backoff(attempt)
		e.logger.Debug("Retrying fetch",
			zap.String("url", rawURL),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
			zap.Error(err),
		)
		e.pause.Pause(ctx, backoff)
		if cerr := ctx.Err(); cerr != nil {
			return Page{}, cerr
		}
	}
}

func (e *Engine) classify(entry frontierEntry, page Page, err error) FetchResult {
	result := FetchResult{
		URL:       entry.url,
		Depth:     entry.depth,
		FetchedAt: e.clock.Now(),
	}
	if err == nil {
		result.Status = FetchStatusSuccess
		result.StatusCode = page.StatusCode
		result.FinalURL = page.FinalURL
		result.Body = page.Body
		return result
	}
	result.Err = err
	var httpErr *HTTPStatusError
	switch {
	case errors.As(err, &httpErr):
		result.Status = FetchStatusHTTPError
		result.StatusCode = httpErr.StatusCode
	case isTimeout(err):
		result.Status = FetchStatusTimeout
	default:
		result.Status = FetchStatusNetworkError
	}
	return result
}

func (e *Engine) enqueueLinks(
	result FetchResult,
	depth int,
	startURL *url.URL,
	queue *frontier,
	seen *visitTracker,
	stats *Stats,
) {
	base, err := url.Parse(result.FinalURL)
	if err != nil || base.Host == "" {
		base, err = url.Parse(result.URL)
		if err != nil {
			return
		}
	}
	for _, href := range extractLinks(result.Body) {
		normalized, parsed, err := resolveLink(base, href)
		if err != nil {
			continue
		}
		if !sameHost(parsed, startURL) {
			stats.LinksFiltered++
			continue
		}
		if e.filter.Blocked(parsed) {
			stats.LinksFiltered++
			TotalLinksFiltered.Inc()
			continue
		}
		childDepth := depth + 1
		if childDepth > e.cfg.MaxDepth {
			continue
		}
		if !seen.MarkIfNew(normalized) {
			continue
		}
		queue.Push(normalized, childDepth)
		stats.LinksDiscovered++
	}
}

func extractLinks(body []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil
	}
	var hrefs []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if href, ok := s.Attr("href"); ok {
			hrefs = append(hrefs, href)
		}
	})
	return hrefs
}

func isHTMLContent(headers http.Header) bool {
	ct := strings.ToLower(headers.Get("Content-Type"))
	if ct == "" {
		// No header at all; let the extractor decide.
		return true
	}
	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
