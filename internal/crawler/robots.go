package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/temoto/robotstxt"
	"go.uber.org/zap"
)

// RobotsEnforcer enforces robots.txt directives per host. The rule set is
// fetched at most once per host per session; a missing or unreachable
// robots.txt is treated as allow-all (fail-open) with a logged warning.
type RobotsEnforcer struct {
	client    *http.Client
	cache     map[string]*robotstxt.RobotsData
	userAgent string
	logger    *zap.Logger
}

// NewRobotsEnforcer builds a RobotsPolicy respecting the config toggle.
func NewRobotsEnforcer(respect bool, userAgent string, timeout time.Duration, logger *zap.Logger) RobotsPolicy {
	if !respect {
		return &allowAllPolicy{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &RobotsEnforcer{
		client:    &http.Client{Timeout: timeout},
		cache:     make(map[string]*robotstxt.RobotsData),
		userAgent: userAgent,
		logger:    logger,
	}
}

// Allowed implements RobotsPolicy.
func (r *RobotsEnforcer) Allowed(ctx context.Context, rawURL string) bool {
	if r == nil {
		return true
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	data := r.load(ctx, parsed)
	group := data.FindGroup(r.userAgent)
	if group == nil {
		return true
	}
	p := parsed.Path
	if p == "" {
		p = "/"
	}
	return group.Test(p)
}

func (r *RobotsEnforcer) load(ctx context.Context, parsed *url.URL) *robotstxt.RobotsData {
	hostKey := strings.ToLower(parsed.Host)
	if data, ok := r.cache[hostKey]; ok {
		return data
	}
	data, err := r.fetch(ctx, parsed)
	if err != nil {
		r.logger.Warn("robots.txt unavailable; allowing all paths",
			zap.String("host", parsed.Host),
			zap.Error(err),
		)
		data = allowAllData()
	}
	// Cache failures too: the spec is one robots fetch per session.
	r.cache[hostKey] = data
	return data
}

func (r *RobotsEnforcer) fetch(ctx context.Context, parsed *url.URL) (*robotstxt.RobotsData, error) {
	robotsURL := url.URL{
		Scheme: parsed.Scheme,
		Host:   parsed.Host,
		Path:   "/robots.txt",
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("new robots request: %w", err)
	}
	req.Header.Set("User-Agent", r.userAgent)
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch robots: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			r.logger.Debug("Failed to close robots response body", zap.Error(cerr))
		}
	}()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read robots body: %w", err)
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, fmt.Errorf("parse robots: %w", err)
	}
	return data, nil
}

func allowAllData() *robotstxt.RobotsData {
	data, err := robotstxt.FromStatusAndBytes(http.StatusNotFound, nil)
	if err != nil {
		return &robotstxt.RobotsData{}
	}
	return data
}

type allowAllPolicy struct{}

func (a *allowAllPolicy) Allowed(context.Context, string) bool { return true }
