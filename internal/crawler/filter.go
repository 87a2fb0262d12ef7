package crawler

import (
	"net/url"
	"path"
	"strings"
)

// urlFilter rejects URLs that are known non-content pages before they reach
// the frontier: auth flows, search results, API endpoints, and static assets.
type urlFilter struct {
	pathSubstrings []string
	extensions     map[string]struct{}
}

func newDefaultURLFilter() *urlFilter {
	f := &urlFilter{
		pathSubstrings: []string{
			"/login", "/signup", "/register", "/logout",
			"/api/", "/ajax/", "/static/", "/assets/",
		},
		extensions: make(map[string]struct{}),
	}
	for _, ext := range []string{
		".pdf", ".zip", ".tar", ".gz",
		".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".ico",
		".css", ".js", ".json", ".xml",
		".woff", ".woff2", ".ttf",
		".mp3", ".mp4", ".webm",
	} {
		f.extensions[ext] = struct{}{}
	}
	return f
}

// Blocked reports whether u matches a non-content pattern.
func (f *urlFilter) Blocked(u *url.URL) bool {
	if f == nil || u == nil {
		return false
	}
	p := strings.ToLower(u.Path)
	for _, sub := range f.pathSubstrings {
		if strings.Contains(p, sub) {
			return true
		}
	}
	if _, ok := f.extensions[path.Ext(p)]; ok {
		return true
	}
	q := u.Query()
	if q.Has("search") {
		return true
	}
	if u.RawQuery != "" && (strings.HasSuffix(p, "/search") || strings.HasSuffix(p, "/results")) {
		return true
	}
	return false
}
