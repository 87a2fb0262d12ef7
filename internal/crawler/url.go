package crawler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// NormalizeURL standardizes a URL so two spellings of the same page compare
// equal. It lowercases the scheme and host, removes default ports, drops
// fragments, sorts query parameters, strips index.html variants, and removes
// trailing slashes (except for the root path). The transform is idempotent.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Scheme == "http" {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""
	u.RawFragment = ""

	// Sort query parameters.
	q := u.Query()
	u.RawQuery = q.Encode()

	u.Path = canonicalPath(u.Path)
	u.RawPath = ""

	return u.String(), nil
}

// canonicalPath collapses index.html/trailing-slash spellings of a path.
func canonicalPath(p string) string {
	if p == "" {
		return "/"
	}
	for _, index := range []string{"index.html", "index.htm"} {
		if strings.HasSuffix(p, "/"+index) {
			p = strings.TrimSuffix(p, index)
			break
		}
	}
	if len(p) > 1 {
		p = strings.TrimSuffix(p, "/")
	}
	if p == "" {
		p = "/"
	}
	return p
}

// resolveLink resolves href against base, rejects non-HTTP schemes, and
// returns the normalized absolute URL plus its parsed form.
func resolveLink(base *url.URL, href string) (string, *url.URL, error) {
	href = strings.TrimSpace(href)
	if href == "" {
		return "", nil, errors.New("empty href")
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", nil, fmt.Errorf("parse href: %w", err)
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", nil, fmt.Errorf("unsupported scheme %q", abs.Scheme)
	}
	normalized, err := NormalizeURL(abs.String())
	if err != nil {
		return "", nil, err
	}
	parsed, err := url.Parse(normalized)
	if err != nil {
		return "", nil, fmt.Errorf("parse normalized url: %w", err)
	}
	return normalized, parsed, nil
}

func sameHost(a, b *url.URL) bool {
	if a == nil || b == nil {
		return false
	}
	return strings.EqualFold(a.Hostname(), b.Hostname())
}
