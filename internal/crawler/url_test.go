package crawler

import (
	"net/url"
	"testing"
)

func TestNormalizeURLIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"https://Example.COM:443/Path/index.html?b=2&a=1#frag",
		"http://example.com:80/",
		"https://example.com/a/b/",
		"https://example.com",
	}
	for _, raw := range inputs {
		once, err := NormalizeURL(raw)
		if err != nil {
			t.Fatalf("NormalizeURL(%q) error = %v", raw, err)
		}
		twice, err := NormalizeURL(once)
		if err != nil {
			t.Fatalf("NormalizeURL(%q) error = %v", once, err)
		}
		if once != twice {
			t.Fatalf("normalization not idempotent: %q -> %q -> %q", raw, once, twice)
		}
	}
}

func TestNormalizeURLEquivalentForms(t *testing.T) {
	t.Parallel()

	groups := [][]string{
		{
			"https://example.com/",
			"HTTPS://EXAMPLE.COM",
			"https://example.com:443/",
			"https://example.com/index.html",
		},
		{
			"https://example.com/a",
			"https://example.com/a/",
			"https://example.com/a/index.html",
			"https://example.com/a#section",
		},
		{
			"https://example.com/q?b=2&a=1",
			"https://example.com/q?a=1&b=2",
		},
	}
	for _, group := range groups {
		want, err := NormalizeURL(group[0])
		if err != nil {
			t.Fatalf("NormalizeURL(%q) error = %v", group[0], err)
		}
		for _, raw := range group[1:] {
			got, err := NormalizeURL(raw)
			if err != nil {
				t.Fatalf("NormalizeURL(%q) error = %v", raw, err)
			}
			if got != want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", raw, got, want)
			}
		}
	}
}

func TestNormalizeURLDistinctPagesStayDistinct(t *testing.T) {
	t.Parallel()

	a, err := NormalizeURL("https://example.com/a")
	if err != nil {
		t.Fatalf("NormalizeURL error = %v", err)
	}
	b, err := NormalizeURL("https://example.com/b")
	if err != nil {
		t.Fatalf("NormalizeURL error = %v", err)
	}
	if a == b {
		t.Fatalf("distinct paths normalized identically: %q", a)
	}
}

func TestResolveLink(t *testing.T) {
	t.Parallel()

	base, err := url.Parse("https://example.com/dir/page")
	if err != nil {
		t.Fatalf("parse base: %v", err)
	}

	t.Run("relative path", func(t *testing.T) {
		normalized, parsed, err := resolveLink(base, "../other")
		if err != nil {
			t.Fatalf("resolveLink error = %v", err)
		}
		if normalized != "https://example.com/other" {
			t.Fatalf("resolveLink = %q", normalized)
		}
		if parsed.Hostname() != "example.com" {
			t.Fatalf("hostname = %q", parsed.Hostname())
		}
	})

	t.Run("non-http schemes rejected", func(t *testing.T) {
		for _, href := range []string{"mailto:x@example.com", "javascript:void(0)", "tel:+123"} {
			if _, _, err := resolveLink(base, href); err == nil {
				t.Errorf("expected error for %q", href)
			}
		}
	})

	t.Run("empty href rejected", func(t *testing.T) {
		if _, _, err := resolveLink(base, "  "); err == nil {
			t.Error("expected error for blank href")
		}
	})
}
