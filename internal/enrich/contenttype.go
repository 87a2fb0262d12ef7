package enrich

import (
	"net/url"
	"strings"
)

// Content type values emitted in document metadata.
const (
	TypeDocPage     = "doc_page"
	TypeArticle     = "article"
	TypeProductPage = "product_page"
	TypeListing     = "listing"
	TypeHomepage    = "homepage"
	TypePage        = "page"
)

// contentTypeRule classifies a page from its URL path and content length.
// Rules run in table order; the first match wins, which makes the tie-break
// precedence explicit and testable per rule.
type contentTypeRule struct {
	name  string
	match func(path string, query url.Values, charCount int) bool
}

var contentTypeRules = []contentTypeRule{
	{
		name: TypeDocPage,
		match: func(path string, _ url.Values, _ int) bool {
			return containsAny(path, "/docs/", "/documentation/", "/guide/", "/tutorial/")
		},
	},
	{
		name: TypeArticle,
		match: func(path string, _ url.Values, _ int) bool {
			return containsAny(path, "/blog/", "/post/", "/article/", "/news/")
		},
	},
	{
		name: TypeProductPage,
		match: func(path string, _ url.Values, _ int) bool {
			return containsAny(path, "/product/", "/shop/", "/item/", "/p/")
		},
	},
	{
		name: TypeListing,
		match: func(path string, query url.Values, _ int) bool {
			return containsAny(path, "/tag/", "/tags/", "/category/", "/page/") || query.Has("page")
		},
	},
	{
		name: TypeHomepage,
		match: func(path string, _ url.Values, _ int) bool {
			return path == "/" || path == ""
		},
	},
	{
		// Content-rich pages without a path signal read as articles.
		name: TypeArticle,
		match: func(_ string, _ url.Values, charCount int) bool {
			return charCount > 500
		},
	},
}

// detectContentType classifies the page, falling back to "page" when no
// rule matches.
func detectContentType(rawURL string, charCount int) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		u = &url.URL{}
	}
	path := strings.ToLower(u.Path)
	query := u.Query()
	for _, rule := range contentTypeRules {
		if rule.match(path, query, charCount) {
			return rule.name
		}
	}
	return TypePage
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
