// Package extract turns raw HTML into a title and cleaned body text.
//
// The primary method is the go-readability algorithm; when it errors or
// yields too little text, an ordered chain of goquery-based fallback
// strategies takes over. Extract is total: malformed input degrades to an
// empty body, never a panic or an error.
package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// Method records which extraction path produced the content.
type Method string

// Extraction methods.
const (
	MethodPrimary  Method = "primary"
	MethodFallback Method = "fallback"
)

// ExtractedContent is the cleaned output for a single page.
type ExtractedContent struct {
	Title    string
	BodyText string
	Method   Method
}

// minPrimaryChars is the threshold below which the readability result is
// considered empty and the fallback chain runs instead.
const minPrimaryChars = 50

// Extractor extracts main content from HTML pages.
type Extractor struct {
	strategies []strategy
	logger     *zap.Logger
}

// NewExtractor builds an Extractor with the default fallback chain.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{
		strategies: defaultStrategies(),
		logger:     logger,
	}
}

// Extract produces best-effort content for the page. It never fails: when
// nothing can be recovered the body is empty and the title falls back to
// the URL path.
func (e *Extractor) Extract(rawHTML string, rawURL string) ExtractedContent {
	if title, body, ok := e.extractPrimary(rawHTML, rawURL); ok {
		return ExtractedContent{Title: title, BodyText: body, Method: MethodPrimary}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		e.logger.Debug("HTML parse failed; returning empty content",
			zap.String("url", rawURL), zap.Error(err))
		return ExtractedContent{Title: titleFromURL(rawURL), Method: MethodFallback}
	}

	title := resolveTitle(doc, rawURL)
	stripNonContent(doc.Selection)

	var body string
	for _, s := range e.strategies {
		text := s.run(doc)
		if s.accepts(text) {
			body = text
			break
		}
	}

	return ExtractedContent{Title: title, BodyText: body, Method: MethodFallback}
}

func (e *Extractor) extractPrimary(rawHTML, rawURL string) (title, body string, ok bool) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		parsedURL = &url.URL{}
	}
	parser := readability.NewParser()
	article, err := parser.Parse(strings.NewReader(rawHTML), parsedURL)
	if err != nil {
		e.logger.Debug("Readability extraction failed",
			zap.String("url", rawURL), zap.Error(err))
		return "", "", false
	}
	body = normalizeWhitespace(article.TextContent)
	if len(body) < minPrimaryChars {
		return "", "", false
	}
	title = strings.TrimSpace(article.Title)
	if title == "" {
		title = titleFromURL(rawURL)
	}
	return title, body, true
}

// resolveTitle walks the title fallback chain:
// <title> tag, og:title meta, first <h1>, then the URL path.
func resolveTitle(doc *goquery.Document, rawURL string) string {
	if t := strings.TrimSpace(doc.Find("title").First().Text()); t != "" {
		return t
	}
	if og, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if t := strings.TrimSpace(og); t != "" {
			return t
		}
	}
	if t := strings.TrimSpace(doc.Find("h1").First().Text()); t != "" {
		return normalizeWhitespace(t)
	}
	return titleFromURL(rawURL)
}

func titleFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "Untitled"
	}
	p := strings.Trim(u.Path, "/")
	if p == "" {
		return "Untitled"
	}
	return strings.ReplaceAll(p, "/", " - ")
}

// stripNonContent removes elements that never carry readable content.
func stripNonContent(sel *goquery.Selection) {
	sel.Find("script, style, noscript").Remove()
}

// textContent walks the node tree and joins text nodes with spaces, so
// adjacent block elements do not fuse into a single word.
func textContent(sel *goquery.Selection) string {
	var b strings.Builder
	for _, node := range sel.Nodes {
		collectText(node, &b)
	}
	return normalizeWhitespace(b.String())
}

func collectText(n *html.Node, b *strings.Builder) {
	if n == nil {
		return
	}
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	case html.CommentNode:
		return
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "noscript":
			return
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// normalizeWhitespace collapses runs of spaces and tabs to single spaces and
// runs of blank lines to single newlines, preserving paragraph boundaries.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
