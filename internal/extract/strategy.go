package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// strategy is one step of the fallback chain: a named extraction function
// plus the success predicate that decides whether its output wins.
// Strategies run in order; the first acceptable result is used.
type strategy struct {
	name     string
	minChars int
	run      func(doc *goquery.Document) string
}

func (s strategy) accepts(text string) bool {
	return len(text) >= s.minChars && text != ""
}

// boilerplateSelectors match navigation, chrome, and other non-content
// elements removed on the whole-body path.
var boilerplateSelectors = []string{
	"nav", "header", "footer", "aside",
	".nav", ".navigation", ".navbar", ".menu",
	".header", ".footer", ".sidebar",
	".advertisement", ".ad", ".ads",
	".social-share", ".share-buttons",
	".comments", ".comment-section",
	".breadcrumb", ".breadcrumbs",
	`[role="navigation"]`, `[role="banner"]`,
	`[role="contentinfo"]`, `[role="complementary"]`,
}

// contentSelectors are common main-content containers, most specific first.
var contentSelectors = []string{
	".content", ".main-content", ".post-content",
	".entry-content", ".article-content",
	"#content", "#main", "#article",
}

func defaultStrategies() []strategy {
	return []strategy{
		{
			name:     "semantic_containers",
			minChars: 100,
			run:      firstMatchText("main", "article", `[role="main"]`),
		},
		{
			name:     "content_selectors",
			minChars: 100,
			run:      firstMatchText(contentSelectors...),
		},
		{
			// Last resort: whatever text the body holds once boilerplate is
			// gone. No minimum, so any body with text yields output.
			name:     "body_without_boilerplate",
			minChars: 0,
			run:      bodyWithoutBoilerplate,
		},
	}
}

func firstMatchText(selectors ...string) func(doc *goquery.Document) string {
	return func(doc *goquery.Document) string {
		for _, sel := range selectors {
			match := doc.Find(sel).First()
			if match.Length() == 0 {
				continue
			}
			if text := textContent(match); text != "" {
				return text
			}
		}
		return ""
	}
}

func bodyWithoutBoilerplate(doc *goquery.Document) string {
	body := doc.Find("body").First()
	if body.Length() == 0 {
		return ""
	}
	body.Find(strings.Join(boilerplateSelectors, ", ")).Remove()
	return textContent(body)
}
