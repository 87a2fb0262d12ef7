// Package enrich derives retrieval-oriented metadata from extracted page
// content. Every function here is pure and deterministic: identical input
// yields identical metadata, and degenerate input yields zeroed but valid
// metadata rather than an error.
package enrich

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/kmakumb/AISiteScraper/internal/extract"
)

// Metadata holds the derived signals for one document.
type Metadata struct {
	Language           string `json:"language"`
	ContentType        string `json:"content_type"`
	WordCount          int    `json:"word_count"`
	CharCount          int    `json:"char_count"`
	ReadingTimeMinutes int    `json:"reading_time_minutes"`
	HasCode            bool   `json:"has_code"`
	IsSubstantial      bool   `json:"is_substantial"`
	IsLongForm         bool   `json:"is_long_form"`
}

// Quality thresholds.
const (
	substantialWords = 100
	longFormWords    = 1000
	wordsPerMinute   = 200
)

// Enrich computes metadata for extracted content. The URL participates only
// in content-type classification; no external state is consulted.
func Enrich(rawURL string, content extract.ExtractedContent) Metadata {
	body := content.BodyText
	wordCount := len(strings.Fields(body))
	charCount := utf8.RuneCountInString(body)

	return Metadata{
		Language:           detectLanguage(body),
		ContentType:        detectContentType(rawURL, charCount),
		WordCount:          wordCount,
		CharCount:          charCount,
		ReadingTimeMinutes: readingTime(wordCount),
		HasCode:            hasCode(body),
		IsSubstantial:      wordCount >= substantialWords,
		IsLongForm:         wordCount >= longFormWords,
	}
}

// readingTime assumes an average reading speed of 200 words per minute.
// Zero words reads in zero minutes; anything else takes at least one.
func readingTime(wordCount int) int {
	if wordCount == 0 {
		return 0
	}
	minutes := int(math.Ceil(float64(wordCount) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

var codePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)function\s+\w+\s*\(`),
	regexp.MustCompile(`(?i)def\s+\w+\s*\(`),
	regexp.MustCompile(`(?i)class\s+\w+`),
	regexp.MustCompile(`(?i)import\s+\w+`),
	regexp.MustCompile(`<\?php`),
	regexp.MustCompile(`(?i)<script`),
	regexp.MustCompile("```"),
	regexp.MustCompile("`[^`]+`"),
}

// hasCode reports whether the body text carries patterns typical of source
// code or inline code markup.
func hasCode(text string) bool {
	if text == "" {
		return false
	}
	for _, p := range codePatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}
