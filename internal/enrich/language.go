package enrich

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// languageRule scores text by the frequency of stop-words characteristic of
// one language. Rules are evaluated in table order; an earlier language wins
// ties, so the precedence is explicit rather than map-iteration luck.
//
// Only ASCII stop-words are listed: RE2 word boundaries are ASCII-defined,
// so accented forms (était, für) would silently never match.
type languageRule struct {
	code     string
	patterns []*regexp.Regexp
}

var languageRules = []languageRule{
	{
		code: "en",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(the|and|or|but|in|on|at|to|for|of|with|by)\b`),
			regexp.MustCompile(`\b(is|are|was|were|been|being|have|has|had)\b`),
		},
	},
	{
		code: "es",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(el|la|los|las|un|una|con|por|para|de|en)\b`),
			regexp.MustCompile(`\b(es|son|era|eran|ser|estar)\b`),
		},
	},
	{
		code: "fr",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(le|la|les|un|une|avec|pour|de|dans|sur)\b`),
			regexp.MustCompile(`\b(est|sont|etre|avoir|ce|cette|vous|nous)\b`),
		},
	},
	{
		code: "de",
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`\b(der|die|das|ein|eine|mit|von|in|auf|und|zu)\b`),
			regexp.MustCompile(`\b(ist|sind|war|waren|sein|haben|nicht|auch)\b`),
		},
	},
}

// Texts shorter than this carry too little signal to classify.
const minLanguageSampleChars = 50

// A language must score strictly more than this many stop-word hits.
const minLanguageScore = 5

const defaultLanguage = "en"

// detectLanguage guesses the dominant language of text from the fixed set
// {en, es, fr, de}, defaulting to "en" when the signal is weak or ambiguous.
func detectLanguage(text string) string {
	if utf8.RuneCountInString(text) < minLanguageSampleChars {
		return defaultLanguage
	}
	lower := strings.ToLower(text)

	best := defaultLanguage
	bestScore := 0
	for _, rule := range languageRules {
		score := 0
		for _, p := range rule.patterns {
			score += len(p.FindAllStringIndex(lower, -1))
		}
		if score > bestScore {
			best = rule.code
			bestScore = score
		}
	}
	if bestScore > minLanguageScore {
		return best
	}
	return defaultLanguage
}
