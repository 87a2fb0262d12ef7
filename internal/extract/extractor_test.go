package extract

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLongArticle(t *testing.T) {
	t.Parallel()

	words := make([]string, 150)
	for i := range words {
		words[i] = fmt.Sprintf("word%d", i)
	}
	html := fmt.Sprintf(
		`<html><head><title>Test Page</title></head><body><p>%s</p></body></html>`,
		strings.Join(words, " "),
	)

	content := NewExtractor(nil).Extract(html, "https://example.com/post")
	require.Equal(t, "Test Page", content.Title)
	require.GreaterOrEqual(t, len(strings.Fields(content.BodyText)), 150)
	require.Contains(t, content.BodyText, "word0")
	require.Contains(t, content.BodyText, "word149")
}

func TestExtractFallbackOnThinContent(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Tiny</title></head><body><p>short text here</p></body></html>`
	content := NewExtractor(nil).Extract(html, "https://example.com/tiny")

	require.Equal(t, MethodFallback, content.Method,
		"content below the primary threshold must come from the fallback chain")
	require.NotEmpty(t, content.BodyText, "a body with text must yield output")
	require.Contains(t, content.BodyText, "short text here")
	require.Equal(t, "Tiny", content.Title)
}

func TestExtractStripsScriptsAndStyles(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Scripted</title><style>.x{color:red}</style></head>
<body><script>var secret = "SCRIPTCONTENT";</script><p>visible words</p></body></html>`
	content := NewExtractor(nil).Extract(html, "https://example.com/s")

	require.NotContains(t, content.BodyText, "SCRIPTCONTENT")
	require.NotContains(t, content.BodyText, "color:red")
	require.Contains(t, content.BodyText, "visible words")
}

func TestExtractBoilerplateRemovedOnBodyPath(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<nav><a href="/">NAVLINK</a></nav>
<div>small main text</div>
<footer>FOOTERTEXT</footer>
</body></html>`
	content := NewExtractor(nil).Extract(html, "https://example.com/x")

	require.Equal(t, MethodFallback, content.Method)
	require.NotContains(t, content.BodyText, "NAVLINK")
	require.NotContains(t, content.BodyText, "FOOTERTEXT")
	require.Contains(t, content.BodyText, "small main text")
}

func TestTitleResolutionOrder(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)

	t.Run("og title when title tag missing", func(t *testing.T) {
		html := `<html><head><meta property="og:title" content="OG Title"></head><body><p>x</p></body></html>`
		content := e.Extract(html, "https://example.com/a")
		require.Equal(t, "OG Title", content.Title)
	})

	t.Run("h1 when title and og missing", func(t *testing.T) {
		html := `<html><body><h1>Heading Title</h1><p>x</p></body></html>`
		content := e.Extract(html, "https://example.com/a")
		require.Equal(t, "Heading Title", content.Title)
	})

	t.Run("url path as last resort", func(t *testing.T) {
		html := `<html><body><p>x</p></body></html>`
		content := e.Extract(html, "https://example.com/docs/setup")
		require.Equal(t, "docs - setup", content.Title)
	})

	t.Run("untitled for root path", func(t *testing.T) {
		html := `<html><body><p>x</p></body></html>`
		content := e.Extract(html, "https://example.com/")
		require.Equal(t, "Untitled", content.Title)
	})
}

func TestExtractNeverPanicsOnGarbage(t *testing.T) {
	t.Parallel()

	e := NewExtractor(nil)
	for _, input := range []string{
		"",
		"<<<>>>",
		"<html><body",
		"plain text, no markup at all",
	} {
		require.NotPanics(t, func() {
			content := e.Extract(input, "https://example.com/x")
			require.NotEmpty(t, content.Method)
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"a   b\t\tc", "a b c"},
		{"para one\n\n\npara two", "para one\npara two"},
		{"  leading and trailing  ", "leading and trailing"},
		{"", ""},
		{"\n \n \n", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, normalizeWhitespace(tc.in))
	}
}

func TestStrategyOrder(t *testing.T) {
	t.Parallel()

	strategies := defaultStrategies()
	require.Len(t, strategies, 3)
	require.Equal(t, "semantic_containers", strategies[0].name)
	require.Equal(t, "content_selectors", strategies[1].name)
	require.Equal(t, "body_without_boilerplate", strategies[2].name)
	require.Zero(t, strategies[2].minChars, "last resort accepts any non-empty text")
}
