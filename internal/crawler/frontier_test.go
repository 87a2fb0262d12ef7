package crawler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrontierIsFIFO(t *testing.T) {
	t.Parallel()

	q := newFrontier()
	q.Push("https://example.com/", 0)
	q.Push("https://example.com/a", 1)
	q.Push("https://example.com/b", 1)
	require.Equal(t, 3, q.Len())

	first, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, "https://example.com/", first.url)
	require.Equal(t, 0, first.depth)

	second, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, "https://example.com/a", second.url)

	third, ok := q.Pop()
	require.True(t, ok)
	require.Equal(t, "https://example.com/b", third.url)

	_, ok = q.Pop()
	require.False(t, ok)
	require.Equal(t, 0, q.Len())
}

func TestFrontierCompaction(t *testing.T) {
	t.Parallel()

	q := newFrontier()
	for i := 0; i < 500; i++ {
		q.Push(fmt.Sprintf("https://example.com/%d", i), 1)
	}
	for i := 0; i < 500; i++ {
		entry, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, fmt.Sprintf("https://example.com/%d", i), entry.url, "order must survive compaction")
	}
	require.Equal(t, 0, q.Len())
}

func TestVisitTracker(t *testing.T) {
	t.Parallel()

	tracker := newVisitTracker()
	require.True(t, tracker.MarkIfNew("https://example.org/first"))
	require.False(t, tracker.MarkIfNew("https://example.org/first"))
	require.True(t, tracker.MarkIfNew("https://example.org/second"))
	require.False(t, tracker.MarkIfNew(""), "empty URL is never new")
	require.Equal(t, 2, tracker.Len())
}
