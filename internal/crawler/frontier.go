package crawler

// frontierEntry is a discovered URL awaiting fetch.
type frontierEntry struct {
	url   string
	depth int
}

// frontier is a FIFO queue of frontierEntry values. Breadth-first order
// keeps shallow pages ahead of deep ones when the page budget truncates
// the crawl.
type frontier struct {
	entries []frontierEntry
	head    int
}

func newFrontier() *frontier {
	return &frontier{}
}

func (f *frontier) Push(url string, depth int) {
	f.entries = append(f.entries, frontierEntry{url: url, depth: depth})
}

func (f *frontier) Pop() (frontierEntry, bool) {
	if f.head >= len(f.entries) {
		return frontierEntry{}, false
	}
	entry := f.entries[f.head]
	f.head++
	// Reclaim consumed prefix once it dominates the backing slice.
	if f.head > 64 && f.head*2 >= len(f.entries) {
		f.entries = append([]frontierEntry(nil), f.entries[f.head:]...)
		f.head = 0
	}
	return entry, true
}

func (f *frontier) Len() int {
	return len(f.entries) - f.head
}

// visitTracker records every URL fetched or enqueued this session. The set
// grows monotonically; the engine is the single writer.
type visitTracker struct {
	seen map[string]struct{}
}

func newVisitTracker() *visitTracker {
	return &visitTracker{seen: make(map[string]struct{})}
}

// MarkIfNew stores the URL if it has not been seen before and returns true.
func (t *visitTracker) MarkIfNew(url string) bool {
	if url == "" {
		return false
	}
	if _, ok := t.seen[url]; ok {
		return false
	}
	t.seen[url] = struct{}{}
	return true
}

func (t *visitTracker) Len() int {
	return len(t.seen)
}
