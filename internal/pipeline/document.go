package pipeline

import (
	"time"

	"github.com/kmakumb/AISiteScraper/internal/enrich"
)

// Metadata is the per-document metadata block written to output. It embeds
// the enricher's derived signals plus the fetch capture time.
type Metadata struct {
	FetchedAt time.Time `json:"fetched_at"`
	enrich.Metadata
}

// Document is one output record. Immutable once created; DocID is a stable
// hash of the normalized URL, so the same page hashes identically across
// runs.
type Document struct {
	DocID    string   `json:"doc_id"`
	URL      string   `json:"url"`
	Title    string   `json:"title"`
	BodyText string   `json:"body_text"`
	Metadata Metadata `json:"metadata"`
}
