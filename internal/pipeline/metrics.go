package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalDocumentsWritten counts documents appended to the output file.
	TotalDocumentsWritten = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_documents_written_total",
		Help: "The total number of documents appended to the output file.",
	})
	// TotalDocumentsSkipped counts pages dropped for insufficient content
	// or a processing failure.
	TotalDocumentsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_documents_skipped_total",
		Help: "The total number of fetched pages that produced no document.",
	})
	// TotalLedgerSkips counts URLs skipped because their doc ID was already
	// present in the output ledger.
	TotalLedgerSkips = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_ledger_skips_total",
		Help: "The total number of URLs skipped as already recorded.",
	})
)
