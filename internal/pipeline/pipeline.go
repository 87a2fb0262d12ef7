// Package pipeline wires the crawl, extract, and enrich stages together and
// owns the output ledger that makes re-runs idempotent.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kmakumb/AISiteScraper/internal/crawler"
	"github.com/kmakumb/AISiteScraper/internal/enrich"
	"github.com/kmakumb/AISiteScraper/internal/extract"
)

// minDocumentChars is the minimum extracted body length worth persisting.
const minDocumentChars = 50

// Hasher computes the deterministic doc ID for a normalized URL.
type Hasher interface {
	HashString(s string) string
}

// Config holds pipeline settings on top of the crawl configuration.
type Config struct {
	Crawler    crawler.Config
	OutputPath string
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	crawlerCfg, err := crawler.LoadConfig(v)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		Crawler:    crawlerCfg,
		OutputPath: v.GetString("scraper.output"),
	}
	if cfg.OutputPath == "" {
		return Config{}, fmt.Errorf("scraper.output must be set")
	}
	return cfg, nil
}

// Summary reports what a run did.
type Summary struct {
	RunID            string `json:"run_id"`
	PagesAttempted   int    `json:"pages_attempted"`
	PagesSucceeded   int    `json:"pages_succeeded"`
	PagesFailed      int    `json:"pages_failed"`
	SkippedByFilter  int    `json:"skipped_by_filter"`
	SkippedByLedger  int    `json:"skipped_by_ledger"`
	DocumentsWritten int    `json:"documents_written"`
	DocumentsSkipped int    `json:"documents_skipped"`
	TotalWordCount   int    `json:"total_word_count"`
	OutputPath       string `json:"output_path"`
}

// Pipeline orchestrates one crawl session end to end.
type Pipeline struct {
	cfg       Config
	fetcher   crawler.Fetcher
	robots    crawler.RobotsPolicy
	retry     crawler.RetryPolicy
	extractor *extract.Extractor
	hasher    Hasher
	clock     crawler.Clock
	logger    *zap.Logger

	// Run-scoped state; reset by Run. Touched only by the single crawl
	// control flow.
	ledger           *Ledger
	sink             *JSONLSink
	documentsWritten int
	documentsSkipped int
	totalWords       int
}

// New builds a Pipeline. robots, retry, and clock may be nil; the engine
// substitutes defaults.
func New(
	cfg Config,
	fetcher crawler.Fetcher,
	robots crawler.RobotsPolicy,
	retry crawler.RetryPolicy,
	extractor *extract.Extractor,
	hasher Hasher,
	clock crawler.Clock,
	logger *zap.Logger,
) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:       cfg,
		fetcher:   fetcher,
		robots:    robots,
		retry:     retry,
		extractor: extractor,
		hasher:    hasher,
		clock:     clock,
		logger:    logger,
	}
}

// AllowFetch implements crawler.AdmissionPolicy: a URL whose doc ID is
// already in the ledger is never re-fetched.
func (p *Pipeline) AllowFetch(normalizedURL string) bool {
	if p.ledger == nil {
		return true
	}
	if p.ledger.Contains(p.hasher.HashString(normalizedURL)) {
		TotalLedgerSkips.Inc()
		return false
	}
	return true
}

// Run executes the full crawl-extract-enrich-write chain and returns the
// run summary. Per-page errors are logged and skipped; only configuration
// problems and output write failures abort the run.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	runID := uuid.NewString()
	logger := p.logger.With(zap.String("run_id", runID))

	summary := Summary{RunID: runID, OutputPath: p.cfg.OutputPath}

	ledger, err := LoadLedger(p.cfg.OutputPath, logger)
	if err != nil {
		return summary, fmt.Errorf("load ledger: %w", err)
	}
	if ledger.Len() > 0 {
		logger.Info("Loaded existing output ledger", zap.Int("documents", ledger.Len()))
	}

	sink, err := NewJSONLSink(p.cfg.OutputPath, logger)
	if err != nil {
		return summary, fmt.Errorf("open sink: %w", err)
	}
	defer func() {
		if cerr := sink.Close(); cerr != nil {
			logger.Warn("Failed to close sink", zap.Error(cerr))
		}
	}()

	p.ledger = ledger
	p.sink = sink
	p.documentsWritten = 0
	p.documentsSkipped = 0
	p.totalWords = 0

	engine := crawler.NewEngine(p.cfg.Crawler, p.fetcher, p.robots, p.retry, p, p.clock, nil, logger)
	stats, err := engine.Crawl(ctx, p.handle)

	summary.PagesAttempted = stats.Attempted
	summary.PagesSucceeded = stats.Succeeded
	summary.PagesFailed = stats.Failed
	summary.SkippedByFilter = stats.SkippedByRobots + stats.SkippedNonHTML + stats.LinksFiltered
	summary.SkippedByLedger = stats.SkippedByGate
	summary.DocumentsWritten = p.documentsWritten
	summary.DocumentsSkipped = p.documentsSkipped
	summary.TotalWordCount = p.totalWords

	if err != nil {
		return summary, err
	}
	logger.Info("Pipeline complete",
		zap.Int("pages_attempted", summary.PagesAttempted),
		zap.Int("documents_written", summary.DocumentsWritten),
		zap.Int("skipped_by_ledger", summary.SkippedByLedger),
		zap.String("output", summary.OutputPath),
	)
	return summary, nil
}

// handle consumes one FetchResult from the engine. A non-nil return aborts
// the crawl, so only output write failures propagate.
func (p *Pipeline) handle(ctx context.Context, result crawler.FetchResult) error {
	if !result.Success() {
		return nil
	}

	doc, ok := p.process(result)
	if !ok {
		p.documentsSkipped++
		TotalDocumentsSkipped.Inc()
		return nil
	}

	// The admission gate already filters ledger hits before fetch; this
	// guards the write path itself.
	if p.ledger.Contains(doc.DocID) {
		p.logger.Debug("Document already recorded", zap.String("doc_id", doc.DocID))
		return nil
	}

	if err := p.sink.Append(ctx, doc); err != nil {
		return fmt.Errorf("append document: %w", err)
	}
	p.ledger.Add(doc.DocID)
	p.documentsWritten++
	p.totalWords += doc.Metadata.WordCount
	TotalDocumentsWritten.Inc()
	return nil
}

// process turns a fetched page into a Document. It is the per-document
// failure boundary: a panic in extraction or enrichment skips the page
// instead of aborting the run.
func (p *Pipeline) process(result crawler.FetchResult) (doc Document, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("Recovered from page processing failure",
				zap.String("url", result.URL),
				zap.Any("panic", r),
			)
			doc = Document{}
			ok = false
		}
	}()

	content := p.extractor.Extract(string(result.Body), result.URL)
	if len(strings.TrimSpace(content.BodyText)) < minDocumentChars {
		p.logger.Debug("Skipping page with insufficient content",
			zap.String("url", result.URL),
			zap.String("method", string(content.Method)),
		)
		return Document{}, false
	}

	meta := enrich.Enrich(result.URL, content)
	doc = Document{
		DocID:    p.hasher.HashString(result.URL),
		URL:      result.URL,
		Title:    content.Title,
		BodyText: content.BodyText,
		Metadata: Metadata{
			FetchedAt: result.FetchedAt,
			Metadata:  meta,
		},
	}
	p.logger.Debug("Processed page",
		zap.String("url", result.URL),
		zap.String("method", string(content.Method)),
		zap.Int("words", meta.WordCount),
	)
	return doc, true
}
