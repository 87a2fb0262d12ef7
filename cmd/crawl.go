package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kmakumb/AISiteScraper/internal/api"
	"github.com/kmakumb/AISiteScraper/internal/clock/system"
	"github.com/kmakumb/AISiteScraper/internal/crawler"
	"github.com/kmakumb/AISiteScraper/internal/extract"
	"github.com/kmakumb/AISiteScraper/internal/hash/sha256"
	"github.com/kmakumb/AISiteScraper/internal/logging"
	"github.com/kmakumb/AISiteScraper/internal/pipeline"
)

// newCrawlCmd creates and configures the 'crawl' subcommand, which runs the
// full crawl-extract-enrich-write pipeline for one domain.
func newCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawls a domain and writes enriched JSONL documents",
		Long: `Crawls the configured start URL breadth-first within its domain,
honoring robots.txt and the configured depth, page, and politeness limits.
Each fetched page is cleaned, enriched, and appended to the JSONL output;
URLs already present in the output are never re-fetched.`,

		RunE: runCrawlCommand,
	}

	flags := cmd.Flags()
	flags.String("start-url", "", "absolute http/https URL to crawl (required)")
	flags.Int("max-pages", 100, "maximum number of fetch attempts")
	flags.Int("max-depth", 5, "maximum link depth from the start URL")
	flags.Duration("delay", time.Second, "delay between consecutive fetches")
	flags.Duration("timeout", 10*time.Second, "per-request timeout")
	flags.String("output", "output.jsonl", "output file path (JSONL)")
	flags.String("metrics-addr", "", "address for the /metrics endpoint (disabled when empty)")

	for flag, key := range map[string]string{
		"start-url":    "scraper.start_url",
		"max-pages":    "scraper.max_pages",
		"max-depth":    "scraper.max_depth",
		"delay":        "scraper.delay",
		"timeout":      "scraper.timeout",
		"output":       "scraper.output",
		"metrics-addr": "scraper.metrics_addr",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(flag)); err != nil {
			logging.L.Fatal("Failed to bind flag", zap.String("flag", flag), zap.Error(err))
		}
	}

	return cmd
}

func runCrawlCommand(cmd *cobra.Command, _ []string) error {
	logger := logging.L

	cfg, err := pipeline.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if addr := viper.GetString("scraper.metrics_addr"); addr != "" {
		metricsSrv := api.NewServer(addr, logger)
		metricsSrv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if serr := metricsSrv.Shutdown(shutdownCtx); serr != nil {
				logger.Warn("Failed to shut down metrics server", zap.Error(serr))
			}
		}()
	}

	p, err := buildPipeline(cfg, logger)
	if err != nil {
		return err
	}

	summary, err := p.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run pipeline: %w", err)
	}

	printSummary(cmd, summary)
	return nil
}

func buildPipeline(cfg pipeline.Config, logger *zap.Logger) (*pipeline.Pipeline, error) {
	fetcher, err := crawler.NewCollyFetcher(cfg.Crawler, logger)
	if err != nil {
		return nil, fmt.Errorf("init fetcher: %w", err)
	}
	robots := crawler.NewRobotsEnforcer(
		cfg.Crawler.RespectRobots,
		cfg.Crawler.UserAgent,
		cfg.Crawler.Timeout,
		logger,
	)
	return pipeline.New(
		cfg,
		fetcher,
		robots,
		crawler.NewExponentialRetryPolicy(),
		extract.NewExtractor(logger),
		sha256.New(),
		system.New(),
		logger,
	), nil
}

func printSummary(cmd *cobra.Command, s pipeline.Summary) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Crawl summary")
	fmt.Fprintf(out, "  run id:             %s\n", s.RunID)
	fmt.Fprintf(out, "  pages attempted:    %d\n", s.PagesAttempted)
	fmt.Fprintf(out, "  pages succeeded:    %d\n", s.PagesSucceeded)
	fmt.Fprintf(out, "  pages failed:       %d\n", s.PagesFailed)
	fmt.Fprintf(out, "  skipped by filter:  %d\n", s.SkippedByFilter)
	fmt.Fprintf(out, "  skipped by ledger:  %d\n", s.SkippedByLedger)
	fmt.Fprintf(out, "  documents written:  %d\n", s.DocumentsWritten)
	fmt.Fprintf(out, "  documents skipped:  %d\n", s.DocumentsSkipped)
	fmt.Fprintf(out, "  total words:        %d\n", s.TotalWordCount)
	fmt.Fprintf(out, "  output:             %s\n", s.OutputPath)
}
