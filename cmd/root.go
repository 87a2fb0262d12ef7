// Package cmd defines and implements the CLI commands for the aisitescraper
// executable.
package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kmakumb/AISiteScraper/internal/logging"
	"github.com/kmakumb/AISiteScraper/pkg/config"
)

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "aisitescraper",
		Short: "A single-domain scraper that emits AI-ready JSONL documents.",
		Long: `aisitescraper crawls one web domain, extracts the readable main
content from every page, enriches it with derived metadata (language,
content type, quality signals), and appends deduplicated JSONL records
suitable for retrieval and ML pipelines.`,

		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.InitLogger(viper.GetBool("scraper.verbose"))
		},
	}

	cobra.OnInitialize(config.InitConfig)

	cmd.PersistentFlags().Bool("verbose", false, "enable verbose (development) logging")
	if err := viper.BindPFlag("scraper.verbose", cmd.PersistentFlags().Lookup("verbose")); err != nil {
		logging.L.Fatal("Failed to bind verbose flag", zap.Error(err))
	}

	cmd.AddCommand(newCrawlCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		logging.L.Fatal("Command execution failed", zap.Error(err))
	}
}
