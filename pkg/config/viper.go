// Package config is responsible for initializing the application's
// configuration. It uses the Viper library to read settings from a config
// file, environment variables, and command-line flags.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kmakumb/AISiteScraper/internal/logging"
)

// InitConfig initializes the application's configuration using Viper.
// It sets up defaults, configuration search paths, and environment variable
// binding. Designed to be called once at application startup.
func InitConfig() {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/aisitescraper/")
	viper.AddConfigPath("$HOME/.aisitescraper")

	const defaultUA = "AISiteScraper/1.0 (+https://github.com/kmakumb/AISiteScraper)"
	viper.SetDefault("scraper.user_agent", defaultUA)
	viper.SetDefault("scraper.max_pages", 100)
	viper.SetDefault("scraper.max_depth", 5)
	viper.SetDefault("scraper.delay", "1s")
	viper.SetDefault("scraper.timeout", "10s")
	viper.SetDefault("scraper.output", "output.jsonl")
	viper.SetDefault("scraper.respect_robots", true)
	viper.SetDefault("scraper.metrics_addr", "")
	viper.SetDefault("scraper.verbose", false)

	// e.g. SCRAPER_SCRAPER_MAX_PAGES=50
	viper.SetEnvPrefix("SCRAPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logging.L.Debug("Config file not found; using defaults and environment variables.")
		} else {
			logging.L.Error("Error reading config file", zap.Error(err))
		}
	} else {
		logging.L.Info("Using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
