package crawler

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings for a crawl session. The struct is decoupled
// from Viper so the engine can be configured and tested independently.
type Config struct {
	StartURL      string
	UserAgent     string
	MaxPages      int
	MaxDepth      int
	Delay         time.Duration
	Timeout       time.Duration
	RespectRobots bool
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		StartURL:      v.GetString("scraper.start_url"),
		UserAgent:     v.GetString("scraper.user_agent"),
		MaxPages:      v.GetInt("scraper.max_pages"),
		MaxDepth:      v.GetInt("scraper.max_depth"),
		Delay:         v.GetDuration("scraper.delay"),
		Timeout:       v.GetDuration("scraper.timeout"),
		RespectRobots: v.GetBool("scraper.respect_robots"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for configuration that would make a run meaningless.
// These are the only fatal errors in the system; everything downstream is
// per-page and recoverable.
func (c Config) Validate() error {
	u, err := url.Parse(c.StartURL)
	if err != nil {
		return fmt.Errorf("scraper.start_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scraper.start_url must be absolute http/https, got %q", c.StartURL)
	}
	if u.Host == "" {
		return fmt.Errorf("scraper.start_url must include a host, got %q", c.StartURL)
	}
	if c.UserAgent == "" {
		return fmt.Errorf("scraper.user_agent must be set")
	}
	if c.MaxPages <= 0 {
		return fmt.Errorf("scraper.max_pages must be > 0")
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("scraper.max_depth must be >= 0")
	}
	if c.Delay < 0 {
		return fmt.Errorf("scraper.delay must be >= 0")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("scraper.timeout must be > 0")
	}
	return nil
}
