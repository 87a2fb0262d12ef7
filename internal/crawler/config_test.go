package crawler

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		StartURL:      "https://example.com/",
		UserAgent:     "test-agent",
		MaxPages:      100,
		MaxDepth:      5,
		Delay:         time.Second,
		Timeout:       10 * time.Second,
		RespectRobots: true,
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validConfig().Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative start url", func(c *Config) { c.StartURL = "/just/a/path" }},
		{"ftp scheme", func(c *Config) { c.StartURL = "ftp://example.com/" }},
		{"empty start url", func(c *Config) { c.StartURL = "" }},
		{"missing user agent", func(c *Config) { c.UserAgent = "" }},
		{"zero max pages", func(c *Config) { c.MaxPages = 0 }},
		{"negative max depth", func(c *Config) { c.MaxDepth = -1 }},
		{"negative delay", func(c *Config) { c.Delay = -time.Second }},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestLoadConfigFromViper(t *testing.T) {
	t.Parallel()

	v := viper.New()
	v.Set("scraper.start_url", "https://example.com/")
	v.Set("scraper.user_agent", "test-agent")
	v.Set("scraper.max_pages", 25)
	v.Set("scraper.max_depth", 3)
	v.Set("scraper.delay", "500ms")
	v.Set("scraper.timeout", "5s")
	v.Set("scraper.respect_robots", true)

	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	require.Equal(t, "https://example.com/", cfg.StartURL)
	require.Equal(t, 25, cfg.MaxPages)
	require.Equal(t, 3, cfg.MaxDepth)
	require.Equal(t, 500*time.Millisecond, cfg.Delay)
	require.Equal(t, 5*time.Second, cfg.Timeout)
	require.True(t, cfg.RespectRobots)
}
