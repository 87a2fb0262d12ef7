// Package crawler implements the single-domain crawl engine: frontier
// management, URL normalization, politeness, robots enforcement, and the
// colly-backed fetcher.
package crawler
