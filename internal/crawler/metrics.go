package crawler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TotalRequests tracks the number of fetch attempts dispatched by the engine.
	TotalRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_fetch_attempts_total",
		Help: "The total number of fetch attempts, success or failure.",
	})
	// TotalRequestErrors tracks the number of attempts that resulted in an error.
	TotalRequestErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_fetch_errors_total",
		Help: "The total number of failed fetch attempts.",
	})
	// TotalPagesFetched tracks successfully fetched HTML pages.
	TotalPagesFetched = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_pages_fetched_total",
		Help: "The total number of pages fetched successfully.",
	})
	// TotalLinksFiltered tracks links rejected by the content-type filter.
	TotalLinksFiltered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_links_filtered_total",
		Help: "The total number of discovered links rejected before enqueueing.",
	})
	// TotalRobotsDenied tracks URLs skipped because robots.txt disallowed them.
	TotalRobotsDenied = promauto.NewCounter(prometheus.CounterOpts{
		Name: "scraper_robots_denied_total",
		Help: "The total number of URLs denied by robots.txt.",
	})
)
