package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upstream service names used as metric and span labels.
const (
	ServiceBluesky   = "bluesky"
	ServiceAnthropic = "anthropic"
	ServiceX         = "x"
)

var (
	// UpstreamRequests counts calls to external services by outcome.
	UpstreamRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trendsmith_upstream_requests_total",
		Help: "Total calls to external services by service, operation and outcome",
	}, []string{"service", "operation", "outcome"})

	// UpstreamLatency records external call latency.
	UpstreamLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trendsmith_upstream_latency_seconds",
		Help:    "External service call latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"service", "operation"})

	// TrendTransitions counts trend status changes by target status.
	TrendTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "trendsmith_trend_transitions_total",
		Help: "Total trend status transitions by target status",
	}, []string{"status"})

	// ScrapedPostsStored counts scraped posts persisted across all scrapes.
	ScrapedPostsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendsmith_scraped_posts_stored_total",
		Help: "Total scraped posts persisted",
	})

	// DraftsComposed counts draft posts created by composition.
	DraftsComposed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendsmith_drafts_composed_total",
		Help: "Total draft posts created",
	})

	// PostsPublished counts posts published to X.
	PostsPublished = promauto.NewCounter(prometheus.CounterOpts{
		Name: "trendsmith_posts_published_total",
		Help: "Total posts published",
	})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "trendsmith_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})
)

// TrackUpstream returns a function that records the outcome and latency of an
// external call when called with its error (e.g. defer with a named result).
func TrackUpstream(service, operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		UpstreamRequests.WithLabelValues(service, operation, outcome).Inc()
		UpstreamLatency.WithLabelValues(service, operation).Observe(time.Since(start).Seconds())
	}
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		DatabaseQueryLatency.WithLabelValues(operation, table).Observe(time.Since(start).Seconds())
	}
}
