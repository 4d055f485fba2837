// Package metrics provides Prometheus metrics for headliner.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "headliner"

var (
	// TimestampParseFailures counts articles whose publication time could
	// not be parsed and so received no recency bonus.
	TimestampParseFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "timestamp_parse_failures_total",
			Help:      "Articles scored without a recency bonus because published_at was unparseable",
		},
	)

	// MalformedRecords counts raw records skipped during normalization.
	MalformedRecords = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "malformed_records_total",
			Help:      "Raw news records skipped because they had the wrong shape",
		},
	)

	// RewriteFailures counts headline rewrites that fell back to the
	// existing title.
	RewriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rewrite_failures_total",
			Help:      "Headline rewrites that failed and kept the existing title",
		},
	)

	// FetchFailures counts failed fetches per source.
	FetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_failures_total",
			Help:      "Failed news source fetches",
		},
		[]string{"source"},
	)

	// BriefingsTotal counts pipeline runs by outcome.
	BriefingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "briefings_total",
			Help:      "Briefing pipeline runs",
		},
		[]string{"status"},
	)

	// PipelineDuration measures a full briefing run.
	PipelineDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_duration_seconds",
			Help:      "Duration of briefing pipeline runs in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	// HTTPRequests counts API requests by method, route and status code.
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served",
		},
		[]string{"method", "route", "status"},
	)

	// HTTPDuration measures API request latency.
	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// RecordHTTP records one served request.
func RecordHTTP(method, route string, status int, seconds float64) {
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordBriefing records a finished pipeline run.
func RecordBriefing(status string, seconds float64) {
	BriefingsTotal.WithLabelValues(status).Inc()
	PipelineDuration.Observe(seconds)
}

// RecordQuality records per-item degradations observed during a run.
func RecordQuality(skipped, parseFailures, rewriteFailures int) {
	MalformedRecords.Add(float64(skipped))
	TimestampParseFailures.Add(float64(parseFailures))
	RewriteFailures.Add(float64(rewriteFailures))
}

// RecordFetchFailure records a failed fetch from source.
func RecordFetchFailure(source string) {
	FetchFailures.WithLabelValues(source).Inc()
}
