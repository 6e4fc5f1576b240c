package observability

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchagent_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "searchagent_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Envelope metrics
	envelopesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "searchagent_envelopes_total",
			Help: "Total number of envelopes processed",
		},
	)

	envelopeEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchagent_envelope_events_total",
			Help: "Total number of envelope events, by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	envelopeDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "searchagent_envelope_duration_seconds",
			Help:    "Envelope processing duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Search provider metrics
	searchCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "searchagent_search_calls_total",
			Help: "Total number of search provider calls",
		},
		[]string{"status"},
	)

	searchCallDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "searchagent_search_call_duration_seconds",
			Help:    "Search provider call duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	rateLimitWaitDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "searchagent_rate_limit_wait_seconds",
			Help:    "Time spent waiting on the provider rate limiter",
			Buckets: prometheus.DefBuckets,
		},
	)

	initOnce sync.Once
)

// InitMetrics registers all Prometheus metrics. Safe to call more than once.
func InitMetrics() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			envelopesTotal,
			envelopeEventsTotal,
			envelopeDuration,
			searchCallsTotal,
			searchCallDuration,
			rateLimitWaitDuration,
		)
	})
}

// MetricsHandler returns an HTTP handler for Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records HTTP request metrics.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordEnvelope records one processed envelope and its duration.
func RecordEnvelope(duration time.Duration) {
	envelopesTotal.Inc()
	envelopeDuration.Observe(duration.Seconds())
}

// RecordEvent records one envelope event by type and outcome
// (answered, manifest, skipped, prompt, apology).
func RecordEvent(eventType, outcome string) {
	envelopeEventsTotal.WithLabelValues(eventType, outcome).Inc()
}

// RecordSearchCall records a search provider call by status (ok, error).
func RecordSearchCall(status string, duration time.Duration) {
	searchCallsTotal.WithLabelValues(status).Inc()
	searchCallDuration.Observe(duration.Seconds())
}

// RecordRateLimitWait records time spent blocked on the rate limiter.
func RecordRateLimitWait(duration time.Duration) {
	rateLimitWaitDuration.Observe(duration.Seconds())
}
