package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code", "service"},
	)

	HttpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "service"},
	)

	// YouTube API call metrics
	YouTubeAPICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "youtube_api_calls_total",
			Help: "Total number of YouTube Data API calls",
		},
		[]string{"endpoint", "status"},
	)

	// Business metrics for the scan pipeline
	CommentsFetched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "comments_fetched_total",
			Help: "Total number of comments collected from videos",
		},
	)

	EventsExtracted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "events_extracted_total",
			Help: "Total number of event records extracted from comments",
		},
	)

	EventsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_served_total",
			Help: "Total number of event records served to clients",
		},
		[]string{"endpoint"},
	)

	// NATS metrics
	NatsMessagesPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_messages_published_total",
			Help: "Total number of NATS messages published",
		},
		[]string{"subject", "status"},
	)

	NatsMessagesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nats_messages_received_total",
			Help: "Total number of NATS messages received",
		},
		[]string{"subject", "status"},
	)

	// Application health metrics
	ApplicationInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "application_info",
			Help: "Application information",
		},
		[]string{"service", "version", "environment"},
	)
)

// Initialize metrics with default values
func Init(serviceName, version, environment string) {
	ApplicationInfo.WithLabelValues(serviceName, version, environment).Set(1)
}
