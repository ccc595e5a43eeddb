package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RequestsTotal counts HTTP requests served, partitioned by status
	// code and method
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "caish_website_http_requests_total",
		Help: "The total number of HTTP requests served, by status code and method",
	}, []string{"code", "method"})

	// SessionsActive is the number of HTTP requests currently being processed
	SessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "caish_website_http_sessions_active",
		Help: "The number of HTTP requests currently being processed",
	})

	// RewritesTotal counts GET requests inspected for a clean URL
	// rewrite, partitioned by outcome
	RewritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "caish_website_clean_url_rewrites_total",
		Help: "The number of GET requests inspected for a clean URL rewrite, by outcome",
	}, []string{"result"})

	// ServedFileSize records the size of files served from disk
	ServedFileSize = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "caish_website_served_file_size_bytes",
		Help:    "The size in bytes of files served from disk",
		Buckets: prometheus.ExponentialBuckets(512, 4, 8),
	})

	// RejectedRequestsCount counts requests rejected for using an
	// unsupported HTTP method
	RejectedRequestsCount = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "caish_website_rejected_requests_total",
		Help: "The number of requests rejected for using an unsupported HTTP method",
	})
)

// MustRegister registers the metrics above with the default registerer.
// main calls it once at startup.
func MustRegister() {
	prometheus.MustRegister(
		RequestsTotal,
		SessionsActive,
		RewritesTotal,
		ServedFileSize,
		RejectedRequestsCount,
	)
}
