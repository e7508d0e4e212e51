package httpclient

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_gateway_requests_total",
			Help: "Total number of requests sent to the commerce gateway",
		},
		[]string{"method", "route", "status"},
	)

	gatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_gateway_request_duration_seconds",
			Help:    "Commerce gateway round-trip duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// observe records one gateway round trip. status is the HTTP status code or
// "error" when no response was received.
func observe(method, route, status string, d time.Duration) {
	gatewayRequestsTotal.WithLabelValues(method, route, status).Inc()
	gatewayRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}
