package observability

import "github.com/prometheus/client_golang/prometheus"

// Auth rejection reasons
const (
	RejectionNoToken      = "no_token"
	RejectionInvalidToken = "invalid_token"
)

var (
	// RequestsTotal counts HTTP requests by method, route pattern, and status class.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request duration in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "forum_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthRejectionsTotal counts requests the auth guard turned away.
	AuthRejectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_auth_rejections_total",
			Help: "Requests rejected by the auth guard",
		},
		[]string{"reason"},
	)

	// ValidationFailuresTotal counts requests rejected by schema validation.
	ValidationFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forum_validation_failures_total",
			Help: "Requests rejected by schema validation",
		},
		[]string{"source"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthRejectionsTotal,
		ValidationFailuresTotal,
	)
}
