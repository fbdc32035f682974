// Package observability provides structured logging and Prometheus metrics
// for the forum API.
//
// Loggers are zap based. Metrics are registered on the default Prometheus
// registry and exposed by the router on /metrics.
package observability
