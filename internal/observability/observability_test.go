package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr string
	}{
		{name: "json info", level: "info", format: "json"},
		{name: "console debug", level: "debug", format: "console"},
		{name: "text alias", level: "WARN", format: "text"},
		{name: "empty format defaults to json", level: "error", format: ""},
		{name: "invalid level", level: "loud", format: "json", wantErr: "invalid log level"},
		{name: "invalid format", level: "info", format: "xml", wantErr: "invalid log format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := NewLogger(tt.level, tt.format)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Nil(t, logger)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, logger)
			_ = logger.Sync()
		})
	}
}

func TestMetricsRegistered(t *testing.T) {
	RequestsTotal.WithLabelValues("GET", "/seed", "2xx").Inc()
	RequestDuration.WithLabelValues("GET", "/seed").Observe(0.01)
	AuthRejectionsTotal.WithLabelValues(RejectionNoToken).Inc()
	ValidationFailuresTotal.WithLabelValues("body").Inc()

	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)

	expected := map[string]bool{
		"forum_http_requests_total":           false,
		"forum_http_request_duration_seconds": false,
		"forum_auth_rejections_total":         false,
		"forum_validation_failures_total":     false,
	}
	for _, mf := range families {
		if _, ok := expected[mf.GetName()]; ok {
			expected[mf.GetName()] = true
		}
	}
	for name, found := range expected {
		assert.True(t, found, "metric %q not registered", name)
	}
}

func TestMetricsMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(MetricsMiddleware)
	r.Get("/questions", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	t.Run("labels by route pattern and status class", func(t *testing.T) {
		before := counterValue(t, RequestsTotal, "GET", "/questions", "4xx")

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/questions?page=2", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, before+1, counterValue(t, RequestsTotal, "GET", "/questions", "4xx"))
	})

	t.Run("unmatched routes share one label", func(t *testing.T) {
		before := counterValue(t, RequestsTotal, "GET", "unmatched", "4xx")

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope/123", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, before+1, counterValue(t, RequestsTotal, "GET", "unmatched", "4xx"))
	})
}

func TestStatusWriter_DefaultsToOK(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := &statusWriter{ResponseWriter: rec, status: http.StatusOK}

	_, err := sw.Write([]byte("hi"))
	require.NoError(t, err)
	sw.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusOK, sw.status)
	assert.Equal(t, rec, sw.Unwrap())
}

// counterValue reads the current value of a CounterVec for the given labels.
func counterValue(t *testing.T, cv *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	m := &dto.Metric{}
	c, err := cv.GetMetricWithLabelValues(labels...)
	require.NoError(t, err)
	require.NoError(t, c.Write(m))
	return m.GetCounter().GetValue()
}
