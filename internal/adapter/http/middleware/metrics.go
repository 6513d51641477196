package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/odra/finbook/internal/infrastructure/metrics"
)

// MetricsMiddleware records request counters and latencies.
type MetricsMiddleware struct {
	metrics *metrics.Metrics
}

// NewMetricsMiddleware creates a new MetricsMiddleware.
func NewMetricsMiddleware(m *metrics.Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: m}
}

// Wrap wraps an http.Handler with metrics recording.
func (m *MetricsMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		path := normalizePath(r.URL.Path)

		m.metrics.HTTPRequests.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		m.metrics.HTTPDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

// normalizePath collapses resource IDs so metric cardinality stays bounded:
// /api/v1/accounts/01ABC -> /api/v1/accounts/:id.
func normalizePath(path string) string {
	parts := strings.Split(path, "/")
	// ["", "api", "v1", resource, id, ...]
	if len(parts) >= 5 && parts[1] == "api" && parts[2] == "v1" && parts[3] != "daily" {
		parts[4] = ":id"
		return strings.Join(parts, "/")
	}
	return path
}
