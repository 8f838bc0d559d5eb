package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/okian/sihdash/pkg/metrics"
)

// MetricsMiddleware records request count, latency and error class for endpoint.
func MetricsMiddleware(next http.HandlerFunc, endpoint string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		code := strconv.Itoa(rec.status)
		metrics.RecordHTTPRequest(endpoint, r.Method, code)
		metrics.RecordHTTPRequestDuration(endpoint, r.Method, code, float64(time.Since(start).Microseconds())/1000)

		if class, severity, failed := classify(rec.status); failed {
			metrics.RecordErrorByEndpoint(endpoint, r.Method, class)
			metrics.RecordErrorByType(class, severity)
			metrics.RecordErrorByComponent("http", class)
		}
	}
}

// classify maps an error status to a metric class and severity.
// A dataset outage (503) is tracked apart from other server errors.
func classify(status int) (class, severity string, failed bool) {
	switch {
	case status == http.StatusServiceUnavailable:
		return "unavailable", "high", true
	case status >= http.StatusInternalServerError:
		return "server_error", "high", true
	case status == http.StatusNotFound:
		return "not_found", "medium", true
	case status >= http.StatusBadRequest:
		return "client_error", "medium", true
	}
	return "", "", false
}

// statusRecorder remembers the status written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}
