// ABOUTME: HTTP middleware for request logging and metrics instrumentation
// ABOUTME: Tags every request with a generated request id

package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

// statusWriter captures the response status code for logging and metrics.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	return w.ResponseWriter.Write(b)
}

// requestLogger logs one line per request with a generated request id. The id
// is echoed in the X-Request-ID header so clients can correlate reports with
// server logs.
func (a *API) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		sw := &statusWriter{ResponseWriter: w}
		start := time.Now()
		next.ServeHTTP(sw, r)

		a.logger.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// instrument records request count and latency under the route pattern. The
// pattern is fixed at registration so raw paths never become label values.
func (a *API) instrument(pattern string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw, ok := w.(*statusWriter)
		if !ok {
			sw = &statusWriter{ResponseWriter: w}
			w = sw
		}

		start := time.Now()
		next.ServeHTTP(w, r)

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		a.metrics.RecordRequest(r.Method, pattern, status, time.Since(start))
	})
}
