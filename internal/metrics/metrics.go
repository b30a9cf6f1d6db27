// ABOUTME: Prometheus metric collection for the HTTP surface and auth gates
// ABOUTME: Registers collectors on a caller-supplied registry for test isolation

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the interface the HTTP middleware and auth gates record through.
type Recorder interface {
	RecordRequest(method, pattern string, status int, duration time.Duration)
	RecordAuthFailure(reason string)
	RecordTokenIssued()
}

// Collector implements Recorder on top of Prometheus primitives.
type Collector struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	authFailures    *prometheus.CounterVec
	tokensIssued    prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics on reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskgate_http_requests_total",
			Help: "HTTP requests by method, route pattern, and status code",
		}, []string{"method", "pattern", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "taskgate_http_request_duration_seconds",
			Help:    "HTTP request latency by route pattern",
			Buckets: prometheus.DefBuckets,
		}, []string{"pattern"}),
		authFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskgate_auth_failures_total",
			Help: "Rejected requests by failure reason (unauthenticated, forbidden, rate_limited)",
		}, []string{"reason"}),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "taskgate_tokens_issued_total",
			Help: "Access tokens issued by signup and login",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.requestDuration,
		c.authFailures,
		c.tokensIssued,
	)

	return c
}

// RecordRequest records one completed HTTP request.
func (c *Collector) RecordRequest(method, pattern string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, pattern, strconv.Itoa(status)).Inc()
	c.requestDuration.WithLabelValues(pattern).Observe(duration.Seconds())
}

// RecordAuthFailure records a rejected request.
func (c *Collector) RecordAuthFailure(reason string) {
	c.authFailures.WithLabelValues(reason).Inc()
}

// RecordTokenIssued records a successfully issued access token.
func (c *Collector) RecordTokenIssued() {
	c.tokensIssued.Inc()
}

// Handler returns the scrape handler for the given gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop is a Recorder that discards everything. Used when metrics are disabled
// and in tests that do not assert on metrics.
type Nop struct{}

func (Nop) RecordRequest(string, string, int, time.Duration) {}
func (Nop) RecordAuthFailure(string)                         {}
func (Nop) RecordTokenIssued()                               {}
