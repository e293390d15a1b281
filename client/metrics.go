package client

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds transport-level Prometheus collectors. All observation
// methods are nil-safe so the transport never branches on whether metrics
// are enabled.
type Metrics struct {
	requests *prometheus.CounterVec
	retries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates and registers the transport collectors on reg.
// Pass prometheus.DefaultRegisterer to use the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scribe",
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "API request attempts by method and status code.",
		}, []string{"method", "status"}),
		retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scribe",
			Subsystem: "client",
			Name:      "retries_total",
			Help:      "API request retry attempts by method.",
		}, []string{"method"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "scribe",
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "API request attempt duration.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}
	reg.MustRegister(m.requests, m.retries, m.duration)
	return m
}

// observeRequest records one request attempt. A status of 0 means the attempt
// failed before any response arrived.
func (m *Metrics) observeRequest(method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}

// observeRetry records one retry attempt.
func (m *Metrics) observeRetry(method string) {
	if m == nil {
		return
	}
	m.retries.WithLabelValues(method).Inc()
}
