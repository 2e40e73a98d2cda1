// Package metrics holds the application-level Prometheus metrics.
// Per-area metrics live next to their services.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP-level instruments.
type Metrics struct {
	RequestDuration  *prometheus.HistogramVec
	ChildrenEnrolled prometheus.Counter
}

// New creates and registers all application metrics.
func New() *Metrics {
	return &Metrics{
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "appeal_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method", "status"}),
		ChildrenEnrolled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "appeal_children_enrolled_total",
			Help: "Total number of children enrolled.",
		}),
	}
}

// ObserveRequest records one served request.
func (m *Metrics) ObserveRequest(route, method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, method, status).Observe(elapsed.Seconds())
}

// IncrementChildrenEnrolled bumps the enrollment counter.
func (m *Metrics) IncrementChildrenEnrolled() {
	if m == nil {
		return
	}
	m.ChildrenEnrolled.Inc()
}
