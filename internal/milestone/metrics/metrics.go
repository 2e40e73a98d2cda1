package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the milestone tracker.
type Metrics struct {
	Transitions        *prometheus.CounterVec
	TransitionDuration *prometheus.HistogramVec
	RowsSynced         prometheus.Counter
}

// New creates and registers the milestone metrics.
func New() *Metrics {
	return &Metrics{
		Transitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "appeal_milestone_transitions_total",
			Help: "Milestone state machine transitions by kind and outcome",
		}, []string{"kind", "outcome"}),
		TransitionDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "appeal_milestone_transition_duration_seconds",
			Help:    "Latency of milestone transitions including the store write",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		RowsSynced: promauto.NewCounter(prometheus.CounterOpts{
			Name: "appeal_milestone_rows_synced_total",
			Help: "Progress rows created by catalog-to-child synchronization",
		}),
	}
}

// RecordTransition counts one transition attempt.
func (m *Metrics) RecordTransition(kind, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(kind, outcome).Inc()
	m.TransitionDuration.WithLabelValues(kind).Observe(seconds)
}

// RecordSynced counts rows created during a catalog sync.
func (m *Metrics) RecordSynced(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.RowsSynced.Add(float64(n))
}
