package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// TransitionMetrics records order lifecycle transition outcomes.
type TransitionMetrics struct {
	duration *prometheus.HistogramVec
	applied  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	failed   *prometheus.CounterVec
}

// NewTransitionMetrics registers the lifecycle metrics on the provided registerer.
func NewTransitionMetrics(reg prometheus.Registerer) *TransitionMetrics {
	if reg == nil {
		return &TransitionMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "order_transition_duration_seconds",
		Help:    "Duration of order lifecycle transitions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"action"})
	applied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transition_applied",
		Help: "Transitions accepted by the backend and applied locally.",
	}, []string{"action"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transition_rejected",
		Help: "Transitions rejected by the local gate before any network call.",
	}, []string{"action"})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_transition_failed",
		Help: "Transitions that passed the local gate but failed at the backend.",
	}, []string{"action"})
	reg.MustRegister(duration, applied, rejected, failed)
	return &TransitionMetrics{
		duration: duration,
		applied:  applied,
		rejected: rejected,
		failed:   failed,
	}
}

// ObserveDuration records the round-trip time for the named action.
func (m *TransitionMetrics) ObserveDuration(action string, duration time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(normalizeLabel(action)).Observe(duration.Seconds())
}

// IncApplied increments the applied counter for the named action.
func (m *TransitionMetrics) IncApplied(action string) {
	if m == nil || m.applied == nil {
		return
	}
	m.applied.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncRejected increments the locally rejected counter for the named action.
func (m *TransitionMetrics) IncRejected(action string) {
	if m == nil || m.rejected == nil {
		return
	}
	m.rejected.WithLabelValues(normalizeLabel(action)).Inc()
}

// IncFailed increments the backend failure counter for the named action.
func (m *TransitionMetrics) IncFailed(action string) {
	if m == nil || m.failed == nil {
		return
	}
	m.failed.WithLabelValues(normalizeLabel(action)).Inc()
}

func normalizeLabel(action string) string {
	if action == "" {
		return "unknown"
	}
	return action
}
