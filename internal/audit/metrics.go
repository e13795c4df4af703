package audit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for audit publishing.
type Metrics struct {
	Emitted         *prometheus.CounterVec
	Rejected        prometheus.Counter
	PersistFailures prometheus.Counter
	MetadataDropped prometheus.Counter
	PersistDuration prometheus.Histogram
}

// NewMetrics creates audit metrics registered on the default registry.
func NewMetrics() *Metrics {
	return NewMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

// NewMetricsWithRegisterer creates audit metrics registered on reg.
func NewMetricsWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Emitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "serviceheft_audit_events_emitted_total",
			Help: "Total audit events persisted by action and result",
		}, []string{"action", "result"}),
		Rejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "serviceheft_audit_events_rejected_total",
			Help: "Total proposed audit events rejected as malformed",
		}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "serviceheft_audit_persist_failures_total",
			Help: "Total audit events that failed to persist",
		}),
		MetadataDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "serviceheft_audit_metadata_fields_dropped_total",
			Help: "Total metadata entries removed by redaction",
		}),
		PersistDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "serviceheft_audit_persist_duration_seconds",
			Help:    "Duration of audit store appends",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) incEmitted(action Action, result Result) {
	if m != nil {
		m.Emitted.WithLabelValues(string(action), string(result)).Inc()
	}
}

func (m *Metrics) incRejected() {
	if m != nil {
		m.Rejected.Inc()
	}
}

func (m *Metrics) incPersistFailures() {
	if m != nil {
		m.PersistFailures.Inc()
	}
}

func (m *Metrics) addMetadataDropped(n int) {
	if m != nil && n > 0 {
		m.MetadataDropped.Add(float64(n))
	}
}

func (m *Metrics) observePersistDuration(seconds float64) {
	if m != nil {
		m.PersistDuration.Observe(seconds)
	}
}
