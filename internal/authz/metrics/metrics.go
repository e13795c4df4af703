package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for authorization decisions.
type Metrics struct {
	// Decisions by permission and result ("allow", "unauthorized", "forbidden")
	Decisions *prometheus.CounterVec
}

// New creates authz metrics registered on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates authz metrics registered on reg.
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "serviceheft_authz_decisions_total",
			Help: "Total authorization decisions by permission and result",
		}, []string{"permission", "result"}),
	}
}

// IncrementDecision records a decision outcome.
func (m *Metrics) IncrementDecision(permission, result string) {
	if m != nil {
		m.Decisions.WithLabelValues(permission, result).Inc()
	}
}
