package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DecisionMetrics counts underwriting decisions by surface and outcome.
type DecisionMetrics struct {
	decisions *prometheus.CounterVec
}

// NewDecisionMetrics registers the decision counters with reg.
func NewDecisionMetrics(reg prometheus.Registerer) *DecisionMetrics {
	m := &DecisionMetrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "credit_engine_decisions_total",
			Help: "Underwriting decisions by entry point and outcome.",
		}, []string{"entry_point", "outcome"}),
	}
	reg.MustRegister(m.decisions)
	return m
}

// ObserveDecision records one decision. Safe to call on a nil receiver so
// metrics stay optional in tests.
func (m *DecisionMetrics) ObserveDecision(entryPoint string, approved bool) {
	if m == nil {
		return
	}
	outcome := "rejected"
	if approved {
		outcome = "approved"
	}
	m.decisions.WithLabelValues(entryPoint, outcome).Inc()
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
