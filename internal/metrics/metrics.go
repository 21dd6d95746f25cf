// Package metrics exposes the gateway's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles the counters the tool layer records into. A nil
// *Metrics is valid and records nothing, which keeps tests that do not
// care about instrumentation free of registry setup.
type Metrics struct {
	toolInvocations *prometheus.CounterVec
	decisions       *prometheus.CounterVec
}

// New registers the gateway instruments on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		toolInvocations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kredio",
			Name:      "tool_invocations_total",
			Help:      "Tool calls by tool name and outcome code.",
		}, []string{"tool", "outcome"}),
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "kredio",
			Name:      "loan_decisions_total",
			Help:      "Loan application decisions by result.",
		}, []string{"result"}),
	}
}

// Result labels for ObserveDecision.
const (
	DecisionApproved        = "approved"
	DecisionRejected        = "rejected"
	DecisionUnknownCustomer = "unknown_customer"
)

// ObserveTool records one tool invocation. outcome is "ok" or the error code.
func (m *Metrics) ObserveTool(tool, outcome string) {
	if m == nil {
		return
	}
	m.toolInvocations.WithLabelValues(tool, outcome).Inc()
}

// ObserveDecision records one application decision.
func (m *Metrics) ObserveDecision(result string) {
	if m == nil {
		return
	}
	m.decisions.WithLabelValues(result).Inc()
}
