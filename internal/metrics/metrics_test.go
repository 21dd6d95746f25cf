package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveTool(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveTool("loan_application", "ok")
	m.ObserveTool("loan_application", "ok")
	m.ObserveTool("payoff_quote", "loan_not_found")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.toolInvocations.WithLabelValues("loan_application", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.toolInvocations.WithLabelValues("payoff_quote", "loan_not_found")))
}

func TestObserveDecision(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveDecision(DecisionApproved)
	m.ObserveDecision(DecisionRejected)
	m.ObserveDecision(DecisionRejected)
	m.ObserveDecision(DecisionUnknownCustomer)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues(DecisionApproved)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.decisions.WithLabelValues(DecisionRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.decisions.WithLabelValues(DecisionUnknownCustomer)))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveTool("x", "ok")
		m.ObserveDecision(DecisionApproved)
	})
}
