package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepaymentPlanExplicitRate(t *testing.T) {
	e := newTestEngine(t, testDoc)

	rate := 0.03
	summary, entries, err := e.RepaymentPlan(context.Background(), 12_000, 12, &rate, "")
	require.NoError(t, err)

	assert.InDelta(t, 0.03, summary.RateMonthly, 1e-9)
	assert.Equal(t, 12, summary.TermMonths)
	assert.InDelta(t, annuity(12_000, 0.03, 12), summary.MonthlyPayment, 0.01)
	require.Len(t, entries, 12)
	assert.Equal(t, 1, entries[0].Index)
	assert.Zero(t, entries[11].Balance)

	var principalSum float64
	for _, entry := range entries {
		principalSum += entry.Principal
	}
	assert.InDelta(t, 12_000, principalSum, 0.001)
}

func TestRepaymentPlanCustomerRate(t *testing.T) {
	e := newTestEngine(t, testDoc)

	summary, _, err := e.RepaymentPlan(context.Background(), 10_000, 12, nil, "bir sıfır sıfır bir")
	require.NoError(t, err)
	assert.InDelta(t, 0.045, summary.RateMonthly, 1e-9)

	// Unknown ids fall back to the base rate instead of failing.
	summary, _, err = e.RepaymentPlan(context.Background(), 10_000, 12, nil, "8888")
	require.NoError(t, err)
	assert.InDelta(t, 0.045, summary.RateMonthly, 1e-9)
}

func TestRepaymentPlanInvalidInputs(t *testing.T) {
	e := newTestEngine(t, testDoc)

	_, _, err := e.RepaymentPlan(context.Background(), 0, 12, nil, "")
	assert.ErrorIs(t, err, ErrInvalidInputs)

	_, _, err = e.RepaymentPlan(context.Background(), 1000, -1, nil, "")
	assert.ErrorIs(t, err, ErrInvalidInputs)
}

func TestCompareTerms(t *testing.T) {
	e := newTestEngine(t, testDoc)

	items, rate, err := e.CompareTerms(context.Background(), 50_000, []int{12, 24, 36}, "")
	require.NoError(t, err)
	assert.InDelta(t, 0.045, rate, 1e-9)
	require.Len(t, items, 3)

	for i, item := range items {
		assert.InDelta(t, item.MonthlyPayment*float64(item.TermMonths), item.TotalPayment, 0.01)
		assert.InDelta(t, item.TotalPayment-50_000, item.TotalInterest, 0.001)
		if i > 0 {
			assert.Less(t, item.MonthlyPayment, items[i-1].MonthlyPayment)
			assert.Greater(t, item.TotalInterest, items[i-1].TotalInterest)
		}
	}
}

func TestCompareTermsValidation(t *testing.T) {
	e := newTestEngine(t, testDoc)

	_, _, err := e.CompareTerms(context.Background(), 0, []int{12}, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, _, err = e.CompareTerms(context.Background(), 1000, nil, "")
	assert.ErrorIs(t, err, ErrInvalidTerms)

	_, _, err = e.CompareTerms(context.Background(), 1000, []int{12, 0}, "")
	assert.ErrorIs(t, err, ErrInvalidTerms)
}
