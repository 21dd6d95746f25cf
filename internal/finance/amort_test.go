package finance

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyPaymentMatchesAnnuityFormula(t *testing.T) {
	principal := decimal.NewFromInt(50_000)
	rate := 0.045
	term := 24

	got := MonthlyPayment(principal, rate, term)

	factor := math.Pow(1+rate, float64(term))
	want := 50_000 * rate * factor / (factor - 1)
	assert.InDelta(t, want, got.InexactFloat64(), 0.01)
}

func TestMonthlyPaymentZeroRateIsStraightLine(t *testing.T) {
	got := MonthlyPayment(decimal.NewFromInt(1200), 0, 12)
	assert.True(t, got.Equal(decimal.NewFromInt(100)), "expected 100, got %s", got)

	// Term below one is clamped instead of dividing by zero.
	got = MonthlyPayment(decimal.NewFromInt(500), 0, 0)
	assert.True(t, got.Equal(decimal.NewFromInt(500)), "expected 500, got %s", got)
}

func TestMonthlyPaymentVeryLongTerm(t *testing.T) {
	// The discount factor underflows to zero here; the payment degrades to
	// P*r rather than producing NaN.
	got := MonthlyPayment(decimal.NewFromInt(1000), 0.045, 20_000)
	assert.True(t, got.Equal(decimal.NewFromFloat(45)), "got %s", got)
}

func TestBuildScheduleInvalidInputs(t *testing.T) {
	_, _, err := BuildSchedule(decimal.Zero, 0.04, 12)
	assert.ErrorIs(t, err, ErrInvalidInputs)

	_, _, err = BuildSchedule(decimal.NewFromInt(-5), 0.04, 12)
	assert.ErrorIs(t, err, ErrInvalidInputs)

	_, _, err = BuildSchedule(decimal.NewFromInt(1000), 0.04, 0)
	assert.ErrorIs(t, err, ErrInvalidInputs)
}

func TestBuildScheduleConservation(t *testing.T) {
	cases := []struct {
		principal float64
		rate      float64
		term      int
	}{
		{50_000, 0.045, 24},
		{10_000, 0.025, 12},
		{125_000, 0.057, 36},
		{1_000, 0.01, 6},
		{7_531.77, 0.0333, 18},
	}

	for _, tc := range cases {
		principal := decimal.NewFromFloat(tc.principal)
		summary, entries, err := BuildSchedule(principal, tc.rate, tc.term)
		require.NoError(t, err)
		require.Len(t, entries, tc.term)

		totalPrincipal := decimal.Zero
		prevBalance := principal
		for _, e := range entries {
			totalPrincipal = totalPrincipal.Add(e.Principal)
			assert.False(t, e.Balance.IsNegative(), "negative balance at %d", e.Index)
			assert.True(t, e.Balance.LessThanOrEqual(prevBalance), "balance grew at %d", e.Index)
			prevBalance = e.Balance
		}

		// Principal portions add back up to the principal and the schedule
		// closes at zero.
		assert.True(t, totalPrincipal.Equal(principal),
			"principal %s, portions sum %s", principal, totalPrincipal)
		assert.True(t, entries[len(entries)-1].Balance.IsZero())

		assert.True(t, summary.TotalPayment.Equal(principal.Add(summary.TotalInterest)))
		assert.Equal(t, tc.term, summary.TermMonths)
	}
}

func TestBuildScheduleZeroRate(t *testing.T) {
	summary, entries, err := BuildSchedule(decimal.NewFromInt(1200), 0, 12)
	require.NoError(t, err)

	assert.True(t, summary.MonthlyPayment.Equal(decimal.NewFromInt(100)))
	assert.True(t, summary.TotalInterest.IsZero())
	assert.True(t, summary.TotalPayment.Equal(decimal.NewFromInt(1200)))
	for _, e := range entries {
		assert.True(t, e.Interest.IsZero())
	}
	assert.True(t, entries[11].Balance.IsZero())
}

func TestBuildScheduleFirstInterestIsBalanceTimesRate(t *testing.T) {
	principal := decimal.NewFromInt(10_000)
	_, entries, err := BuildSchedule(principal, 0.045, 12)
	require.NoError(t, err)

	want := decimal.NewFromFloat(450) // 10000 * 0.045
	assert.True(t, entries[0].Interest.Equal(want), "got %s", entries[0].Interest)
}
