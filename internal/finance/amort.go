// Package finance computes annuity payments and amortization schedules.
package finance

import (
	"errors"
	"math"

	"github.com/shopspring/decimal"
)

// ErrInvalidInputs reports a non-positive principal or term.
var ErrInvalidInputs = errors.New("invalid_inputs")

// Entry is one installment of an amortization schedule.
type Entry struct {
	Index     int
	Payment   decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Balance   decimal.Decimal
}

// Summary totals a schedule. All monetary fields are rounded to cents.
type Summary struct {
	MonthlyPayment decimal.Decimal
	TotalInterest  decimal.Decimal
	TotalPayment   decimal.Decimal
	RateMonthly    float64
	TermMonths     int
}

// MonthlyPayment computes the fixed annuity installment for a principal at
// a constant monthly rate, rounded to the cent. A non-positive rate
// degrades to a straight-line split over max(1, term), which keeps the
// annuity denominator away from zero.
func MonthlyPayment(principal decimal.Decimal, monthlyRate float64, termMonths int) decimal.Decimal {
	if termMonths < 1 {
		termMonths = 1
	}
	if monthlyRate <= 0 {
		return principal.Div(decimal.NewFromInt(int64(termMonths))).Round(2)
	}

	// A = P * r / (1 - (1+r)^-n). The power term is computed in float64,
	// monetary arithmetic stays decimal. The negative exponent keeps the
	// discount factor in (0,1], so very long terms underflow toward P*r
	// instead of overflowing to +Inf.
	discount := math.Pow(1+monthlyRate, -float64(termMonths))
	payment := principal.InexactFloat64() * monthlyRate / (1 - discount)
	return decimal.NewFromFloat(payment).Round(2)
}

// BuildSchedule amortizes principal over termMonths at monthlyRate. The
// running balance is non-negative and non-increasing; the final installment
// retires the exact remaining balance so the schedule closes at zero.
func BuildSchedule(principal decimal.Decimal, monthlyRate float64, termMonths int) (Summary, []Entry, error) {
	if principal.LessThanOrEqual(decimal.Zero) || termMonths <= 0 {
		return Summary{}, nil, ErrInvalidInputs
	}

	payment := MonthlyPayment(principal, monthlyRate, termMonths)
	rate := decimal.Zero
	if monthlyRate > 0 {
		rate = decimal.NewFromFloat(monthlyRate)
	}

	balance := principal
	totalInterest := decimal.Zero
	entries := make([]Entry, 0, termMonths)

	for i := 1; i <= termMonths; i++ {
		interest := balance.Mul(rate).Round(2)
		principalPart := payment.Sub(interest)
		if principalPart.IsNegative() {
			principalPart = decimal.Zero
		}
		if principalPart.GreaterThan(balance) {
			principalPart = balance
		}
		installment := payment
		if i == termMonths {
			// Retire whatever is left so rounding drift cannot leave a tail.
			principalPart = balance
			installment = principalPart.Add(interest)
		}

		balance = balance.Sub(principalPart)
		if balance.IsNegative() {
			balance = decimal.Zero
		}
		totalInterest = totalInterest.Add(interest)

		entries = append(entries, Entry{
			Index:     i,
			Payment:   installment,
			Interest:  interest,
			Principal: principalPart,
			Balance:   balance,
		})
	}

	summary := Summary{
		MonthlyPayment: payment,
		TotalInterest:  totalInterest.Round(2),
		TotalPayment:   principal.Add(totalInterest).Round(2),
		RateMonthly:    monthlyRate,
		TermMonths:     termMonths,
	}
	return summary, entries, nil
}
