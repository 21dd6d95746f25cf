package engine

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/kredio/kredio/internal/finance"
	"github.com/kredio/kredio/internal/policy"
	"github.com/kredio/kredio/internal/spoken"
)

// PlanEntry is one installment of a repayment plan, in tool-ready form.
type PlanEntry struct {
	Index     int     `json:"index"`
	Payment   float64 `json:"payment"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Balance   float64 `json:"balance"`
}

type PlanSummary struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalPayment   float64 `json:"totalPayment"`
	RateMonthly    float64 `json:"rateMonthly"`
	TermMonths     int     `json:"termMonths"`
}

// TermComparison is one line of a term comparison at a fixed rate.
type TermComparison struct {
	TermMonths     int     `json:"termMonths"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

// RepaymentPlan computes a full amortization schedule. Rate precedence: an
// explicit positive monthlyRate, else the customer's resolved risk rate
// when the id is known, else the policy base rate.
func (e *Engine) RepaymentPlan(ctx context.Context, amount float64, termMonths int, monthlyRate *float64, customerID string) (PlanSummary, []PlanEntry, error) {
	if amount <= 0 || termMonths <= 0 {
		return PlanSummary{}, nil, ErrInvalidInputs
	}

	rate, err := e.resolveRate(ctx, monthlyRate, customerID)
	if err != nil {
		return PlanSummary{}, nil, err
	}

	summary, entries, err := finance.BuildSchedule(decimal.NewFromFloat(amount), rate, termMonths)
	if err != nil {
		if errors.Is(err, finance.ErrInvalidInputs) {
			return PlanSummary{}, nil, ErrInvalidInputs
		}
		return PlanSummary{}, nil, err
	}

	plan := make([]PlanEntry, len(entries))
	for i, entry := range entries {
		plan[i] = PlanEntry{
			Index:     entry.Index,
			Payment:   toFloat(entry.Payment),
			Interest:  toFloat(entry.Interest),
			Principal: toFloat(entry.Principal),
			Balance:   toFloat(entry.Balance),
		}
	}

	return PlanSummary{
		MonthlyPayment: toFloat(summary.MonthlyPayment),
		TotalInterest:  toFloat(summary.TotalInterest),
		TotalPayment:   toFloat(summary.TotalPayment),
		RateMonthly:    summary.RateMonthly,
		TermMonths:     summary.TermMonths,
	}, plan, nil
}

// CompareTerms prices one amount across several terms at a single rate.
func (e *Engine) CompareTerms(ctx context.Context, amount float64, terms []int, customerID string) ([]TermComparison, float64, error) {
	if amount <= 0 {
		return nil, 0, ErrInvalidAmount
	}
	if len(terms) == 0 {
		return nil, 0, ErrInvalidTerms
	}
	for _, term := range terms {
		if term <= 0 {
			return nil, 0, ErrInvalidTerms
		}
	}

	rate, err := e.resolveRate(ctx, nil, customerID)
	if err != nil {
		return nil, 0, err
	}

	principal := decimal.NewFromFloat(amount)
	items := make([]TermComparison, len(terms))
	for i, term := range terms {
		payment := finance.MonthlyPayment(principal, rate, term)
		total := payment.Mul(decimal.NewFromInt(int64(term))).Round(2)
		items[i] = TermComparison{
			TermMonths:     term,
			MonthlyPayment: toFloat(payment),
			TotalPayment:   toFloat(total),
			TotalInterest:  toFloat(total.Sub(principal)),
		}
	}
	return items, rate, nil
}

// resolveRate picks the rate for plan-style tools. Unknown customer ids
// fall back to the base rate: a plan request is not a lookup.
func (e *Engine) resolveRate(ctx context.Context, explicit *float64, customerID string) (float64, error) {
	if explicit != nil && *explicit > 0 {
		return *explicit, nil
	}

	snap, err := e.store.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	if customerID != "" {
		if c, ok := snap.Customer(spoken.Normalize(customerID)); ok {
			return policy.EffectiveRate(snap.Policy, c.CreditScore), nil
		}
	}
	return snap.Policy.BaseMonthlyRate, nil
}
