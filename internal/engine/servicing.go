package engine

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/kredio/kredio/internal/bankdata"
	"github.com/kredio/kredio/internal/finance"
	"github.com/kredio/kredio/internal/policy"
	"github.com/kredio/kredio/internal/spoken"
)

// PayoffQuote prices the early full prepayment of an existing loan.
type PayoffQuote struct {
	LoanID           string  `json:"loanId"`
	RemainingBalance float64 `json:"remainingBalance"`
	Penalty          float64 `json:"penalty"`
	PayoffAmount     float64 `json:"payoffAmount"`
	Note             string  `json:"note"`
}

// RestructureOption is one candidate new term for an existing loan.
type RestructureOption struct {
	TermMonths     int     `json:"termMonths"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

type RestructureResult struct {
	RateMonthly   float64             `json:"rateMonthly"`
	ProcessingFee float64             `json:"processingFee"`
	Options       []RestructureOption `json:"options"`
}

// DeferralResult reports whether one more payment deferral is allowed.
type DeferralResult struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// Payoff computes the penalty and total payoff amount for a loan.
func (e *Engine) Payoff(ctx context.Context, customerID, loanID string) (PayoffQuote, error) {
	_, loan, cfg, err := e.resolveLoan(ctx, customerID, loanID)
	if err != nil {
		return PayoffQuote{}, err
	}

	balance := decimal.NewFromFloat(loan.RemainingBalance)
	penalty := balance.Mul(decimal.NewFromFloat(cfg.Fees.EarlyPrepaymentPenaltyRate)).Round(2)
	payoff := balance.Add(penalty).Round(2)

	quote := PayoffQuote{
		LoanID:           loan.LoanID,
		RemainingBalance: toFloat(balance),
		Penalty:          toFloat(penalty),
		PayoffAmount:     toFloat(payoff),
	}
	quote.Note = payoffNote(quote.Penalty, quote.PayoffAmount)
	return quote, nil
}

// RestructureOptions produces one amortization estimate per allowed term
// for the remaining balance of an existing loan.
func (e *Engine) RestructureOptions(ctx context.Context, customerID, loanID string) (RestructureResult, error) {
	c, loan, cfg, err := e.resolveLoan(ctx, customerID, loanID)
	if err != nil {
		return RestructureResult{}, err
	}
	if !cfg.Restructuring.Allowed {
		return RestructureResult{}, ErrNotAllowed
	}

	rate := loan.MonthlyRate
	if cfg.Restructuring.RatePolicy == policy.RatePolicyReprice {
		if resolved := policy.EffectiveRate(cfg, c.CreditScore); resolved > rate {
			rate = resolved
		}
	}

	balance := decimal.NewFromFloat(loan.RemainingBalance)
	options := make([]RestructureOption, 0, len(cfg.Restructuring.AllowedTerms))
	for _, term := range cfg.Restructuring.AllowedTerms {
		summary, _, err := finance.BuildSchedule(balance, rate, term)
		if err != nil {
			// A fully repaid loan has nothing to restructure over any term.
			continue
		}
		options = append(options, RestructureOption{
			TermMonths:     term,
			MonthlyPayment: toFloat(summary.MonthlyPayment),
			TotalPayment:   toFloat(summary.TotalPayment),
			TotalInterest:  toFloat(summary.TotalInterest),
		})
	}

	return RestructureResult{
		RateMonthly:   rate,
		ProcessingFee: cfg.Fees.RestructuringFee,
		Options:       options,
	}, nil
}

// Deferral reports deferral eligibility, failing closed when policy
// disallows it or the annual quota is used up.
func (e *Engine) Deferral(ctx context.Context, customerID, loanID string) (DeferralResult, error) {
	_, loan, cfg, err := e.resolveLoan(ctx, customerID, loanID)
	if err != nil {
		return DeferralResult{}, err
	}

	if !cfg.Deferral.Allowed {
		return DeferralResult{Reason: "deferral not allowed by policy"}, nil
	}
	if loan.DeferralsUsed >= cfg.Deferral.MaxPerYear {
		return DeferralResult{Reason: "annual deferral limit reached"}, nil
	}
	return DeferralResult{Eligible: true}, nil
}

func (e *Engine) resolveLoan(ctx context.Context, customerID, loanID string) (bankdata.CustomerRecord, bankdata.LoanRecord, policy.Config, error) {
	snap, err := e.store.Snapshot(ctx)
	if err != nil {
		return bankdata.CustomerRecord{}, bankdata.LoanRecord{}, policy.Config{}, err
	}

	c, ok := snap.Customer(spoken.Normalize(customerID))
	if !ok {
		return bankdata.CustomerRecord{}, bankdata.LoanRecord{}, policy.Config{}, ErrCustomerNotFound
	}
	loan, ok := c.Loan(loanID)
	if !ok {
		return bankdata.CustomerRecord{}, bankdata.LoanRecord{}, policy.Config{}, ErrLoanNotFound
	}
	return c, loan, snap.Policy, nil
}
