// Package engine hosts the loan decision engine: eligibility evaluation,
// application orchestration and servicing computations over the bank data
// snapshot. All operations are pure functions over one snapshot; identical
// inputs against an unchanged snapshot produce identical results.
package engine

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/kredio/kredio/internal/bankdata"
	"github.com/kredio/kredio/internal/finance"
	"github.com/kredio/kredio/internal/logctx"
	"github.com/kredio/kredio/internal/spoken"
)

type Engine struct {
	store *bankdata.Store
	log   *slog.Logger
}

func New(store *bankdata.Store, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{store: store, log: log}
}

// Decision is the outcome of one loan application, ephemeral per request.
type Decision struct {
	Approve        bool     `json:"approve"`
	ApprovedAmount float64  `json:"approvedAmount"`
	MonthlyPayment float64  `json:"monthlyPayment"`
	TermMonths     int      `json:"termMonths"`
	Reasons        []string `json:"reasons"`
	RateMonthly    float64  `json:"policyRate"`
	DSR            float64  `json:"dsr"`
}

// ApplicationResult bundles the decision with the resolved customer context
// and the sentence the agent speaks. The caller threads the customer
// name/id into follow-up calls instead of parking it in widget state.
type ApplicationResult struct {
	Decision        Decision
	CustomerID      string
	CustomerName    string
	CustomerSummary string
	SuggestedAmount float64
}

// ResolveCustomer normalizes a spoken identifier and looks the customer up.
func (e *Engine) ResolveCustomer(ctx context.Context, spokenID string) (bankdata.CustomerRecord, error) {
	snap, err := e.store.Snapshot(ctx)
	if err != nil {
		return bankdata.CustomerRecord{}, err
	}

	id := spoken.Normalize(spokenID)
	if id == "" {
		return bankdata.CustomerRecord{}, ErrCustomerNotFound
	}
	c, ok := snap.Customer(id)
	if !ok {
		return bankdata.CustomerRecord{}, ErrCustomerNotFound
	}
	return c, nil
}

// CustomerSnapshot returns the read-only record for a customer id.
func (e *Engine) CustomerSnapshot(ctx context.Context, customerID string) (bankdata.CustomerRecord, error) {
	return e.ResolveCustomer(ctx, customerID)
}

// EligibilityCheck runs the policy evaluation for a known customer.
func (e *Engine) EligibilityCheck(ctx context.Context, customerID string, amount float64, termMonths int) (EligibilityResult, error) {
	if amount <= 0 {
		return EligibilityResult{}, ErrInvalidAmount
	}
	if termMonths <= 0 {
		return EligibilityResult{}, ErrInvalidTerm
	}

	snap, err := e.store.Snapshot(ctx)
	if err != nil {
		return EligibilityResult{}, err
	}
	c, ok := snap.Customer(spoken.Normalize(customerID))
	if !ok {
		return EligibilityResult{}, ErrCustomerNotFound
	}

	return EvaluateEligibility(c, decimal.NewFromFloat(amount), termMonths, snap.Policy), nil
}

// SubmitApplication turns a raw application into a decision plus the spoken
// summary. An unknown customer yields a rejected decision with a
// clarification summary rather than a transport error, so the agent can
// re-prompt for the identifier.
func (e *Engine) SubmitApplication(ctx context.Context, customerID string, amount float64, termMonths int) (ApplicationResult, error) {
	if amount <= 0 {
		return ApplicationResult{}, ErrInvalidAmount
	}
	if termMonths <= 0 {
		return ApplicationResult{}, ErrInvalidTerm
	}

	snap, err := e.store.Snapshot(ctx)
	if err != nil {
		return ApplicationResult{}, err
	}

	id := spoken.Normalize(customerID)
	c, ok := snap.Customer(id)
	if !ok {
		return ApplicationResult{
			CustomerID: id,
			Decision: Decision{
				TermMonths: termMonths,
				Reasons:    []string{ErrCustomerNotFound.Error()},
			},
			CustomerSummary: unknownCustomerSummary,
		}, nil
	}

	ev := EvaluateEligibility(c, decimal.NewFromFloat(amount), termMonths, snap.Policy)

	dec := Decision{
		Approve:     ev.Approve,
		TermMonths:  termMonths,
		Reasons:     ev.Reasons,
		RateMonthly: ev.RateMonthly,
		DSR:         round2(ev.DSR),
	}

	res := ApplicationResult{CustomerID: c.ID, CustomerName: c.Name}
	if ev.Approve {
		payment := finance.MonthlyPayment(decimal.NewFromFloat(amount), ev.RateMonthly, termMonths)
		dec.ApprovedAmount = amount
		dec.MonthlyPayment = toFloat(payment)
		res.CustomerSummary = approvedSummary(c.Name, amount, dec.MonthlyPayment, termMonths)
	} else {
		res.SuggestedAmount = toFloat(ev.SuggestedAmount)
		res.CustomerSummary = rejectedSummary(c.Name, ev.Reasons, res.SuggestedAmount)
	}
	res.Decision = dec

	logctx.From(ctx, e.log).Info("loan application decided",
		"customer_id", c.ID,
		"approve", dec.Approve,
		"amount", amount,
		"term_months", termMonths,
		"rate", dec.RateMonthly,
		"snapshot", snap.Hash)
	return res, nil
}

func toFloat(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func round2(v float64) float64 {
	return toFloat(decimal.NewFromFloat(v))
}
