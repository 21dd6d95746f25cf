package tools

import (
	"net/http"

	"github.com/kredio/kredio/internal/bankdata"
	"github.com/kredio/kredio/internal/engine"
	"github.com/kredio/kredio/internal/metrics"
)

// toolArgs is the union of every tool's arguments. The widget's glue
// code sent several names for the same field over time; the accessor
// methods below are the single place those aliases are resolved.
type toolArgs struct {
	CustomerID    string   `json:"customer_id"`
	SpokenID      string   `json:"spoken_customer_id"`
	LoanID        string   `json:"loan_id"`
	Amount        float64  `json:"amount"`
	DesiredAmount float64  `json:"desired_loan_amount"`
	TermMonths    int      `json:"term_months"`
	Term          int      `json:"term"`
	MonthlyRate   *float64 `json:"monthly_rate"`
	Terms         []int    `json:"terms"`
}

func (a toolArgs) customer() string {
	if a.CustomerID != "" {
		return a.CustomerID
	}
	return a.SpokenID
}

func (a toolArgs) amount() float64 {
	if a.Amount != 0 {
		return a.Amount
	}
	return a.DesiredAmount
}

func (a toolArgs) term() int {
	if a.TermMonths != 0 {
		return a.TermMonths
	}
	return a.Term
}

type customerNameResult struct {
	OK           bool   `json:"ok"`
	CustomerID   string `json:"customerId"`
	CustomerName string `json:"customerName"`
}

type snapshotResult struct {
	OK       bool                    `json:"ok"`
	Snapshot bankdata.CustomerRecord `json:"snapshot"`
}

type eligibilityResult struct {
	OK               bool     `json:"ok"`
	Approve          bool     `json:"approve"`
	Reasons          []string `json:"reasons"`
	PolicyRate       float64  `json:"policyRate"`
	EstimatedPayment float64  `json:"estimatedPayment"`
	DSR              float64  `json:"dsr"`
	SuggestedAmount  float64  `json:"suggestedAmount,omitempty"`
}

type planResult struct {
	OK       bool               `json:"ok"`
	Summary  engine.PlanSummary `json:"summary"`
	Schedule []engine.PlanEntry `json:"schedule"`
}

type compareResult struct {
	OK          bool                    `json:"ok"`
	Items       []engine.TermComparison `json:"items"`
	RateMonthly float64                 `json:"rateMonthly"`
}

type payoffResult struct {
	OK bool `json:"ok"`
	engine.PayoffQuote
}

type restructureResult struct {
	OK bool `json:"ok"`
	engine.RestructureResult
}

type deferralResult struct {
	OK bool `json:"ok"`
	engine.DeferralResult
}

type applicationResult struct {
	OK              bool            `json:"ok"`
	CustomerID      string          `json:"customerId"`
	CustomerName    string          `json:"customerName,omitempty"`
	Decision        engine.Decision `json:"decision"`
	CustomerSummary string          `json:"customerSummary"`
	SuggestedAmount float64         `json:"suggestedAmount,omitempty"`
}

func (h *Handler) getCustomerName(r *http.Request, args toolArgs) (any, error) {
	c, err := h.engine.ResolveCustomer(r.Context(), args.customer())
	if err != nil {
		return nil, err
	}
	return customerNameResult{OK: true, CustomerID: c.ID, CustomerName: c.Name}, nil
}

func (h *Handler) fetchCustomerSnapshot(r *http.Request, args toolArgs) (any, error) {
	c, err := h.engine.CustomerSnapshot(r.Context(), args.customer())
	if err != nil {
		return nil, err
	}
	return snapshotResult{OK: true, Snapshot: c}, nil
}

func (h *Handler) eligibilityCheck(r *http.Request, args toolArgs) (any, error) {
	res, err := h.engine.EligibilityCheck(r.Context(), args.customer(), args.amount(), args.term())
	if err != nil {
		return nil, err
	}
	return eligibilityResult{
		OK:               true,
		Approve:          res.Approve,
		Reasons:          res.Reasons,
		PolicyRate:       res.RateMonthly,
		EstimatedPayment: res.EstimatedPayment.Round(2).InexactFloat64(),
		DSR:              res.DSR,
		SuggestedAmount:  res.SuggestedAmount.Round(2).InexactFloat64(),
	}, nil
}

func (h *Handler) computeRepaymentPlan(r *http.Request, args toolArgs) (any, error) {
	summary, schedule, err := h.engine.RepaymentPlan(r.Context(), args.amount(), args.term(), args.MonthlyRate, args.customer())
	if err != nil {
		return nil, err
	}
	return planResult{OK: true, Summary: summary, Schedule: schedule}, nil
}

func (h *Handler) compareTerms(r *http.Request, args toolArgs) (any, error) {
	items, rate, err := h.engine.CompareTerms(r.Context(), args.amount(), args.Terms, args.customer())
	if err != nil {
		return nil, err
	}
	return compareResult{OK: true, Items: items, RateMonthly: rate}, nil
}

func (h *Handler) payoffQuote(r *http.Request, args toolArgs) (any, error) {
	quote, err := h.engine.Payoff(r.Context(), args.customer(), args.LoanID)
	if err != nil {
		return nil, err
	}
	return payoffResult{OK: true, PayoffQuote: quote}, nil
}

func (h *Handler) restructureOptions(r *http.Request, args toolArgs) (any, error) {
	res, err := h.engine.RestructureOptions(r.Context(), args.customer(), args.LoanID)
	if err != nil {
		return nil, err
	}
	return restructureResult{OK: true, RestructureResult: res}, nil
}

func (h *Handler) deferralEligibility(r *http.Request, args toolArgs) (any, error) {
	res, err := h.engine.Deferral(r.Context(), args.customer(), args.LoanID)
	if err != nil {
		return nil, err
	}
	return deferralResult{OK: true, DeferralResult: res}, nil
}

func (h *Handler) submitLoanApplication(r *http.Request, args toolArgs) (any, error) {
	res, err := h.engine.SubmitApplication(r.Context(), args.customer(), args.amount(), args.term())
	if err != nil {
		return nil, err
	}
	result := metrics.DecisionRejected
	switch {
	case res.CustomerName == "":
		result = metrics.DecisionUnknownCustomer
	case res.Decision.Approve:
		result = metrics.DecisionApproved
	}
	h.metrics.ObserveDecision(result)
	return applicationResult{
		OK:              true,
		CustomerID:      res.CustomerID,
		CustomerName:    res.CustomerName,
		Decision:        res.Decision,
		CustomerSummary: res.CustomerSummary,
		SuggestedAmount: res.SuggestedAmount,
	}, nil
}
