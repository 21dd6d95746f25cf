package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/kredio/kredio/internal/bankdata"
	"github.com/kredio/kredio/internal/finance"
	"github.com/kredio/kredio/internal/policy"
)

// ReasonOK is the single reason reported on an approved evaluation.
const ReasonOK = "OK"

// EligibilityResult is the outcome of the policy checks for one requested
// amount. SuggestedAmount is only meaningful on rejection.
type EligibilityResult struct {
	Approve          bool
	Reasons          []string
	RateMonthly      float64
	EstimatedPayment decimal.Decimal
	DSR              float64
	SuggestedAmount  decimal.Decimal
}

// EvaluateEligibility applies the policy thresholds to a requested amount
// for a known customer. Every failing check contributes a reason; nothing
// short-circuits.
func EvaluateEligibility(c bankdata.CustomerRecord, amount decimal.Decimal, termMonths int, cfg policy.Config) EligibilityResult {
	res := EligibilityResult{RateMonthly: policy.EffectiveRate(cfg, c.CreditScore)}
	var reasons []string

	if c.CreditScore < cfg.Eligibility.MinCreditScore {
		reasons = append(reasons, fmt.Sprintf("credit score %d below minimum %d",
			c.CreditScore, cfg.Eligibility.MinCreditScore))
	}

	if c.DelinquencyDays > cfg.Eligibility.MaxDelinquencyDays {
		reasons = append(reasons, fmt.Sprintf("delinquency of %d days exceeds maximum %d",
			c.DelinquencyDays, cfg.Eligibility.MaxDelinquencyDays))
	}

	limit := decimal.NewFromFloat(cfg.Eligibility.DefaultPreApprovedLimit)
	if c.PreApprovedLimit > 0 {
		limit = decimal.NewFromFloat(c.PreApprovedLimit)
	}
	if amount.GreaterThan(limit) {
		reasons = append(reasons, fmt.Sprintf("requested amount exceeds pre-approved limit of %s",
			limit.StringFixed(2)))
	}

	res.EstimatedPayment = finance.MonthlyPayment(amount, res.RateMonthly, termMonths)
	switch {
	case c.MonthlyIncome > 0:
		dsr := (c.MonthlyDebts + res.EstimatedPayment.InexactFloat64()) / c.MonthlyIncome
		res.DSR = dsr
		if dsr > cfg.Eligibility.MaxDSR {
			reasons = append(reasons, fmt.Sprintf("debt service ratio %.2f exceeds maximum %.2f",
				dsr, cfg.Eligibility.MaxDSR))
		}
	case !cfg.Eligibility.SkipDSRWithoutIncome:
		reasons = append(reasons, "no income on file")
	}

	if len(reasons) == 0 {
		res.Approve = true
		res.Reasons = []string{ReasonOK}
		return res
	}

	res.Reasons = reasons
	res.SuggestedAmount = decimal.Min(amount, limit)
	return res
}
