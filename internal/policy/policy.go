// Package policy models the lending policy section of the bank data
// document: pricing, eligibility thresholds, servicing rules and fees.
package policy

import "encoding/json"

// Documented fallbacks applied when the _policies section omits a field.
const (
	DefaultBaseMonthlyRate       = 0.045
	DefaultMaxDSR                = 0.45
	DefaultPreApprovedLimit      = 125000.0
	DefaultMinCreditScore        = 600
	DefaultMaxDelinquencyDays    = 30
	DefaultMaxDeferralsPerYear   = 2
	DefaultPrepaymentPenaltyRate = 0.02
	DefaultRestructuringFee      = 500.0
)

// Rate policy modes for restructuring.
const (
	// RatePolicyCurrent keeps the loan's rate at origination.
	RatePolicyCurrent = "current"
	// RatePolicyReprice uses the greater of the loan's current rate and the
	// customer's freshly resolved risk rate.
	RatePolicyReprice = "reprice"
)

func defaultRestructureTerms() []int { return []int{6, 12, 24, 36} }

// Config is the resolved policy, immutable for the process lifetime. A
// changed policy requires a fresh data load.
type Config struct {
	BaseMonthlyRate float64
	RiskAddons      []RiskAddon
	Eligibility     Eligibility
	Restructuring   Restructuring
	Deferral        Deferral
	Fees            Fees
}

// RiskAddon is one row of the risk-based pricing table.
type RiskAddon struct {
	MinScore int     `json:"min_score"`
	Addon    float64 `json:"addon"`
}

type Eligibility struct {
	MinCreditScore          int
	MaxDelinquencyDays      int
	MaxDSR                  float64
	DefaultPreApprovedLimit float64
	// SkipDSRWithoutIncome treats the debt-service check as passing when no
	// income is on file. Off, the evaluation rejects instead.
	SkipDSRWithoutIncome bool
}

type Restructuring struct {
	Allowed      bool
	AllowedTerms []int
	RatePolicy   string
}

type Deferral struct {
	Allowed    bool
	MaxPerYear int
}

type Fees struct {
	EarlyPrepaymentPenaltyRate float64
	RestructuringFee           float64
}

// rawConfig mirrors Config with optional fields as pointers so absent
// values can fall back to the documented defaults.
type rawConfig struct {
	BaseMonthlyRate *float64    `json:"base_monthly_rate"`
	RiskAddons      []RiskAddon `json:"risk_addons"`
	Eligibility     struct {
		MinCreditScore          *int     `json:"min_credit_score"`
		MaxDelinquencyDays      *int     `json:"max_delinquency_days"`
		MaxDSR                  *float64 `json:"max_dsr"`
		DefaultPreApprovedLimit *float64 `json:"default_pre_approved_limit"`
		SkipDSRWithoutIncome    *bool    `json:"skip_dsr_without_income"`
	} `json:"eligibility"`
	Restructuring struct {
		Allowed      *bool   `json:"allowed"`
		AllowedTerms []int   `json:"allowed_terms"`
		RatePolicy   *string `json:"rate_policy"`
	} `json:"restructuring"`
	Deferral struct {
		Allowed    *bool `json:"allowed"`
		MaxPerYear *int  `json:"max_per_year"`
	} `json:"deferral"`
	Fees struct {
		EarlyPrepaymentPenaltyRate *float64 `json:"early_prepayment_penalty_rate"`
		RestructuringFee           *float64 `json:"restructuring_fee"`
	} `json:"fees"`
}

// Default returns the policy used when the data document carries no
// _policies section at all.
func Default() Config {
	cfg, _ := Decode(nil)
	return cfg
}

// Decode parses a _policies JSON section, resolving every absent field to
// its documented default. A nil or empty section yields the full defaults.
func Decode(data []byte) (Config, error) {
	var raw rawConfig
	if len(data) > 0 {
		if err := json.Unmarshal(data, &raw); err != nil {
			return Config{}, err
		}
	}

	cfg := Config{
		BaseMonthlyRate: floatOr(raw.BaseMonthlyRate, DefaultBaseMonthlyRate),
		RiskAddons:      raw.RiskAddons,
		Eligibility: Eligibility{
			MinCreditScore:          intOr(raw.Eligibility.MinCreditScore, DefaultMinCreditScore),
			MaxDelinquencyDays:      intOr(raw.Eligibility.MaxDelinquencyDays, DefaultMaxDelinquencyDays),
			MaxDSR:                  floatOr(raw.Eligibility.MaxDSR, DefaultMaxDSR),
			DefaultPreApprovedLimit: floatOr(raw.Eligibility.DefaultPreApprovedLimit, DefaultPreApprovedLimit),
			SkipDSRWithoutIncome:    boolOr(raw.Eligibility.SkipDSRWithoutIncome, true),
		},
		Restructuring: Restructuring{
			Allowed:      boolOr(raw.Restructuring.Allowed, true),
			AllowedTerms: raw.Restructuring.AllowedTerms,
			RatePolicy:   stringOr(raw.Restructuring.RatePolicy, RatePolicyCurrent),
		},
		Deferral: Deferral{
			Allowed:    boolOr(raw.Deferral.Allowed, true),
			MaxPerYear: intOr(raw.Deferral.MaxPerYear, DefaultMaxDeferralsPerYear),
		},
		Fees: Fees{
			EarlyPrepaymentPenaltyRate: floatOr(raw.Fees.EarlyPrepaymentPenaltyRate, DefaultPrepaymentPenaltyRate),
			RestructuringFee:           floatOr(raw.Fees.RestructuringFee, DefaultRestructuringFee),
		},
	}

	if len(cfg.Restructuring.AllowedTerms) == 0 {
		cfg.Restructuring.AllowedTerms = defaultRestructureTerms()
	}
	if cfg.Restructuring.RatePolicy != RatePolicyCurrent && cfg.Restructuring.RatePolicy != RatePolicyReprice {
		cfg.Restructuring.RatePolicy = RatePolicyCurrent
	}

	return cfg, nil
}

func floatOr(v *float64, fallback float64) float64 {
	if v != nil {
		return *v
	}
	return fallback
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}

func boolOr(v *bool, fallback bool) bool {
	if v != nil {
		return *v
	}
	return fallback
}

func stringOr(v *string, fallback string) string {
	if v != nil && *v != "" {
		return *v
	}
	return fallback
}
