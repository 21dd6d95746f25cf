package policy

// EffectiveRate resolves a customer's monthly interest rate: the base rate
// plus the addon of the risk rule with the highest min_score not exceeding
// the credit score. Equal thresholds keep the first rule in declaration
// order; no matching rule means base rate only.
func EffectiveRate(cfg Config, creditScore int) float64 {
	rate := cfg.BaseMonthlyRate

	matched := false
	bestScore := 0
	addon := 0.0
	for _, rule := range cfg.RiskAddons {
		if rule.MinScore > creditScore {
			continue
		}
		if !matched || rule.MinScore > bestScore {
			matched = true
			bestScore = rule.MinScore
			addon = rule.Addon
		}
	}
	if matched {
		rate += addon
	}
	return rate
}
