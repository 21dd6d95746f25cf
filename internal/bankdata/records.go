// Package bankdata loads and serves the customer/policy data document.
package bankdata

// CustomerRecord is one customer in the bank data document, read-only
// after load.
type CustomerRecord struct {
	ID               string       `json:"customer_id"`
	Name             string       `json:"name"`
	CreditScore      int          `json:"credit_score"`
	DelinquencyDays  int          `json:"delinquency_days"`
	MonthlyIncome    float64      `json:"monthly_income"`
	MonthlyDebts     float64      `json:"monthly_debts"`
	PreApprovedLimit float64      `json:"pre_approved_limit,omitempty"`
	Loans            []LoanRecord `json:"loans,omitempty"`
}

// LoanRecord is an existing loan of a customer.
type LoanRecord struct {
	LoanID           string  `json:"loan_id"`
	Principal        float64 `json:"principal"`
	RemainingBalance float64 `json:"remaining_balance"`
	MonthlyRate      float64 `json:"monthly_rate"`
	DeferralsUsed    int     `json:"deferrals_used"`
}

// Loan returns the customer's loan with the given id.
func (c CustomerRecord) Loan(loanID string) (LoanRecord, bool) {
	for _, loan := range c.Loans {
		if loan.LoanID == loanID {
			return loan, true
		}
	}
	return LoanRecord{}, false
}
