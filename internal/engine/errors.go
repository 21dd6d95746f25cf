package engine

import "errors"

// Error values whose text is the wire code surfaced to the widget as
// {ok:false, error:<code>}. Anything not in this set is reported as
// unexpected_error at the tool boundary.
var (
	ErrCustomerNotFound = errors.New("customer_not_found")
	ErrLoanNotFound     = errors.New("loan_not_found")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidTerm      = errors.New("invalid_term")
	ErrInvalidInputs    = errors.New("invalid_inputs")
	ErrInvalidTerms     = errors.New("invalid_terms")
	ErrNotAllowed       = errors.New("not_allowed")
)
