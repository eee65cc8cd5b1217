package valueobject

import (
	"fmt"
	"time"
)

// ---------------------------------------------------------------------------
// LoanStatus – immutable value object
// ---------------------------------------------------------------------------

// LoanStatus represents the lifecycle stage of a loan record.
type LoanStatus struct {
	value string
}

const (
	loanStatusActive    = "active"
	loanStatusPaid      = "paid"
	loanStatusDefaulted = "defaulted"
)

var (
	LoanStatusActive    = LoanStatus{value: loanStatusActive}
	LoanStatusPaid      = LoanStatus{value: loanStatusPaid}
	LoanStatusDefaulted = LoanStatus{value: loanStatusDefaulted}
)

var validLoanStatuses = map[string]LoanStatus{
	loanStatusActive:    LoanStatusActive,
	loanStatusPaid:      LoanStatusPaid,
	loanStatusDefaulted: LoanStatusDefaulted,
}

// NewLoanStatus creates a LoanStatus from a raw string.
func NewLoanStatus(s string) (LoanStatus, error) {
	v, ok := validLoanStatuses[s]
	if !ok {
		return LoanStatus{}, fmt.Errorf("invalid loan status: %q", s)
	}
	return v, nil
}

// DeriveLoanStatus classifies a historical loan at ingestion time.
// A loan past its end date is "paid" when every installment was on time and
// "defaulted" otherwise; anything still inside its term is "active".
func DeriveLoanStatus(endDate time.Time, emisPaidOnTime, termMonths int, today time.Time) LoanStatus {
	if endDate.Before(today) {
		if emisPaidOnTime == termMonths {
			return LoanStatusPaid
		}
		return LoanStatusDefaulted
	}
	return LoanStatusActive
}

// String returns the string representation of the status.
func (s LoanStatus) String() string { return s.value }

// IsZero returns true if the status has not been initialised.
func (s LoanStatus) IsZero() bool { return s.value == "" }

// Equal returns true when both statuses carry the same value.
func (s LoanStatus) Equal(other LoanStatus) bool { return s.value == other.value }

// IsActive reports whether the loan still counts toward current exposure.
func (s LoanStatus) IsActive() bool { return s.value == loanStatusActive }
