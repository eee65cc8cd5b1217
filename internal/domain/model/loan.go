package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credigo/credit-engine/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Loan aggregate root
// ---------------------------------------------------------------------------

// Loan is an immutable record of an approved (or historically ingested) loan.
type Loan struct {
	id                 int64
	customerID         int64
	principal          decimal.Decimal
	termMonths         int
	interestRate       decimal.Decimal
	monthlyInstallment decimal.Decimal
	emisPaidOnTime     int
	startDate          time.Time
	endDate            time.Time
	status             valueobject.LoanStatus
	createdAt          time.Time
	updatedAt          time.Time
}

// NewLoan creates a freshly approved loan: active, no installments paid yet,
// running from today to today plus the term. The ID is assigned on insert.
func NewLoan(
	customerID int64,
	principal decimal.Decimal,
	interestRate decimal.Decimal,
	termMonths int,
	monthlyInstallment decimal.Decimal,
	now time.Time,
) (Loan, error) {
	if customerID <= 0 {
		return Loan{}, fmt.Errorf("%w: customer ID is required", ErrValidation)
	}
	if principal.LessThanOrEqual(decimal.Zero) {
		return Loan{}, fmt.Errorf("%w: principal must be positive", ErrValidation)
	}
	if termMonths <= 0 {
		return Loan{}, ErrInvalidTerm
	}
	if interestRate.IsNegative() {
		return Loan{}, fmt.Errorf("%w: interest rate cannot be negative", ErrValidation)
	}

	start := now.Truncate(24 * time.Hour)
	return Loan{
		customerID:         customerID,
		principal:          principal,
		termMonths:         termMonths,
		interestRate:       interestRate,
		monthlyInstallment: monthlyInstallment,
		emisPaidOnTime:     0,
		startDate:          start,
		endDate:            start.AddDate(0, termMonths, 0),
		status:             valueobject.LoanStatusActive,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructLoan rebuilds a Loan from persistence or bulk ingestion.
func ReconstructLoan(
	id, customerID int64,
	principal decimal.Decimal,
	termMonths int,
	interestRate, monthlyInstallment decimal.Decimal,
	emisPaidOnTime int,
	startDate, endDate time.Time,
	status valueobject.LoanStatus,
	createdAt, updatedAt time.Time,
) Loan {
	return Loan{
		id:                 id,
		customerID:         customerID,
		principal:          principal,
		termMonths:         termMonths,
		interestRate:       interestRate,
		monthlyInstallment: monthlyInstallment,
		emisPaidOnTime:     emisPaidOnTime,
		startDate:          startDate,
		endDate:            endDate,
		status:             status,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// WithID returns a copy carrying the repository-assigned identifier.
func (l Loan) WithID(id int64) Loan {
	next := l
	next.id = id
	return next
}

// RepaymentsLeft is how many installments remain, floored at zero.
func (l Loan) RepaymentsLeft() int {
	left := l.termMonths - l.emisPaidOnTime
	if left < 0 {
		return 0
	}
	return left
}

// FullyRepaidOnTime reports whether every installment was paid on schedule.
func (l Loan) FullyRepaidOnTime() bool {
	return l.emisPaidOnTime >= l.termMonths
}

// StartedInYear reports whether the loan's start date falls in the given
// calendar year.
func (l Loan) StartedInYear(year int) bool {
	return l.startDate.Year() == year
}

// IsActive reports whether the loan counts toward current exposure.
func (l Loan) IsActive() bool { return l.status.IsActive() }

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (l Loan) ID() int64                           { return l.id }
func (l Loan) CustomerID() int64                   { return l.customerID }
func (l Loan) Principal() decimal.Decimal          { return l.principal }
func (l Loan) TermMonths() int                     { return l.termMonths }
func (l Loan) InterestRate() decimal.Decimal       { return l.interestRate }
func (l Loan) MonthlyInstallment() decimal.Decimal { return l.monthlyInstallment }
func (l Loan) EmisPaidOnTime() int                 { return l.emisPaidOnTime }
func (l Loan) StartDate() time.Time                { return l.startDate }
func (l Loan) EndDate() time.Time                  { return l.endDate }
func (l Loan) Status() valueobject.LoanStatus      { return l.status }
func (l Loan) CreatedAt() time.Time                { return l.createdAt }
func (l Loan) UpdatedAt() time.Time                { return l.updatedAt }

// SumActivePrincipal totals the principal of active loans in the slice.
func SumActivePrincipal(loans []Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		if l.IsActive() {
			total = total.Add(l.principal)
		}
	}
	return total
}

// SumActiveInstallments totals the monthly installments of active loans.
func SumActiveInstallments(loans []Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		if l.IsActive() {
			total = total.Add(l.monthlyInstallment)
		}
	}
	return total
}
