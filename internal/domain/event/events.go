package event

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Domain event infrastructure
// ---------------------------------------------------------------------------

// DomainEvent is the interface all domain events implement.
type DomainEvent interface {
	EventID() string
	EventType() string
	AggregateID() string
	AggregateType() string
	OccurredAt() time.Time
}

// BaseEvent provides the common DomainEvent implementation.
type BaseEvent struct {
	ID        string    `json:"event_id"`
	Type      string    `json:"event_type"`
	Aggregate string    `json:"aggregate_id"`
	AggType   string    `json:"aggregate_type"`
	At        time.Time `json:"occurred_at"`
}

// NewBaseEvent creates a BaseEvent with a generated UUID and the current time.
func NewBaseEvent(eventType, aggregateID, aggregateType string) BaseEvent {
	return BaseEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Aggregate: aggregateID,
		AggType:   aggregateType,
		At:        time.Now().UTC(),
	}
}

func (e BaseEvent) EventID() string       { return e.ID }
func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) AggregateID() string   { return e.Aggregate }
func (e BaseEvent) AggregateType() string { return e.AggType }
func (e BaseEvent) OccurredAt() time.Time { return e.At }

// ---------------------------------------------------------------------------
// Customer events
// ---------------------------------------------------------------------------

// CustomerRegistered is raised when a new customer profile is created.
type CustomerRegistered struct {
	BaseEvent
	CustomerID    int64           `json:"customer_id"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
}

func NewCustomerRegistered(customerID int64, monthlyIncome, approvedLimit decimal.Decimal) CustomerRegistered {
	return CustomerRegistered{
		BaseEvent:     NewBaseEvent("credit.customer.registered", formatID(customerID), "Customer"),
		CustomerID:    customerID,
		MonthlyIncome: monthlyIncome,
		ApprovedLimit: approvedLimit,
	}
}

// ---------------------------------------------------------------------------
// Underwriting events
// ---------------------------------------------------------------------------

// LoanApproved is raised when a create-loan decision approves and persists a
// new loan.
type LoanApproved struct {
	BaseEvent
	LoanID             int64           `json:"loan_id"`
	CustomerID         int64           `json:"customer_id"`
	Principal          decimal.Decimal `json:"principal"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	TermMonths         int             `json:"term_months"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	CreditScore        int             `json:"credit_score"`
}

func NewLoanApproved(
	loanID, customerID int64,
	principal, interestRate decimal.Decimal,
	termMonths int,
	monthlyInstallment decimal.Decimal,
	creditScore int,
) LoanApproved {
	return LoanApproved{
		BaseEvent:          NewBaseEvent("credit.loan.approved", formatID(loanID), "Loan"),
		LoanID:             loanID,
		CustomerID:         customerID,
		Principal:          principal,
		InterestRate:       interestRate,
		TermMonths:         termMonths,
		MonthlyInstallment: monthlyInstallment,
		CreditScore:        creditScore,
	}
}

// LoanRejected is raised when a create-loan decision rejects the request.
type LoanRejected struct {
	BaseEvent
	CustomerID    int64           `json:"customer_id"`
	Principal     decimal.Decimal `json:"principal"`
	RequestedRate decimal.Decimal `json:"requested_rate"`
	TermMonths    int             `json:"term_months"`
	Reason        string          `json:"reason"`
}

func NewLoanRejected(
	customerID int64,
	principal, requestedRate decimal.Decimal,
	termMonths int,
	reason string,
) LoanRejected {
	return LoanRejected{
		BaseEvent:     NewBaseEvent("credit.loan.rejected", formatID(customerID), "Customer"),
		CustomerID:    customerID,
		Principal:     principal,
		RequestedRate: requestedRate,
		TermMonths:    termMonths,
		Reason:        reason,
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
