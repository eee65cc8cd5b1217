package dto

import (
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// RegisterCustomerRequest carries the data for new-customer registration.
type RegisterCustomerRequest struct {
	FirstName     string          `json:"first_name"`
	LastName      string          `json:"last_name"`
	Age           int             `json:"age"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	PhoneNumber   string          `json:"phone_number"`
}

// LoanRequest carries a proposed loan: shared by both decision surfaces.
type LoanRequest struct {
	CustomerID   int64           `json:"customer_id"`
	LoanAmount   decimal.Decimal `json:"loan_amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TermMonths   int             `json:"tenure"`
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// RegisterCustomerResponse echoes the created profile with its derived limit.
type RegisterCustomerResponse struct {
	CustomerID    int64           `json:"customer_id"`
	Name          string          `json:"name"`
	Age           int             `json:"age"`
	MonthlyIncome decimal.Decimal `json:"monthly_income"`
	ApprovedLimit decimal.Decimal `json:"approved_limit"`
	PhoneNumber   string          `json:"phone_number"`
}

// EligibilityResponse is the read-only decision surface's verdict.
type EligibilityResponse struct {
	CustomerID            int64            `json:"customer_id"`
	Approval              bool             `json:"approval"`
	InterestRate          decimal.Decimal  `json:"interest_rate"`
	CorrectedInterestRate *decimal.Decimal `json:"corrected_interest_rate"`
	TermMonths            int              `json:"tenure"`
	MonthlyInstallment    decimal.Decimal  `json:"monthly_installment"`
	Message               string           `json:"message"`
}

// CreateLoanResponse is the persisting decision surface's verdict. LoanID and
// MonthlyInstallment are nil when the loan was not approved.
type CreateLoanResponse struct {
	LoanID             *int64           `json:"loan_id"`
	CustomerID         int64            `json:"customer_id"`
	LoanApproved       bool             `json:"loan_approved"`
	Message            string           `json:"message"`
	MonthlyInstallment *decimal.Decimal `json:"monthly_installment"`
}

// CreditScoreResponse carries the diagnostic score endpoint result.
type CreditScoreResponse struct {
	CustomerID  int64 `json:"customer_id"`
	CreditScore int   `json:"credit_score"`
}

// CustomerSummary is the customer block embedded in a loan detail view.
type CustomerSummary struct {
	CustomerID  int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Age         int    `json:"age"`
	PhoneNumber string `json:"phone_number"`
}

// LoanDetailResponse is the single-loan view.
type LoanDetailResponse struct {
	LoanID             int64           `json:"loan_id"`
	Customer           CustomerSummary `json:"customer"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	TermMonths         int             `json:"tenure"`
}

// CustomerLoanItem is one row of the per-customer loan list.
type CustomerLoanItem struct {
	LoanID             int64           `json:"loan_id"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	MonthlyInstallment decimal.Decimal `json:"monthly_installment"`
	RepaymentsLeft     int             `json:"repayments_left"`
}
