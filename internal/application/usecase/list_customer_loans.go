package usecase

import (
	"context"
	"fmt"

	"github.com/credigo/credit-engine/internal/application/dto"
	"github.com/credigo/credit-engine/internal/domain/port"
)

// ListCustomerLoansUseCase lists a customer's loans with repayments left.
type ListCustomerLoansUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
}

// NewListCustomerLoansUseCase wires dependencies.
func NewListCustomerLoansUseCase(customers port.CustomerRepository, loans port.LoanRepository) *ListCustomerLoansUseCase {
	return &ListCustomerLoansUseCase{customers: customers, loans: loans}
}

// Execute returns all loans belonging to the customer.
func (uc *ListCustomerLoansUseCase) Execute(ctx context.Context, customerID int64) ([]dto.CustomerLoanItem, error) {
	// Resolve the customer first so an unknown ID is a not-found, not an
	// empty list.
	if _, err := uc.customers.FindByID(ctx, customerID); err != nil {
		return nil, fmt.Errorf("find customer: %w", err)
	}

	loans, err := uc.loans.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("list loans: %w", err)
	}

	items := make([]dto.CustomerLoanItem, 0, len(loans))
	for _, l := range loans {
		items = append(items, dto.CustomerLoanItem{
			LoanID:             l.ID(),
			LoanAmount:         l.Principal(),
			InterestRate:       l.InterestRate(),
			MonthlyInstallment: l.MonthlyInstallment(),
			RepaymentsLeft:     l.RepaymentsLeft(),
		})
	}
	return items, nil
}
