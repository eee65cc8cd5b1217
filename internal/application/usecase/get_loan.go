package usecase

import (
	"context"
	"fmt"

	"github.com/credigo/credit-engine/internal/application/dto"
	"github.com/credigo/credit-engine/internal/domain/port"
)

// GetLoanUseCase retrieves one loan with its owning customer summary.
type GetLoanUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
}

// NewGetLoanUseCase wires dependencies.
func NewGetLoanUseCase(customers port.CustomerRepository, loans port.LoanRepository) *GetLoanUseCase {
	return &GetLoanUseCase{customers: customers, loans: loans}
}

// Execute loads the loan detail view.
func (uc *GetLoanUseCase) Execute(ctx context.Context, loanID int64) (dto.LoanDetailResponse, error) {
	loan, err := uc.loans.FindByID(ctx, loanID)
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("find loan: %w", err)
	}

	customer, err := uc.customers.FindByID(ctx, loan.CustomerID())
	if err != nil {
		return dto.LoanDetailResponse{}, fmt.Errorf("find customer: %w", err)
	}

	return dto.LoanDetailResponse{
		LoanID: loan.ID(),
		Customer: dto.CustomerSummary{
			CustomerID:  customer.ID(),
			FirstName:   customer.FirstName(),
			LastName:    customer.LastName(),
			Age:         customer.Age(),
			PhoneNumber: customer.PhoneNumber(),
		},
		LoanAmount:         loan.Principal(),
		InterestRate:       loan.InterestRate(),
		MonthlyInstallment: loan.MonthlyInstallment(),
		TermMonths:         loan.TermMonths(),
	}, nil
}
