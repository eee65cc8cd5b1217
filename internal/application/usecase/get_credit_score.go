package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/credigo/credit-engine/internal/application/dto"
	"github.com/credigo/credit-engine/internal/domain/port"
	"github.com/credigo/credit-engine/internal/domain/service"
)

// GetCreditScoreUseCase exposes the scorer for diagnostics and admin use.
type GetCreditScoreUseCase struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
	scorer    *service.Scorer
}

// NewGetCreditScoreUseCase wires dependencies.
func NewGetCreditScoreUseCase(
	customers port.CustomerRepository,
	loans port.LoanRepository,
	scorer *service.Scorer,
) *GetCreditScoreUseCase {
	return &GetCreditScoreUseCase{customers: customers, loans: loans, scorer: scorer}
}

// Execute computes the current credit score for a customer. An unknown
// customer is an error, never a silent zero.
func (uc *GetCreditScoreUseCase) Execute(ctx context.Context, customerID int64) (dto.CreditScoreResponse, error) {
	customer, err := uc.customers.FindByID(ctx, customerID)
	if err != nil {
		return dto.CreditScoreResponse{}, fmt.Errorf("find customer: %w", err)
	}

	history, err := uc.loans.ListByCustomer(ctx, customerID)
	if err != nil {
		return dto.CreditScoreResponse{}, fmt.Errorf("list loan history: %w", err)
	}

	score := uc.scorer.Score(customer, history, time.Now().UTC())
	return dto.CreditScoreResponse{CustomerID: customerID, CreditScore: score}, nil
}
