package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credigo/credit-engine/internal/application/dto"
	"github.com/credigo/credit-engine/internal/domain/model"
	"github.com/credigo/credit-engine/internal/domain/port"
	"github.com/credigo/credit-engine/internal/domain/service"
)

// decisionDeps bundles the collaborators both decision surfaces share.
type decisionDeps struct {
	customers port.CustomerRepository
	loans     port.LoanRepository
	engine    *service.DecisionEngine
}

// validateLoanRequest rejects malformed proposals before any lookup.
func validateLoanRequest(req dto.LoanRequest) error {
	if req.CustomerID <= 0 {
		return fmt.Errorf("%w: customer ID is required", model.ErrValidation)
	}
	if req.LoanAmount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: loan amount must be positive", model.ErrValidation)
	}
	if req.TermMonths <= 0 {
		return model.ErrInvalidTerm
	}
	if req.InterestRate.IsNegative() {
		return fmt.Errorf("%w: interest rate cannot be negative", model.ErrValidation)
	}
	return nil
}

// loadDecisionInput resolves the customer and both loan views. The customer
// lookup runs first so an unknown ID fails before Stage 1 on either surface.
func (d decisionDeps) loadDecisionInput(ctx context.Context, req dto.LoanRequest, now time.Time) (service.DecisionInput, error) {
	customer, err := d.customers.FindByID(ctx, req.CustomerID)
	if err != nil {
		return service.DecisionInput{}, fmt.Errorf("find customer: %w", err)
	}

	activeLoans, err := d.loans.ListActiveByCustomer(ctx, req.CustomerID)
	if err != nil {
		return service.DecisionInput{}, fmt.Errorf("list active loans: %w", err)
	}

	history, err := d.loans.ListByCustomer(ctx, req.CustomerID)
	if err != nil {
		return service.DecisionInput{}, fmt.Errorf("list loan history: %w", err)
	}

	return service.DecisionInput{
		Customer:      customer,
		ActiveLoans:   activeLoans,
		LoanHistory:   history,
		LoanAmount:    req.LoanAmount,
		RequestedRate: req.InterestRate,
		TermMonths:    req.TermMonths,
		Now:           now,
	}, nil
}
