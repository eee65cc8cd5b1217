package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/credigo/credit-engine/internal/application/dto"
	"github.com/credigo/credit-engine/internal/domain/port"
	"github.com/credigo/credit-engine/internal/domain/service"
	"github.com/credigo/credit-engine/internal/platform/observability"
)

// CheckEligibilityUseCase runs the underwriting pipeline read-only: it never
// persists anything, whatever the verdict.
type CheckEligibilityUseCase struct {
	deps    decisionDeps
	metrics *observability.DecisionMetrics
}

// NewCheckEligibilityUseCase wires dependencies.
func NewCheckEligibilityUseCase(
	customers port.CustomerRepository,
	loans port.LoanRepository,
	engine *service.DecisionEngine,
	metrics *observability.DecisionMetrics,
) *CheckEligibilityUseCase {
	return &CheckEligibilityUseCase{
		deps:    decisionDeps{customers: customers, loans: loans, engine: engine},
		metrics: metrics,
	}
}

// Execute evaluates a proposed loan without side effects.
func (uc *CheckEligibilityUseCase) Execute(ctx context.Context, req dto.LoanRequest) (dto.EligibilityResponse, error) {
	if err := validateLoanRequest(req); err != nil {
		return dto.EligibilityResponse{}, err
	}

	in, err := uc.deps.loadDecisionInput(ctx, req, time.Now().UTC())
	if err != nil {
		return dto.EligibilityResponse{}, err
	}

	decision, err := uc.deps.engine.Decide(service.EntryEligibility, in)
	if err != nil {
		return dto.EligibilityResponse{}, fmt.Errorf("evaluate eligibility: %w", err)
	}

	uc.metrics.ObserveDecision(string(service.EntryEligibility), decision.Approved)

	return dto.EligibilityResponse{
		CustomerID:            req.CustomerID,
		Approval:              decision.Approved,
		InterestRate:          req.InterestRate,
		CorrectedInterestRate: decision.CorrectedRate,
		TermMonths:            req.TermMonths,
		MonthlyInstallment:    decision.Installment,
		Message:               decision.Message,
	}, nil
}
