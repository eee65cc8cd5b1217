package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/credigo/credit-engine/internal/application/dto"
	"github.com/credigo/credit-engine/internal/domain/event"
	"github.com/credigo/credit-engine/internal/domain/model"
	"github.com/credigo/credit-engine/internal/domain/port"
	"github.com/credigo/credit-engine/internal/domain/service"
	"github.com/credigo/credit-engine/internal/platform/observability"
)

// CreateLoanUseCase runs the underwriting pipeline and, on approval, persists
// the loan and the customer's debt increment as one atomic write.
type CreateLoanUseCase struct {
	deps      decisionDeps
	publisher port.EventPublisher
	metrics   *observability.DecisionMetrics
	logger    *slog.Logger
}

// NewCreateLoanUseCase wires dependencies.
func NewCreateLoanUseCase(
	customers port.CustomerRepository,
	loans port.LoanRepository,
	engine *service.DecisionEngine,
	publisher port.EventPublisher,
	metrics *observability.DecisionMetrics,
	logger *slog.Logger,
) *CreateLoanUseCase {
	return &CreateLoanUseCase{
		deps:      decisionDeps{customers: customers, loans: loans, engine: engine},
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute evaluates a proposed loan and persists it when approved.
func (uc *CreateLoanUseCase) Execute(ctx context.Context, req dto.LoanRequest) (dto.CreateLoanResponse, error) {
	if err := validateLoanRequest(req); err != nil {
		return dto.CreateLoanResponse{}, err
	}

	now := time.Now().UTC()

	// 1. Load the customer and loan views; unknown customer fails here.
	in, err := uc.deps.loadDecisionInput(ctx, req, now)
	if err != nil {
		return dto.CreateLoanResponse{}, err
	}

	// 2. Run the decision pipeline.
	decision, err := uc.deps.engine.Decide(service.EntryCreateLoan, in)
	if err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("evaluate loan: %w", err)
	}

	uc.metrics.ObserveDecision(string(service.EntryCreateLoan), decision.Approved)

	if !decision.Approved {
		uc.publishBestEffort(ctx, event.NewLoanRejected(
			req.CustomerID, req.LoanAmount, req.InterestRate, req.TermMonths, decision.Message,
		))
		return dto.CreateLoanResponse{
			LoanID:             nil,
			CustomerID:         req.CustomerID,
			LoanApproved:       false,
			Message:            decision.Message,
			MonthlyInstallment: nil,
		}, nil
	}

	// 3. Build the loan record with the final (possibly corrected) rate.
	loan, err := model.NewLoan(
		req.CustomerID, req.LoanAmount, decision.FinalRate,
		req.TermMonths, decision.Installment, now,
	)
	if err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("create loan: %w", err)
	}

	// 4. Persist: loan insert + debt increment are one transaction.
	loan, err = uc.deps.loans.CreateWithDebtIncrement(ctx, loan)
	if err != nil {
		return dto.CreateLoanResponse{}, fmt.Errorf("save loan: %w", err)
	}

	// 5. Publish the approval event.
	uc.publishBestEffort(ctx, event.NewLoanApproved(
		loan.ID(), loan.CustomerID(), loan.Principal(), loan.InterestRate(),
		loan.TermMonths(), loan.MonthlyInstallment(), decision.Score,
	))

	loanID := loan.ID()
	installment := loan.MonthlyInstallment()
	return dto.CreateLoanResponse{
		LoanID:             &loanID,
		CustomerID:         req.CustomerID,
		LoanApproved:       true,
		Message:            decision.Message,
		MonthlyInstallment: &installment,
	}, nil
}

// publishBestEffort logs publish failures instead of failing the decision:
// the loan write has already committed and the verdict must stand.
func (uc *CreateLoanUseCase) publishBestEffort(ctx context.Context, evt event.DomainEvent) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		uc.logger.Warn("failed to publish domain event",
			"event_type", evt.EventType(), "aggregate_id", evt.AggregateID(), "error", err)
	}
}
