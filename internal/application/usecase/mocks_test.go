package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credigo/credit-engine/internal/domain/event"
	"github.com/credigo/credit-engine/internal/domain/model"
	"github.com/credigo/credit-engine/internal/domain/service"
	"github.com/credigo/credit-engine/internal/domain/valueobject"
)

// --- Mock implementations ---

type mockCustomerRepository struct {
	createFunc     func(ctx context.Context, customer model.Customer) (model.Customer, error)
	findByIDFunc   func(ctx context.Context, id int64) (model.Customer, error)
	savedCustomers []model.Customer
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer model.Customer) (model.Customer, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, customer)
	}
	created := customer.WithID(int64(len(m.savedCustomers) + 1))
	m.savedCustomers = append(m.savedCustomers, created)
	return created, nil
}

func (m *mockCustomerRepository) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Customer{}, model.ErrCustomerNotFound
}

type mockLoanRepository struct {
	findByIDFunc   func(ctx context.Context, id int64) (model.Loan, error)
	listFunc       func(ctx context.Context, customerID int64) ([]model.Loan, error)
	listActiveFunc func(ctx context.Context, customerID int64) ([]model.Loan, error)
	createFunc     func(ctx context.Context, loan model.Loan) (model.Loan, error)
	savedLoans     []model.Loan
}

func (m *mockLoanRepository) FindByID(ctx context.Context, id int64) (model.Loan, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return model.Loan{}, model.ErrLoanNotFound
}

func (m *mockLoanRepository) ListByCustomer(ctx context.Context, customerID int64) ([]model.Loan, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *mockLoanRepository) ListActiveByCustomer(ctx context.Context, customerID int64) ([]model.Loan, error) {
	if m.listActiveFunc != nil {
		return m.listActiveFunc(ctx, customerID)
	}
	return nil, nil
}

func (m *mockLoanRepository) CreateWithDebtIncrement(ctx context.Context, loan model.Loan) (model.Loan, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, loan)
	}
	created := loan.WithID(int64(len(m.savedLoans) + 1))
	m.savedLoans = append(m.savedLoans, created)
	return created, nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

// --- Fixtures ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEngine() *service.DecisionEngine {
	return service.NewDecisionEngine(service.NewScorer(testLogger()))
}

func testCustomer(id int64) model.Customer {
	now := time.Now().UTC()
	return model.ReconstructCustomer(
		id, "Asha", "Rao", 31, "9876543210",
		decimal.NewFromInt(100_000), decimal.NewFromInt(3_600_000), decimal.Zero,
		now, now,
	)
}

// paidLoan builds a fully repaid historical loan.
func paidLoan(id, customerID int64, principal int64) model.Loan {
	start := time.Now().UTC().AddDate(-2, 0, 0)
	return model.ReconstructLoan(
		id, customerID,
		decimal.NewFromInt(principal), 12,
		decimal.NewFromInt(12), decimal.NewFromInt(principal/12),
		12,
		start, start.AddDate(0, 12, 0),
		valueobject.LoanStatusPaid,
		start, start,
	)
}

// strongHistory scores in the top tier: on-time 20, count 20, volume 12.
func strongHistory(customerID int64) []model.Loan {
	var history []model.Loan
	for i := int64(1); i <= 4; i++ {
		history = append(history, paidLoan(i, customerID, 30_000))
	}
	return history
}
