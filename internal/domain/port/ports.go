package port

import (
	"context"

	"github.com/credigo/credit-engine/internal/domain/event"
	"github.com/credigo/credit-engine/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// CustomerRepository persists and retrieves customer profiles.
type CustomerRepository interface {
	// Create inserts a new customer and returns it with the assigned ID.
	Create(ctx context.Context, customer model.Customer) (model.Customer, error)

	// FindByID returns model.ErrCustomerNotFound when the ID is unknown.
	FindByID(ctx context.Context, id int64) (model.Customer, error)
}

// LoanRepository persists and retrieves loan records.
type LoanRepository interface {
	// FindByID returns model.ErrLoanNotFound when the ID is unknown.
	FindByID(ctx context.Context, id int64) (model.Loan, error)

	// ListByCustomer returns the customer's full loan history.
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Loan, error)

	// ListActiveByCustomer returns only loans in active status.
	ListActiveByCustomer(ctx context.Context, customerID int64) ([]model.Loan, error)

	// CreateWithDebtIncrement inserts the loan and adds its principal to the
	// owning customer's current debt in one atomic transaction, returning the
	// loan with its assigned ID. This is the only write path of the decision
	// core.
	CreateWithDebtIncrement(ctx context.Context, loan model.Loan) (model.Loan, error)
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
