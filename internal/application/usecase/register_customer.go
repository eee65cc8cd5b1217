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
)

// RegisterCustomerUseCase creates a customer profile. The approved limit is
// derived from income exactly once, here; debt starts at zero.
type RegisterCustomerUseCase struct {
	customers port.CustomerRepository
	publisher port.EventPublisher
	logger    *slog.Logger
}

// NewRegisterCustomerUseCase wires dependencies.
func NewRegisterCustomerUseCase(
	customers port.CustomerRepository,
	publisher port.EventPublisher,
	logger *slog.Logger,
) *RegisterCustomerUseCase {
	return &RegisterCustomerUseCase{customers: customers, publisher: publisher, logger: logger}
}

// Execute registers a new customer.
func (uc *RegisterCustomerUseCase) Execute(ctx context.Context, req dto.RegisterCustomerRequest) (dto.RegisterCustomerResponse, error) {
	customer, err := model.NewCustomer(
		req.FirstName, req.LastName, req.Age, req.PhoneNumber, req.MonthlyIncome, time.Now().UTC(),
	)
	if err != nil {
		return dto.RegisterCustomerResponse{}, fmt.Errorf("create customer: %w", err)
	}

	customer, err = uc.customers.Create(ctx, customer)
	if err != nil {
		return dto.RegisterCustomerResponse{}, fmt.Errorf("save customer: %w", err)
	}

	if uc.publisher != nil {
		evt := event.NewCustomerRegistered(customer.ID(), customer.MonthlyIncome(), customer.ApprovedLimit())
		if err := uc.publisher.Publish(ctx, evt); err != nil {
			uc.logger.Warn("failed to publish domain event",
				"event_type", evt.EventType(), "aggregate_id", evt.AggregateID(), "error", err)
		}
	}

	return dto.RegisterCustomerResponse{
		CustomerID:    customer.ID(),
		Name:          customer.FullName(),
		Age:           customer.Age(),
		MonthlyIncome: customer.MonthlyIncome(),
		ApprovedLimit: customer.ApprovedLimit(),
		PhoneNumber:   customer.PhoneNumber(),
	}, nil
}
