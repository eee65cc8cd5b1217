package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credigo/credit-engine/internal/application/dto"
	"github.com/credigo/credit-engine/internal/application/usecase"
	"github.com/credigo/credit-engine/internal/domain/event"
	"github.com/credigo/credit-engine/internal/domain/model"
)

func TestCreateLoan_ApprovedPersistsAndPublishes(t *testing.T) {
	customers := &mockCustomerRepository{
		findByIDFunc: func(_ context.Context, id int64) (model.Customer, error) {
			return testCustomer(id), nil
		},
	}
	loans := &mockLoanRepository{
		listFunc: func(_ context.Context, customerID int64) ([]model.Loan, error) {
			return strongHistory(customerID), nil
		},
	}
	publisher := &mockEventPublisher{}

	uc := usecase.NewCreateLoanUseCase(customers, loans, testEngine(), publisher, nil, testLogger())

	resp, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   7,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(14),
		TermMonths:   12,
	})
	require.NoError(t, err)

	assert.True(t, resp.LoanApproved)
	require.NotNil(t, resp.LoanID)
	assert.Equal(t, int64(1), *resp.LoanID)
	require.NotNil(t, resp.MonthlyInstallment)
	assert.True(t, resp.MonthlyInstallment.Equal(decimal.RequireFromString("8884.88")))
	assert.Equal(t, "Interest rate corrected to 12% for high credit score.", resp.Message)

	// The persisted loan carries the corrected rate, not the requested one.
	require.Len(t, loans.savedLoans, 1)
	saved := loans.savedLoans[0]
	assert.True(t, saved.InterestRate().Equal(decimal.NewFromInt(12)))
	assert.True(t, saved.IsActive())

	require.Len(t, publisher.publishedEvents, 1)
	approved, ok := publisher.publishedEvents[0].(event.LoanApproved)
	require.True(t, ok)
	assert.Equal(t, int64(1), approved.LoanID)
	assert.Equal(t, 52, approved.CreditScore)
}

func TestCreateLoan_RejectedDoesNotPersist(t *testing.T) {
	customers := &mockCustomerRepository{
		findByIDFunc: func(_ context.Context, id int64) (model.Customer, error) {
			return testCustomer(id), nil
		},
	}
	loans := &mockLoanRepository{}
	publisher := &mockEventPublisher{}

	uc := usecase.NewCreateLoanUseCase(customers, loans, testEngine(), publisher, nil, testLogger())

	resp, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   7,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(14),
		TermMonths:   12,
	})
	require.NoError(t, err)

	assert.False(t, resp.LoanApproved)
	assert.Nil(t, resp.LoanID)
	assert.Nil(t, resp.MonthlyInstallment)
	assert.Equal(t, "Credit score too low for loan approval.", resp.Message)
	assert.Empty(t, loans.savedLoans)

	require.Len(t, publisher.publishedEvents, 1)
	rejected, ok := publisher.publishedEvents[0].(event.LoanRejected)
	require.True(t, ok)
	assert.Equal(t, "Credit score too low for loan approval.", rejected.Reason)
}

func TestCreateLoan_PublishFailureDoesNotFailDecision(t *testing.T) {
	customers := &mockCustomerRepository{
		findByIDFunc: func(_ context.Context, id int64) (model.Customer, error) {
			return testCustomer(id), nil
		},
	}
	loans := &mockLoanRepository{
		listFunc: func(_ context.Context, customerID int64) ([]model.Loan, error) {
			return strongHistory(customerID), nil
		},
	}
	publisher := &mockEventPublisher{
		publishFunc: func(context.Context, ...event.DomainEvent) error {
			return assert.AnError
		},
	}

	uc := usecase.NewCreateLoanUseCase(customers, loans, testEngine(), publisher, nil, testLogger())

	resp, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   7,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(10),
		TermMonths:   12,
	})
	require.NoError(t, err)
	assert.True(t, resp.LoanApproved)
	require.Len(t, loans.savedLoans, 1)
}

func TestCreateLoan_RepositoryFailure(t *testing.T) {
	customers := &mockCustomerRepository{
		findByIDFunc: func(_ context.Context, id int64) (model.Customer, error) {
			return testCustomer(id), nil
		},
	}
	loans := &mockLoanRepository{
		listFunc: func(_ context.Context, customerID int64) ([]model.Loan, error) {
			return strongHistory(customerID), nil
		},
		createFunc: func(context.Context, model.Loan) (model.Loan, error) {
			return model.Loan{}, assert.AnError
		},
	}

	uc := usecase.NewCreateLoanUseCase(customers, loans, testEngine(), &mockEventPublisher{}, nil, testLogger())

	_, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   7,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(10),
		TermMonths:   12,
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestCreateLoan_UnknownCustomer(t *testing.T) {
	uc := usecase.NewCreateLoanUseCase(
		&mockCustomerRepository{}, &mockLoanRepository{}, testEngine(), &mockEventPublisher{}, nil, testLogger(),
	)

	_, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   99,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(10),
		TermMonths:   12,
	})
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
}
