package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credigo/credit-engine/internal/application/dto"
	"github.com/credigo/credit-engine/internal/application/usecase"
	"github.com/credigo/credit-engine/internal/domain/model"
)

func TestCheckEligibility_Approved(t *testing.T) {
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

	uc := usecase.NewCheckEligibilityUseCase(customers, loans, testEngine(), nil)

	resp, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   7,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(14),
		TermMonths:   12,
	})
	require.NoError(t, err)

	assert.True(t, resp.Approval)
	assert.Equal(t, int64(7), resp.CustomerID)
	assert.True(t, resp.InterestRate.Equal(decimal.NewFromInt(14)), "requested rate is echoed")
	require.NotNil(t, resp.CorrectedInterestRate)
	assert.True(t, resp.CorrectedInterestRate.Equal(decimal.NewFromInt(12)))
	assert.True(t, resp.MonthlyInstallment.Equal(decimal.RequireFromString("8884.88")))
}

func TestCheckEligibility_RejectedLowScore(t *testing.T) {
	customers := &mockCustomerRepository{
		findByIDFunc: func(_ context.Context, id int64) (model.Customer, error) {
			return testCustomer(id), nil
		},
	}

	uc := usecase.NewCheckEligibilityUseCase(customers, &mockLoanRepository{}, testEngine(), nil)

	resp, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   7,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(14),
		TermMonths:   12,
	})
	require.NoError(t, err)

	assert.False(t, resp.Approval)
	assert.True(t, resp.MonthlyInstallment.IsZero())
	assert.Equal(t, "Credit score too low for loan approval.", resp.Message)
}

func TestCheckEligibility_UnknownCustomer(t *testing.T) {
	uc := usecase.NewCheckEligibilityUseCase(&mockCustomerRepository{}, &mockLoanRepository{}, testEngine(), nil)

	_, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   99,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(14),
		TermMonths:   12,
	})
	assert.ErrorIs(t, err, model.ErrCustomerNotFound)
}

func TestCheckEligibility_Validation(t *testing.T) {
	uc := usecase.NewCheckEligibilityUseCase(&mockCustomerRepository{}, &mockLoanRepository{}, testEngine(), nil)

	_, err := uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   7,
		LoanAmount:   decimal.NewFromInt(100_000),
		InterestRate: decimal.NewFromInt(14),
		TermMonths:   0,
	})
	assert.ErrorIs(t, err, model.ErrInvalidTerm)

	_, err = uc.Execute(context.Background(), dto.LoanRequest{
		CustomerID:   7,
		LoanAmount:   decimal.Zero,
		InterestRate: decimal.NewFromInt(14),
		TermMonths:   12,
	})
	assert.ErrorIs(t, err, model.ErrValidation)
}
