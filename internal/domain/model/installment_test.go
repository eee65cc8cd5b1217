package model_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/credigo/credit-engine/internal/domain/model"
)

func TestComputeInstallment_ZeroRate(t *testing.T) {
	emi, err := model.ComputeInstallment(decimal.NewFromInt(12_000), decimal.Zero, 12)
	require.NoError(t, err)
	assert.True(t, emi.Equal(decimal.NewFromInt(1_000)), "got %s", emi)

	// Straight-line split still rounds to currency precision.
	emi, err = model.ComputeInstallment(decimal.NewFromInt(10_000), decimal.Zero, 3)
	require.NoError(t, err)
	assert.True(t, emi.Equal(decimal.RequireFromString("3333.33")), "got %s", emi)
}

func TestComputeInstallment_KnownValue(t *testing.T) {
	emi, err := model.ComputeInstallment(decimal.NewFromInt(100_000), decimal.NewFromInt(12), 12)
	require.NoError(t, err)
	assert.True(t, emi.Equal(decimal.RequireFromString("8884.88")), "got %s", emi)
}

func TestComputeInstallment_InvalidTerm(t *testing.T) {
	_, err := model.ComputeInstallment(decimal.NewFromInt(100_000), decimal.NewFromInt(12), 0)
	assert.ErrorIs(t, err, model.ErrInvalidTerm)

	_, err = model.ComputeInstallment(decimal.NewFromInt(100_000), decimal.NewFromInt(12), -6)
	assert.ErrorIs(t, err, model.ErrInvalidTerm)
}

func TestComputeInstallment_NegativeInputs(t *testing.T) {
	_, err := model.ComputeInstallment(decimal.NewFromInt(100_000), decimal.NewFromInt(-1), 12)
	assert.ErrorIs(t, err, model.ErrValidation)

	_, err = model.ComputeInstallment(decimal.NewFromInt(-100_000), decimal.NewFromInt(12), 12)
	assert.ErrorIs(t, err, model.ErrValidation)
}

// The EMI must amortize the loan: applying interest and subtracting the
// installment each period should land the balance within a few cents of zero
// after the last payment.
func TestComputeInstallment_AmortizesToZero(t *testing.T) {
	cases := []struct {
		principal int64
		rate      string
		term      int
	}{
		{100_000, "12", 12},
		{250_000, "16.50", 24},
		{1_000_000, "8.75", 60},
		{35_000, "22", 6},
	}

	twelve := decimal.NewFromInt(12)
	hundred := decimal.NewFromInt(100)

	for _, tc := range cases {
		principal := decimal.NewFromInt(tc.principal)
		rate := decimal.RequireFromString(tc.rate)

		emi, err := model.ComputeInstallment(principal, rate, tc.term)
		require.NoError(t, err)

		r := rate.Div(twelve).Div(hundred)
		balance := principal
		for i := 0; i < tc.term; i++ {
			balance = balance.Mul(decimal.NewFromInt(1).Add(r)).Sub(emi)
		}

		tolerance := decimal.RequireFromString("0.01").Mul(decimal.NewFromInt(int64(tc.term)))
		assert.True(t, balance.Abs().LessThanOrEqual(tolerance),
			"principal=%d rate=%s term=%d: residual balance %s", tc.principal, tc.rate, tc.term, balance)
	}
}
