package model

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	decimalOne     = decimal.NewFromInt(1)
	decimalTwelve  = decimal.NewFromInt(12)
	decimalHundred = decimal.NewFromInt(100)
)

// ComputeInstallment computes the fixed periodic payment (EMI) that amortizes
// principal over termMonths at the given nominal annual rate, expressed in
// percent (e.g. 12.50 = 12.5% p.a.).
//
// The calculation stays in decimal arithmetic throughout:
//
//	r   = (annualRatePercent / 12) / 100
//	emi = principal * r * (1+r)^n / ((1+r)^n - 1)
//
// The result is rounded to 2 decimal places, half up. A zero rate degrades to
// a straight-line split of the principal.
func ComputeInstallment(principal, annualRatePercent decimal.Decimal, termMonths int) (decimal.Decimal, error) {
	if termMonths <= 0 {
		return decimal.Decimal{}, ErrInvalidTerm
	}
	if annualRatePercent.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: interest rate cannot be negative", ErrValidation)
	}
	if principal.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("%w: principal cannot be negative", ErrValidation)
	}

	n := decimal.NewFromInt(int64(termMonths))
	if annualRatePercent.IsZero() {
		return principal.Div(n).Round(2), nil
	}

	r := annualRatePercent.Div(decimalTwelve).Div(decimalHundred)
	factor := decimalOne.Add(r).Pow(n)

	emi := principal.Mul(r).Mul(factor).Div(factor.Sub(decimalOne))
	// decimal.Round rounds half away from zero, which for non-negative money
	// is exactly round-half-up.
	return emi.Round(2), nil
}
