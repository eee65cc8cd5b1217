package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Customer aggregate root
// ---------------------------------------------------------------------------

var (
	thirtySix      = decimal.NewFromInt(36)
	hundredK       = decimal.NewFromInt(100_000)
	decimalTwo     = decimal.NewFromInt(2)
	decimalZeroTwo = decimal.Zero.Round(2)
)

// Customer is an immutable aggregate. Mutations return a new copy.
type Customer struct {
	id            int64
	firstName     string
	lastName      string
	age           int
	phoneNumber   string
	monthlyIncome decimal.Decimal
	approvedLimit decimal.Decimal
	currentDebt   decimal.Decimal
	createdAt     time.Time
	updatedAt     time.Time
}

// ApprovedLimitFromIncome derives the credit limit as 36x the monthly income,
// rounded half up to the nearest 100,000 currency units. Derived once, at
// registration or ingestion.
func ApprovedLimitFromIncome(monthlyIncome decimal.Decimal) decimal.Decimal {
	return monthlyIncome.Mul(thirtySix).Div(hundredK).Round(0).Mul(hundredK)
}

// NewCustomer creates a customer in its registration state: limit derived
// from income, debt at zero. The ID is assigned by the repository on insert.
func NewCustomer(firstName, lastName string, age int, phoneNumber string, monthlyIncome decimal.Decimal, now time.Time) (Customer, error) {
	if strings.TrimSpace(firstName) == "" {
		return Customer{}, fmt.Errorf("%w: first name is required", ErrValidation)
	}
	if strings.TrimSpace(lastName) == "" {
		return Customer{}, fmt.Errorf("%w: last name is required", ErrValidation)
	}
	if age <= 0 {
		return Customer{}, fmt.Errorf("%w: age must be positive", ErrValidation)
	}
	if strings.TrimSpace(phoneNumber) == "" {
		return Customer{}, fmt.Errorf("%w: phone number is required", ErrValidation)
	}
	if monthlyIncome.IsNegative() {
		return Customer{}, fmt.Errorf("%w: monthly income cannot be negative", ErrValidation)
	}

	return Customer{
		firstName:     firstName,
		lastName:      lastName,
		age:           age,
		phoneNumber:   phoneNumber,
		monthlyIncome: monthlyIncome,
		approvedLimit: ApprovedLimitFromIncome(monthlyIncome),
		currentDebt:   decimalZeroTwo,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// ReconstructCustomer rebuilds a Customer from persistence without side-effects.
func ReconstructCustomer(
	id int64,
	firstName, lastName string,
	age int,
	phoneNumber string,
	monthlyIncome, approvedLimit, currentDebt decimal.Decimal,
	createdAt, updatedAt time.Time,
) Customer {
	return Customer{
		id:            id,
		firstName:     firstName,
		lastName:      lastName,
		age:           age,
		phoneNumber:   phoneNumber,
		monthlyIncome: monthlyIncome,
		approvedLimit: approvedLimit,
		currentDebt:   currentDebt,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// WithID returns a copy carrying the repository-assigned identifier.
func (c Customer) WithID(id int64) Customer {
	next := c
	next.id = id
	return next
}

// AddDebt returns a copy with the outstanding debt increased by amount.
// Applied only inside the create-loan transaction.
func (c Customer) AddDebt(amount decimal.Decimal, now time.Time) Customer {
	next := c
	next.currentDebt = c.currentDebt.Add(amount)
	next.updatedAt = now
	return next
}

// HalfMonthlyIncome is the affordability ceiling: 50% of monthly income.
func (c Customer) HalfMonthlyIncome() decimal.Decimal {
	return c.monthlyIncome.Div(decimalTwo)
}

// ---------------------------------------------------------------------------
// Accessors
// ---------------------------------------------------------------------------

func (c Customer) ID() int64                      { return c.id }
func (c Customer) FirstName() string              { return c.firstName }
func (c Customer) LastName() string               { return c.lastName }
func (c Customer) FullName() string               { return c.firstName + " " + c.lastName }
func (c Customer) Age() int                       { return c.age }
func (c Customer) PhoneNumber() string            { return c.phoneNumber }
func (c Customer) MonthlyIncome() decimal.Decimal { return c.monthlyIncome }
func (c Customer) ApprovedLimit() decimal.Decimal { return c.approvedLimit }
func (c Customer) CurrentDebt() decimal.Decimal   { return c.currentDebt }
func (c Customer) CreatedAt() time.Time           { return c.createdAt }
func (c Customer) UpdatedAt() time.Time           { return c.updatedAt }
