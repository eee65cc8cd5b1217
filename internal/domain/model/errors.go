package model

import "errors"

// Domain sentinel errors. Use-case and presentation layers branch on these
// with errors.Is.
var (
	// ErrCustomerNotFound is returned when a customer ID resolves to nothing.
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrLoanNotFound is returned when a loan ID resolves to nothing.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrInvalidTerm is returned for a loan term of zero or fewer periods.
	ErrInvalidTerm = errors.New("loan term must be at least one period")

	// ErrValidation marks malformed client input.
	ErrValidation = errors.New("validation failed")
)
