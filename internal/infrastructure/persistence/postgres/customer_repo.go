package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/credigo/credit-engine/internal/domain/model"
)

// CustomerRepo implements port.CustomerRepository.
type CustomerRepo struct {
	pool *pgxpool.Pool
}

// NewCustomerRepo creates a new PostgreSQL-backed customer repository.
func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

// Create inserts a new customer and returns it with the database-assigned ID.
func (r *CustomerRepo) Create(ctx context.Context, customer model.Customer) (model.Customer, error) {
	query := `
		INSERT INTO customers (
			first_name, last_name, age, phone_number,
			monthly_income, approved_limit, current_debt,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`
	var id int64
	err := r.pool.QueryRow(ctx, query,
		customer.FirstName(), customer.LastName(), customer.Age(), customer.PhoneNumber(),
		customer.MonthlyIncome(), customer.ApprovedLimit(), customer.CurrentDebt(),
		customer.CreatedAt(), customer.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return model.Customer{}, fmt.Errorf("insert customer: %w", err)
	}
	return customer.WithID(id), nil
}

// FindByID retrieves a customer by ID.
func (r *CustomerRepo) FindByID(ctx context.Context, id int64) (model.Customer, error) {
	query := `
		SELECT id, first_name, last_name, age, phone_number,
		       monthly_income, approved_limit, current_debt,
		       created_at, updated_at
		FROM customers
		WHERE id = $1
	`
	customer, err := scanCustomerRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Customer{}, model.ErrCustomerNotFound
		}
		return model.Customer{}, err
	}
	return customer, nil
}

func scanCustomerRow(row pgx.Row) (model.Customer, error) {
	var (
		id                                        int64
		firstName, lastName, phoneNumber          string
		age                                       int
		monthlyIncome, approvedLimit, currentDebt decimal.Decimal
		createdAt, updatedAt                      time.Time
	)
	err := row.Scan(
		&id, &firstName, &lastName, &age, &phoneNumber,
		&monthlyIncome, &approvedLimit, &currentDebt,
		&createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Customer{}, err
		}
		return model.Customer{}, fmt.Errorf("scan customer: %w", err)
	}

	return model.ReconstructCustomer(
		id, firstName, lastName, age, phoneNumber,
		monthlyIncome, approvedLimit, currentDebt,
		createdAt, updatedAt,
	), nil
}
