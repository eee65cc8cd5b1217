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
	"github.com/credigo/credit-engine/internal/domain/valueobject"
	platformpg "github.com/credigo/credit-engine/internal/platform/postgres"
)

const loanColumns = `
	id, customer_id, loan_amount, tenure_months, interest_rate,
	monthly_installment, emis_paid_on_time, start_date, end_date,
	status, created_at, updated_at
`

// LoanRepo implements port.LoanRepository.
type LoanRepo struct {
	pool *pgxpool.Pool
}

// NewLoanRepo creates a new PostgreSQL-backed loan repository.
func NewLoanRepo(pool *pgxpool.Pool) *LoanRepo {
	return &LoanRepo{pool: pool}
}

// FindByID retrieves a loan by ID.
func (r *LoanRepo) FindByID(ctx context.Context, id int64) (model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	loan, err := scanLoanRow(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, model.ErrLoanNotFound
		}
		return model.Loan{}, err
	}
	return loan, nil
}

// ListByCustomer returns the customer's complete loan history, oldest first.
func (r *LoanRepo) ListByCustomer(ctx context.Context, customerID int64) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 ORDER BY start_date, id`
	return r.queryLoans(ctx, query, customerID)
}

// ListActiveByCustomer returns only loans currently in active status.
func (r *LoanRepo) ListActiveByCustomer(ctx context.Context, customerID int64) ([]model.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE customer_id = $1 AND status = $2 ORDER BY start_date, id`
	return r.queryLoans(ctx, query, customerID, valueobject.LoanStatusActive.String())
}

// CreateWithDebtIncrement inserts the loan and adds its principal to the
// customer's current debt in a single transaction. The customer row is
// locked first so concurrent approvals serialize on the debt update.
func (r *LoanRepo) CreateWithDebtIncrement(ctx context.Context, loan model.Loan) (model.Loan, error) {
	var created model.Loan
	err := platformpg.WithTransaction(ctx, r.pool, func(q platformpg.Querier) error {
		lockQuery := `SELECT id FROM customers WHERE id = $1 FOR UPDATE`
		var customerID int64
		if err := q.QueryRow(ctx, lockQuery, loan.CustomerID()).Scan(&customerID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return model.ErrCustomerNotFound
			}
			return fmt.Errorf("lock customer: %w", err)
		}

		insertQuery := `
			INSERT INTO loans (
				customer_id, loan_amount, tenure_months, interest_rate,
				monthly_installment, emis_paid_on_time, start_date, end_date,
				status, created_at, updated_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
			RETURNING id
		`
		var id int64
		err := q.QueryRow(ctx, insertQuery,
			loan.CustomerID(), loan.Principal(), loan.TermMonths(), loan.InterestRate(),
			loan.MonthlyInstallment(), loan.EmisPaidOnTime(), loan.StartDate(), loan.EndDate(),
			loan.Status().String(), loan.CreatedAt(), loan.UpdatedAt(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("insert loan: %w", err)
		}

		debtQuery := `UPDATE customers SET current_debt = current_debt + $1, updated_at = $2 WHERE id = $3`
		if _, err := q.Exec(ctx, debtQuery, loan.Principal(), loan.UpdatedAt(), loan.CustomerID()); err != nil {
			return fmt.Errorf("increment customer debt: %w", err)
		}

		created = loan.WithID(id)
		return nil
	})
	if err != nil {
		return model.Loan{}, err
	}
	return created, nil
}

// ---------------------------------------------------------------------------
// internal helpers
// ---------------------------------------------------------------------------

func (r *LoanRepo) queryLoans(ctx context.Context, query string, args ...any) ([]model.Loan, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query loans: %w", err)
	}
	defer rows.Close()

	var loans []model.Loan
	for rows.Next() {
		loan, err := scanLoanRow(rows)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, rows.Err()
}

func scanLoanRow(s interface{ Scan(dest ...any) error }) (model.Loan, error) {
	var (
		id, customerID                           int64
		principal                                decimal.Decimal
		termMonths                               int
		interestRate, monthlyInstallment         decimal.Decimal
		emisPaidOnTime                           int
		startDate, endDate, createdAt, updatedAt time.Time
		statusStr                                string
	)

	err := s.Scan(
		&id, &customerID, &principal, &termMonths, &interestRate,
		&monthlyInstallment, &emisPaidOnTime, &startDate, &endDate,
		&statusStr, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Loan{}, err
		}
		return model.Loan{}, fmt.Errorf("scan loan: %w", err)
	}

	status, err := valueobject.NewLoanStatus(statusStr)
	if err != nil {
		return model.Loan{}, fmt.Errorf("parse loan status: %w", err)
	}

	return model.ReconstructLoan(
		id, customerID, principal, termMonths,
		interestRate, monthlyInstallment, emisPaidOnTime,
		startDate, endDate, status, createdAt, updatedAt,
	), nil
}
