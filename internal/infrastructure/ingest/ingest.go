// Package ingest bulk-loads historical customer and loan records from CSV
// exports. It derives the fields the decision core depends on (approved
// limit, loan status, current debt) rather than trusting them from the file.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/credigo/credit-engine/internal/domain/model"
	"github.com/credigo/credit-engine/internal/domain/valueobject"
	platformpg "github.com/credigo/credit-engine/internal/platform/postgres"
)

const dateLayout = "2006-01-02"

// CustomerRow is one parsed line of the customer export.
type CustomerRow struct {
	CustomerID    int64
	FirstName     string
	LastName      string
	Age           int
	PhoneNumber   string
	MonthlySalary decimal.Decimal
}

// LoanRow is one parsed line of the loan export.
type LoanRow struct {
	LoanID         int64
	CustomerID     int64
	LoanAmount     decimal.Decimal
	TenureMonths   int
	InterestRate   decimal.Decimal
	MonthlyPayment decimal.Decimal
	EmisPaidOnTime int
	StartDate      time.Time
	EndDate        time.Time
}

// Report summarises one ingestion batch.
type Report struct {
	Inserted int
	Skipped  int
}

// Ingestor loads historical records into PostgreSQL.
type Ingestor struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
	now    func() time.Time
}

// NewIngestor creates an Ingestor. A nil logger falls back to slog.Default.
func NewIngestor(pool *pgxpool.Pool, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{pool: pool, logger: logger, now: time.Now}
}

// IngestCustomers loads the customer export. The approved limit is derived
// from the salary and the debt starts at zero; actual debt is recomputed by
// IngestLoans from the active loans it inserts. Duplicate IDs are ignored so
// re-running the same file is safe.
func (in *Ingestor) IngestCustomers(ctx context.Context, r io.Reader) (Report, error) {
	rows, report, err := in.parseCustomers(r)
	if err != nil {
		return Report{}, err
	}

	var applied Report
	err = platformpg.WithTransaction(ctx, in.pool, func(q platformpg.Querier) error {
		var txErr error
		applied, txErr = in.applyCustomers(ctx, q, rows)
		return txErr
	})
	if err != nil {
		return Report{}, err
	}
	report.Inserted += applied.Inserted
	report.Skipped += applied.Skipped

	in.logger.InfoContext(ctx, "customer ingestion complete",
		"inserted", report.Inserted, "skipped", report.Skipped)
	return report, nil
}

// applyCustomers writes parsed customer rows through q. Duplicate IDs leave
// the existing row untouched and count as skipped.
func (in *Ingestor) applyCustomers(ctx context.Context, q platformpg.Querier, rows []CustomerRow) (Report, error) {
	query := `
		INSERT INTO customers (
			id, first_name, last_name, age, phone_number,
			monthly_income, approved_limit, current_debt,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,0,$8,$8)
		ON CONFLICT (id) DO NOTHING
	`
	var report Report
	now := in.now().UTC()
	for _, row := range rows {
		limit := model.ApprovedLimitFromIncome(row.MonthlySalary)
		tag, err := q.Exec(ctx, query,
			row.CustomerID, row.FirstName, row.LastName, row.Age, row.PhoneNumber,
			row.MonthlySalary, limit, now,
		)
		if err != nil {
			return Report{}, fmt.Errorf("insert customer %d: %w", row.CustomerID, err)
		}
		if tag.RowsAffected() == 0 {
			report.Skipped++
		} else {
			report.Inserted++
		}
	}
	return report, bumpSequence(ctx, q, "customers")
}

// IngestLoans loads the loan export. Status is derived from the end date and
// repayment counts; the principal of every active loan inserted in this run
// is added to the owning customer's current debt in the same transaction.
// Rows referencing unknown customers are skipped with a warning.
func (in *Ingestor) IngestLoans(ctx context.Context, r io.Reader) (Report, error) {
	rows, report, err := in.parseLoans(r)
	if err != nil {
		return Report{}, err
	}

	var applied Report
	err = platformpg.WithTransaction(ctx, in.pool, func(q platformpg.Querier) error {
		var txErr error
		applied, txErr = in.applyLoans(ctx, q, rows)
		return txErr
	})
	if err != nil {
		return Report{}, err
	}
	report.Inserted += applied.Inserted
	report.Skipped += applied.Skipped

	in.logger.InfoContext(ctx, "loan ingestion complete",
		"inserted", report.Inserted, "skipped", report.Skipped)
	return report, nil
}

// applyLoans writes parsed loan rows through q. Debt counts only rows
// actually inserted in this run, which keeps re-ingestion from
// double-counting.
func (in *Ingestor) applyLoans(ctx context.Context, q platformpg.Querier, rows []LoanRow) (Report, error) {
	query := `
		INSERT INTO loans (
			id, customer_id, loan_amount, tenure_months, interest_rate,
			monthly_installment, emis_paid_on_time, start_date, end_date,
			status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$11)
		ON CONFLICT (id) DO NOTHING
	`
	var report Report
	now := in.now().UTC()
	today := now.Truncate(24 * time.Hour)
	debtByCustomer := make(map[int64]decimal.Decimal)

	for _, row := range rows {
		exists, err := customerExists(ctx, q, row.CustomerID)
		if err != nil {
			return Report{}, err
		}
		if !exists {
			in.logger.WarnContext(ctx, "skipping loan for unknown customer",
				"loan_id", row.LoanID, "customer_id", row.CustomerID)
			report.Skipped++
			continue
		}

		status := valueobject.DeriveLoanStatus(row.EndDate, row.EmisPaidOnTime, row.TenureMonths, today)
		tag, err := q.Exec(ctx, query,
			row.LoanID, row.CustomerID, row.LoanAmount, row.TenureMonths, row.InterestRate,
			row.MonthlyPayment, row.EmisPaidOnTime, row.StartDate, row.EndDate,
			status.String(), now,
		)
		if err != nil {
			return Report{}, fmt.Errorf("insert loan %d: %w", row.LoanID, err)
		}
		if tag.RowsAffected() == 0 {
			report.Skipped++
			continue
		}
		report.Inserted++

		if status.IsActive() {
			debtByCustomer[row.CustomerID] = debtByCustomer[row.CustomerID].Add(row.LoanAmount)
		}
	}

	debtQuery := `UPDATE customers SET current_debt = current_debt + $1, updated_at = $2 WHERE id = $3`
	for customerID, delta := range debtByCustomer {
		if _, err := q.Exec(ctx, debtQuery, delta, now, customerID); err != nil {
			return Report{}, fmt.Errorf("update debt for customer %d: %w", customerID, err)
		}
	}
	return report, bumpSequence(ctx, q, "loans")
}

// ---------------------------------------------------------------------------
// CSV parsing
// ---------------------------------------------------------------------------

func (in *Ingestor) parseCustomers(r io.Reader) ([]CustomerRow, Report, error) {
	var report Report
	var rows []CustomerRow
	err := forEachRecord(r, func(line int, get func(string) string) error {
		id, err := strconv.ParseInt(get("customer_id"), 10, 64)
		if err != nil {
			in.logger.Warn("skipping malformed customer row", "line", line, "error", err)
			report.Skipped++
			return nil
		}
		salary, err := decimal.NewFromString(get("monthly_salary"))
		if err != nil || salary.IsNegative() {
			in.logger.Warn("skipping customer row with bad salary", "line", line, "customer_id", id)
			report.Skipped++
			return nil
		}
		age, err := strconv.Atoi(get("age"))
		if err != nil {
			in.logger.Warn("skipping customer row with bad age", "line", line, "customer_id", id)
			report.Skipped++
			return nil
		}
		rows = append(rows, CustomerRow{
			CustomerID:    id,
			FirstName:     get("first_name"),
			LastName:      get("last_name"),
			Age:           age,
			PhoneNumber:   get("phone_number"),
			MonthlySalary: salary,
		})
		return nil
	})
	return rows, report, err
}

func (in *Ingestor) parseLoans(r io.Reader) ([]LoanRow, Report, error) {
	var report Report
	var rows []LoanRow
	err := forEachRecord(r, func(line int, get func(string) string) error {
		row, err := parseLoanRow(get)
		if err != nil {
			in.logger.Warn("skipping malformed loan row", "line", line, "error", err)
			report.Skipped++
			return nil
		}
		rows = append(rows, row)
		return nil
	})
	return rows, report, err
}

func parseLoanRow(get func(string) string) (LoanRow, error) {
	loanID, err := strconv.ParseInt(get("loan_id"), 10, 64)
	if err != nil {
		return LoanRow{}, fmt.Errorf("loan_id: %w", err)
	}
	customerID, err := strconv.ParseInt(get("customer_id"), 10, 64)
	if err != nil {
		return LoanRow{}, fmt.Errorf("customer_id: %w", err)
	}
	amount, err := decimal.NewFromString(get("loan_amount"))
	if err != nil {
		return LoanRow{}, fmt.Errorf("loan_amount: %w", err)
	}
	tenure, err := strconv.Atoi(get("tenure"))
	if err != nil {
		return LoanRow{}, fmt.Errorf("tenure: %w", err)
	}
	rate, err := decimal.NewFromString(get("interest_rate"))
	if err != nil {
		return LoanRow{}, fmt.Errorf("interest_rate: %w", err)
	}
	payment, err := decimal.NewFromString(get("monthly_payment"))
	if err != nil {
		return LoanRow{}, fmt.Errorf("monthly_payment: %w", err)
	}
	emisPaid, err := strconv.Atoi(get("emis_paid_on_time"))
	if err != nil {
		return LoanRow{}, fmt.Errorf("emis_paid_on_time: %w", err)
	}
	start, err := time.Parse(dateLayout, get("date_of_approval"))
	if err != nil {
		return LoanRow{}, fmt.Errorf("date_of_approval: %w", err)
	}
	end, err := time.Parse(dateLayout, get("end_date"))
	if err != nil {
		return LoanRow{}, fmt.Errorf("end_date: %w", err)
	}
	return LoanRow{
		LoanID:         loanID,
		CustomerID:     customerID,
		LoanAmount:     amount,
		TenureMonths:   tenure,
		InterestRate:   rate,
		MonthlyPayment: payment,
		EmisPaidOnTime: emisPaid,
		StartDate:      start,
		EndDate:        end,
	}, nil
}

// forEachRecord streams a headered CSV, handing each data record to fn as a
// column-name lookup.
func forEachRecord(r io.Reader, fn func(line int, get func(string) string) error) error {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}

	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(record) {
				return ""
			}
			return record[i]
		}
		if err := fn(line, get); err != nil {
			return err
		}
	}
}

// ---------------------------------------------------------------------------
// SQL helpers
// ---------------------------------------------------------------------------

func customerExists(ctx context.Context, q platformpg.Querier, id int64) (bool, error) {
	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer %d: %w", id, err)
	}
	return exists, nil
}

// bumpSequence moves a table's ID sequence past the largest explicitly
// inserted ID so later inserts do not collide with ingested rows.
func bumpSequence(ctx context.Context, q platformpg.Querier, table string) error {
	query := fmt.Sprintf(
		`SELECT setval(pg_get_serial_sequence('%s', 'id'), GREATEST((SELECT COALESCE(MAX(id), 1) FROM %s), 1))`,
		table, table,
	)
	if _, err := q.Exec(ctx, query); err != nil {
		return fmt.Errorf("bump %s sequence: %w", table, err)
	}
	return nil
}
