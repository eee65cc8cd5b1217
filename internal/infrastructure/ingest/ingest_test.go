package ingest

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testIngestor() *Ingestor {
	return &Ingestor{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    func() time.Time { return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestParseCustomers(t *testing.T) {
	csv := strings.Join([]string{
		"customer_id,first_name,last_name,age,phone_number,monthly_salary",
		"1,Asha,Rao,31,9876543210,100000",
		"2,Vikram,Shah,45,9123456780,52000.50",
	}, "\n")

	rows, report, err := testIngestor().parseCustomers(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].CustomerID)
	assert.Equal(t, "Asha", rows[0].FirstName)
	assert.Equal(t, 31, rows[0].Age)
	assert.True(t, rows[1].MonthlySalary.Equal(decimal.RequireFromString("52000.50")))
	assert.Equal(t, 0, report.Skipped)
}

func TestParseCustomers_SkipsMalformedRows(t *testing.T) {
	csv := strings.Join([]string{
		"customer_id,first_name,last_name,age,phone_number,monthly_salary",
		"not-a-number,Asha,Rao,31,9876543210,100000",
		"2,Vikram,Shah,45,9123456780,-1",
		"3,Meera,Iyer,58,9988776655,75000",
	}, "\n")

	rows, report, err := testIngestor().parseCustomers(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0].CustomerID)
	assert.Equal(t, 2, report.Skipped)
}

func TestParseLoans(t *testing.T) {
	csv := strings.Join([]string{
		"customer_id,loan_id,loan_amount,tenure,interest_rate,monthly_payment,emis_paid_on_time,date_of_approval,end_date",
		"1,100,100000,12,12.00,8884.88,12,2023-01-15,2024-01-15",
		"1,101,250000,24,14.50,broken,3,2026-02-01,2028-02-01",
	}, "\n")

	rows, report, err := testIngestor().parseLoans(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, int64(100), rows[0].LoanID)
	assert.Equal(t, int64(1), rows[0].CustomerID)
	assert.Equal(t, 12, rows[0].TenureMonths)
	assert.True(t, rows[0].InterestRate.Equal(decimal.RequireFromString("12.00")))
	assert.Equal(t, time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC), rows[0].StartDate)
	assert.Equal(t, 1, report.Skipped)
}

func TestParseLoans_ColumnsInAnyOrder(t *testing.T) {
	csv := strings.Join([]string{
		"loan_id,end_date,customer_id,tenure,loan_amount,interest_rate,monthly_payment,emis_paid_on_time,date_of_approval",
		"7,2027-06-01,3,36,500000,10.25,16134.22,2,2024-06-01",
	}, "\n")

	rows, report, err := testIngestor().parseLoans(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, int64(7), rows[0].LoanID)
	assert.Equal(t, int64(3), rows[0].CustomerID)
	assert.Equal(t, 36, rows[0].TenureMonths)
	assert.Equal(t, 0, report.Skipped)
}

// fakeStore stands in for the customers and loans tables so the batch
// apply loops can run without Postgres. It honours the statements the
// loops issue: conflict-free inserts, the existence probe, the debt
// update, and the sequence bump.
type fakeStore struct {
	customers map[int64]bool
	loans     map[int64]bool
	debt      map[int64]decimal.Decimal
}

func newFakeStore(customerIDs ...int64) *fakeStore {
	s := &fakeStore{
		customers: make(map[int64]bool),
		loans:     make(map[int64]bool),
		debt:      make(map[int64]decimal.Decimal),
	}
	for _, id := range customerIDs {
		s.customers[id] = true
	}
	return s
}

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

func (s *fakeStore) Query(context.Context, string, ...any) (pgx.Rows, error) {
	panic("unexpected Query")
}

func (s *fakeStore) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	if strings.Contains(sql, "SELECT EXISTS") {
		id := args[0].(int64)
		return fakeRow{scan: func(dest ...any) error {
			*dest[0].(*bool) = s.customers[id]
			return nil
		}}
	}
	panic("unexpected QueryRow: " + sql)
}

func (s *fakeStore) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	switch {
	case strings.Contains(sql, "INSERT INTO customers"):
		id := args[0].(int64)
		if s.customers[id] {
			return pgconn.NewCommandTag("INSERT 0 0"), nil
		}
		s.customers[id] = true
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(sql, "INSERT INTO loans"):
		id := args[0].(int64)
		if s.loans[id] {
			return pgconn.NewCommandTag("INSERT 0 0"), nil
		}
		s.loans[id] = true
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	case strings.Contains(sql, "UPDATE customers SET current_debt"):
		delta := args[0].(decimal.Decimal)
		id := args[2].(int64)
		s.debt[id] = s.debt[id].Add(delta)
		return pgconn.NewCommandTag("UPDATE 1"), nil
	case strings.Contains(sql, "setval"):
		return pgconn.NewCommandTag("SELECT 1"), nil
	}
	panic("unexpected Exec: " + sql)
}

func TestApplyLoans_ReingestionIsIdempotent(t *testing.T) {
	in := testIngestor()
	store := newFakeStore(1)
	ctx := context.Background()

	// The fixed clock sits at 2026-08-01, so the first loan is active and
	// the second already ended.
	rows := []LoanRow{
		{
			LoanID: 100, CustomerID: 1,
			LoanAmount: decimal.NewFromInt(200_000), TenureMonths: 24,
			InterestRate:   decimal.RequireFromString("12.00"),
			MonthlyPayment: decimal.RequireFromString("9414.69"),
			EmisPaidOnTime: 6,
			StartDate:      time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2028, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			LoanID: 101, CustomerID: 1,
			LoanAmount: decimal.NewFromInt(100_000), TenureMonths: 12,
			InterestRate:   decimal.RequireFromString("12.00"),
			MonthlyPayment: decimal.RequireFromString("8884.88"),
			EmisPaidOnTime: 12,
			StartDate:      time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
			EndDate:        time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
	}

	first, err := in.applyLoans(ctx, store, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Inserted)
	assert.Equal(t, 0, first.Skipped)
	// Only the active loan counts toward debt.
	assert.True(t, store.debt[1].Equal(decimal.NewFromInt(200_000)),
		"debt after first run: %s", store.debt[1])

	second, err := in.applyLoans(ctx, store, rows)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Skipped)

	// Same loan set, same debt.
	assert.Len(t, store.loans, 2)
	assert.True(t, store.debt[1].Equal(decimal.NewFromInt(200_000)),
		"debt after second run: %s", store.debt[1])
}

func TestApplyLoans_SkipsUnknownCustomer(t *testing.T) {
	in := testIngestor()
	store := newFakeStore(1)

	rows := []LoanRow{{
		LoanID: 200, CustomerID: 99,
		LoanAmount: decimal.NewFromInt(50_000), TenureMonths: 12,
		InterestRate:   decimal.RequireFromString("10.00"),
		MonthlyPayment: decimal.RequireFromString("4395.79"),
		StartDate:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:        time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}}

	report, err := in.applyLoans(context.Background(), store, rows)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Inserted)
	assert.Equal(t, 1, report.Skipped)
	assert.Empty(t, store.loans)
	assert.True(t, store.debt[99].IsZero())
}

func TestApplyCustomers_ReingestionSkipsDuplicates(t *testing.T) {
	in := testIngestor()
	store := newFakeStore()

	rows := []CustomerRow{
		{CustomerID: 1, FirstName: "Asha", LastName: "Rao", Age: 31,
			PhoneNumber: "9876543210", MonthlySalary: decimal.NewFromInt(100_000)},
		{CustomerID: 2, FirstName: "Vikram", LastName: "Shah", Age: 45,
			PhoneNumber: "9123456780", MonthlySalary: decimal.NewFromInt(52_000)},
	}

	first, err := in.applyCustomers(context.Background(), store, rows)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Inserted)

	second, err := in.applyCustomers(context.Background(), store, rows)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Inserted)
	assert.Equal(t, 2, second.Skipped)
	assert.Len(t, store.customers, 2)
}

func TestForEachRecord_MissingHeader(t *testing.T) {
	err := forEachRecord(strings.NewReader(""), func(int, func(string) string) error {
		t.Fatal("callback should not run")
		return nil
	})
	assert.Error(t, err)
}
