package service_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/credigo/credit-engine/internal/domain/model"
	"github.com/credigo/credit-engine/internal/domain/service"
	"github.com/credigo/credit-engine/internal/domain/valueobject"
)

var scoreNow = time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)

func quietScorer() *service.Scorer {
	return service.NewScorer(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func scoreCustomer(income, limit, debt int64) model.Customer {
	return model.ReconstructCustomer(
		1, "Asha", "Rao", 31, "9876543210",
		decimal.NewFromInt(income), decimal.NewFromInt(limit), decimal.NewFromInt(debt),
		scoreNow, scoreNow,
	)
}

func scoreLoan(id int64, principal int64, term, emisPaid int, status valueobject.LoanStatus, start time.Time) model.Loan {
	return model.ReconstructLoan(
		id, 1,
		decimal.NewFromInt(principal), term,
		decimal.NewFromInt(12), decimal.NewFromInt(principal/int64(term)),
		emisPaid,
		start, start.AddDate(0, term, 0),
		status,
		start, start,
	)
}

func TestScorer_NoHistory(t *testing.T) {
	score := quietScorer().Score(scoreCustomer(100_000, 3_600_000, 0), nil, scoreNow)
	assert.Equal(t, 0, score)
}

func TestScorer_SingleRepaidLoan(t *testing.T) {
	history := []model.Loan{
		scoreLoan(1, 50_000, 12, 12, valueobject.LoanStatusPaid, scoreNow.AddDate(-4, 0, 0)),
	}

	// On-time 20, count 5, volume floor(50,000/10,000)=5.
	score := quietScorer().Score(scoreCustomer(100_000, 3_600_000, 0), history, scoreNow)
	assert.Equal(t, 30, score)
}

func TestScorer_EstablishedHistory(t *testing.T) {
	var history []model.Loan
	for i := int64(1); i <= 4; i++ {
		history = append(history,
			scoreLoan(i, 30_000, 12, 12, valueobject.LoanStatusPaid, scoreNow.AddDate(-int(i), 0, 0)))
	}

	// On-time 20, count capped at 20, volume floor(120,000/10,000)=12.
	score := quietScorer().Score(scoreCustomer(100_000, 3_600_000, 0), history, scoreNow)
	assert.Equal(t, 52, score)
}

func TestScorer_RecentActivitySignal(t *testing.T) {
	thisYear := time.Date(scoreNow.Year(), 2, 1, 0, 0, 0, 0, time.UTC)
	history := []model.Loan{
		scoreLoan(1, 30_000, 12, 2, valueobject.LoanStatusActive, thisYear),
		scoreLoan(2, 30_000, 12, 1, valueobject.LoanStatusActive, thisYear.AddDate(0, 1, 0)),
	}

	// Count 10, recent 2*2=4, volume 6; nothing fully repaid.
	score := quietScorer().Score(scoreCustomer(100_000, 3_600_000, 0), history, scoreNow)
	assert.Equal(t, 20, score)
}

func TestScorer_OverLimitHardZero(t *testing.T) {
	history := []model.Loan{
		scoreLoan(1, 50_000, 12, 12, valueobject.LoanStatusPaid, scoreNow.AddDate(-4, 0, 0)),
		scoreLoan(2, 200_000, 24, 3, valueobject.LoanStatusActive, scoreNow.AddDate(0, -3, 0)),
	}

	// debt + active principal = 3,500,000 + 200,000 > 3,600,000.
	score := quietScorer().Score(scoreCustomer(100_000, 3_600_000, 3_500_000), history, scoreNow)
	assert.Equal(t, 0, score)

	// Exposure exactly at the limit keeps the signal points.
	score = quietScorer().Score(scoreCustomer(100_000, 3_600_000, 3_400_000), history, scoreNow)
	assert.Greater(t, score, 0)
}

func TestScorer_MonotonicInDebt(t *testing.T) {
	history := []model.Loan{
		scoreLoan(1, 100_000, 12, 12, valueobject.LoanStatusPaid, scoreNow.AddDate(-2, 0, 0)),
		scoreLoan(2, 300_000, 24, 5, valueobject.LoanStatusActive, scoreNow.AddDate(0, -6, 0)),
	}

	scorer := quietScorer()
	prev := scorer.Score(scoreCustomer(100_000, 3_600_000, 0), history, scoreNow)
	for _, debt := range []int64{1_000_000, 3_000_000, 3_300_000, 3_500_000} {
		next := scorer.Score(scoreCustomer(100_000, 3_600_000, debt), history, scoreNow)
		assert.LessOrEqual(t, next, prev, "debt %d", debt)
		prev = next
	}
}
