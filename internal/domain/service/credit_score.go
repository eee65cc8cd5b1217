package service

import (
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/credigo/credit-engine/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Scorer – rule-based creditworthiness scoring
// ---------------------------------------------------------------------------

// Signal weights and caps. The additive signals top out at 70; the [0,100]
// clamp is a safety bound, not a normal path.
const (
	onTimeHistoryPoints = 20
	loanCountPointsEach = 5
	loanCountCap        = 20
	recentActivityEach  = 2
	recentActivityCap   = 10
	volumeCap           = 20
	maxScore            = 100
)

var volumeUnit = decimal.NewFromInt(10_000)

// Scorer computes an integer credit score in [0,100] from a customer's loan
// history. It is pure aside from debug tracing on the injected logger.
type Scorer struct {
	logger *slog.Logger
}

// NewScorer creates a scorer tracing to the given logger.
func NewScorer(logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scorer{logger: logger}
}

// Score combines four additive signals, then hard-resets to zero when the
// customer's exposure already exceeds the approved limit:
//
//  1. +20 when at least one historical loan was fully repaid on schedule
//  2. +min(20, 5 * total loan count)
//  3. +min(10, 2 * count of active loans started this calendar year)
//  4. +min(20, floor(total historical principal / 10,000))
//
// now anchors the calendar-year signal so results are reproducible.
func (s *Scorer) Score(customer model.Customer, history []model.Loan, now time.Time) int {
	score := 0

	if countFullyRepaid(history) > 0 {
		score += onTimeHistoryPoints
	}
	s.logger.Debug("credit score: on-time repayment signal applied",
		"customer_id", customer.ID(), "score", score)

	if n := len(history); n > 0 {
		score += minInt(loanCountCap, n*loanCountPointsEach)
	}
	s.logger.Debug("credit score: loan-count signal applied",
		"customer_id", customer.ID(), "loans", len(history), "score", score)

	if n := countActiveStartedInYear(history, now.Year()); n > 0 {
		score += minInt(recentActivityCap, n*recentActivityEach)
	}
	s.logger.Debug("credit score: recent-activity signal applied",
		"customer_id", customer.ID(), "score", score)

	totalPrincipal := sumPrincipal(history)
	if totalPrincipal.IsPositive() {
		score += minInt(volumeCap, int(totalPrincipal.Div(volumeUnit).IntPart()))
	}
	s.logger.Debug("credit score: volume signal applied",
		"customer_id", customer.ID(), "total_principal", totalPrincipal, "score", score)

	// Hard override: exposure beyond the approved limit zeroes everything.
	activePrincipal := model.SumActivePrincipal(history)
	if customer.CurrentDebt().Add(activePrincipal).GreaterThan(customer.ApprovedLimit()) {
		s.logger.Debug("credit score: exposure exceeds approved limit, score reset",
			"customer_id", customer.ID(),
			"current_debt", customer.CurrentDebt(),
			"active_principal", activePrincipal,
			"approved_limit", customer.ApprovedLimit())
		score = 0
	}

	return clampScore(score)
}

func countFullyRepaid(loans []model.Loan) int {
	n := 0
	for _, l := range loans {
		if l.FullyRepaidOnTime() {
			n++
		}
	}
	return n
}

func countActiveStartedInYear(loans []model.Loan, year int) int {
	n := 0
	for _, l := range loans {
		if l.IsActive() && l.StartedInYear(year) {
			n++
		}
	}
	return n
}

func sumPrincipal(loans []model.Loan) decimal.Decimal {
	total := decimal.Zero
	for _, l := range loans {
		total = total.Add(l.Principal())
	}
	return total
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > maxScore {
		return maxScore
	}
	return score
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
