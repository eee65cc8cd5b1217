package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/credigo/credit-engine/internal/domain/model"
)

// ---------------------------------------------------------------------------
// DecisionEngine – underwriting decision pipeline
// ---------------------------------------------------------------------------

// EntryPoint selects which decision surface is being served. Both surfaces
// run the same pipeline and always agree on the approval verdict; they differ
// only in message wording and in which fields the response carries.
type EntryPoint string

const (
	EntryEligibility EntryPoint = "check_eligibility"
	EntryCreateLoan  EntryPoint = "create_loan"
)

// Tier thresholds. Scores above tierOneFloor may borrow at any rate (capped
// at the prime rate); the lower tiers require a risk premium.
var (
	primeRate   = decimal.RequireFromString("12.00")
	subPrimRate = decimal.RequireFromString("16.00")
)

const (
	tierOneFloor   = 50
	tierTwoFloor   = 30
	tierThreeFloor = 10
)

// Decision messages. Wording is part of the external contract.
const (
	msgAffordability    = "Sum of all current EMIs + new loan EMI exceeds 50% of monthly salary. Loan not approved."
	msgScoreTooLow      = "Credit score too low for loan approval."
	msgOverLimit        = "Loan amount exceeds approved limit."
	msgRateCorrected12  = "Interest rate corrected to 12% for high credit score."
	msgRateLowCorrect12 = "Interest rate too low for credit score. Corrected to 12%."
	msgRateLowCorrect16 = "Interest rate too low for credit score. Corrected to 16%."
	msgRateLowReject12  = "Interest rate too low for credit score (must be > 12%)."
	msgRateLowReject16  = "Interest rate too low for credit score (must be > 16%)."
	msgApproved         = "Loan approved successfully."
	msgRejectedDefault  = "Loan not approved due to eligibility criteria."
)

// DecisionInput is everything the pipeline reads. The caller loads it up
// front; the pipeline itself touches no collaborators.
type DecisionInput struct {
	Customer      model.Customer
	ActiveLoans   []model.Loan
	LoanHistory   []model.Loan
	LoanAmount    decimal.Decimal
	RequestedRate decimal.Decimal
	TermMonths    int
	Now           time.Time
}

// Decision is the pipeline verdict. CorrectedRate is reported by the
// eligibility surface only; Installment is zero unless approved.
type Decision struct {
	Approved      bool
	Score         int
	ScoreComputed bool
	FinalRate     decimal.Decimal
	CorrectedRate *decimal.Decimal
	Installment   decimal.Decimal
	Message       string
}

// DecisionEngine runs the fixed four-stage underwriting pipeline:
// affordability gate, credit-score tiering, credit-limit gate, finalize.
type DecisionEngine struct {
	scorer *Scorer
}

// NewDecisionEngine wires the scorer into the pipeline.
func NewDecisionEngine(scorer *Scorer) *DecisionEngine {
	return &DecisionEngine{scorer: scorer}
}

// Decide evaluates one loan request. Stages run in strict order and each may
// short-circuit to rejection. The only error paths are invalid inputs to the
// installment calculator.
func (e *DecisionEngine) Decide(entry EntryPoint, in DecisionInput) (Decision, error) {
	// Stage 1 — affordability gate. No score is computed on this path.
	projectedEMI, err := model.ComputeInstallment(in.LoanAmount, in.RequestedRate, in.TermMonths)
	if err != nil {
		return Decision{}, err
	}

	currentEMIs := model.SumActiveInstallments(in.ActiveLoans)
	if currentEMIs.Add(projectedEMI).GreaterThan(in.Customer.HalfMonthlyIncome()) {
		return Decision{
			Approved:    false,
			Installment: decimal.Zero,
			Message:     msgAffordability,
		}, nil
	}

	// Stage 2 — credit-score tiering.
	score := e.scorer.Score(in.Customer, in.LoanHistory, in.Now)
	d := e.applyTier(entry, score, in.RequestedRate)
	d.Score = score
	d.ScoreComputed = true

	// Stage 3 — credit-limit gate.
	if d.Approved {
		activePrincipal := model.SumActivePrincipal(in.ActiveLoans)
		if activePrincipal.Add(in.LoanAmount).GreaterThan(in.Customer.ApprovedLimit()) {
			d.Approved = false
			d.Message = msgOverLimit
			d.CorrectedRate = nil
		}
	}

	// Stage 4 — finalize.
	if d.Approved {
		installment, err := model.ComputeInstallment(in.LoanAmount, d.FinalRate, in.TermMonths)
		if err != nil {
			return Decision{}, err
		}
		d.Installment = installment
		if entry == EntryCreateLoan && d.Message == "" {
			d.Message = msgApproved
		}
	} else {
		d.Installment = decimal.Zero
		if entry == EntryCreateLoan && d.Message == "" {
			d.Message = msgRejectedDefault
		}
	}

	return d, nil
}

// applyTier maps a credit score and requested rate onto the tier table.
// Ranges are non-overlapping and evaluated top to bottom.
func (e *DecisionEngine) applyTier(entry EntryPoint, score int, requestedRate decimal.Decimal) Decision {
	switch {
	case score > tierOneFloor:
		// Top tier: always approved; rates above prime are corrected down.
		if requestedRate.GreaterThan(primeRate) {
			d := Decision{Approved: true, FinalRate: primeRate, CorrectedRate: ptr(primeRate)}
			if entry == EntryCreateLoan {
				d.Message = msgRateCorrected12
			}
			return d
		}
		return Decision{Approved: true, FinalRate: requestedRate, CorrectedRate: ptr(requestedRate)}

	case score > tierTwoFloor:
		return tierWithFloorRate(entry, requestedRate, primeRate, msgRateLowCorrect12, msgRateLowReject12)

	case score > tierThreeFloor:
		return tierWithFloorRate(entry, requestedRate, subPrimRate, msgRateLowCorrect16, msgRateLowReject16)

	default:
		return Decision{Approved: false, Message: msgScoreTooLow}
	}
}

// tierWithFloorRate handles the middle tiers: the requested rate must exceed
// the tier's floor. On rejection the eligibility surface still reports the
// floor as the corrected rate; the create surface reports the rejection only.
func tierWithFloorRate(entry EntryPoint, requestedRate, floor decimal.Decimal, correctMsg, rejectMsg string) Decision {
	if requestedRate.GreaterThan(floor) {
		return Decision{Approved: true, FinalRate: requestedRate, CorrectedRate: ptr(requestedRate)}
	}

	d := Decision{Approved: false}
	if entry == EntryEligibility {
		d.CorrectedRate = ptr(floor)
		d.Message = correctMsg
	} else {
		d.Message = rejectMsg
	}
	return d
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }
