package service

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-risk-service/internal/domain/model"
	"github.com/bibbank/credit-risk-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// RiskEvaluator – rule-based credit scoring
// ---------------------------------------------------------------------------

const neutralScore = 600

var (
	dtiExcellent  = decimal.RequireFromString("0.30")
	dtiAcceptable = decimal.RequireFromString("0.50")
	dtiOverLimit  = decimal.RequireFromString("0.70")

	highIncomeThreshold = decimal.NewFromInt(3000)

	lowRiskDiscount   = decimal.RequireFromString("0.02")
	highRiskSurcharge = decimal.RequireFromString("0.05")

	disposableIncomeMultiple = decimal.NewFromInt(10)
)

// RiskEvaluator scores applicants with fixed, auditable thresholds. It holds
// no mutable state and is safe for concurrent use.
type RiskEvaluator struct {
	policy model.ScoringPolicy
}

// NewRiskEvaluator returns an evaluator bound to the given policy.
func NewRiskEvaluator(policy model.ScoringPolicy) *RiskEvaluator {
	return &RiskEvaluator{policy: policy}
}

// Policy returns the policy the evaluator was built with.
func (e *RiskEvaluator) Policy() model.ScoringPolicy { return e.policy }

// Evaluate scores the request. It never fails: out-of-range inputs are not
// validated and simply flow through the arithmetic.
//
// Stages, in order:
//
//	base score   600 ± DTI/age/income adjustments, clamped to [300, 850]
//	risk tier    >=750 LOW, >=650 MEDIUM, else HIGH
//	approval     score >= MinScoreApprove
//	rate         >=750 base-0.02, >=650 base, else base+0.05
//	max amount   max(0, (income-debt)*10), zero unless approved
func (e *RiskEvaluator) Evaluate(req model.CreditRequest) model.CreditScore {
	score, factors := e.baseScore(req)
	approved := score >= e.policy.MinScoreApprove

	maxAmount := decimal.Zero
	if approved {
		maxAmount = e.maxAmount(req)
	}

	return model.CreditScore{
		Score:                 score,
		RiskLevel:             valueobject.RiskLevelFromScore(score),
		IsApproved:            approved,
		SuggestedInterestRate: e.interestRate(score),
		MaxApprovedAmount:     maxAmount.RoundBank(2),
		Factors:               factors,
	}
}

func (e *RiskEvaluator) baseScore(req model.CreditRequest) (int, []model.ScoreFactor) {
	score := neutralScore
	var factors []model.ScoreFactor

	apply := func(name string, points int) {
		if points == 0 {
			return
		}
		score += points
		factors = append(factors, model.ScoreFactor{Name: name, Points: points})
	}

	apply(model.FactorDebtToIncome, dtiPoints(req.DebtToIncomeRatio))
	apply(model.FactorAge, agePoints(req.Age))
	if req.MonthlyIncome.GreaterThan(highIncomeThreshold) {
		apply(model.FactorIncome, 50)
	}

	return clamp(score, model.MinCreditScore, model.MaxCreditScore), factors
}

// dtiPoints leaves 0.50..0.70 inclusive without adjustment.
func dtiPoints(dti decimal.Decimal) int {
	switch {
	case dti.LessThan(dtiExcellent):
		return 100
	case dti.LessThan(dtiAcceptable):
		return 50
	case dti.GreaterThan(dtiOverLimit):
		return -100
	default:
		return 0
	}
}

func agePoints(age int) int {
	switch {
	case age >= 25 && age <= 55:
		return 50
	case age < 21:
		return -20
	default:
		return 0
	}
}

// interestRate is not clamped; a very low base rate can yield a negative rate.
func (e *RiskEvaluator) interestRate(score int) decimal.Decimal {
	base := e.policy.BaseInterestRate
	switch {
	case score >= valueobject.LowRiskMinScore:
		return base.Sub(lowRiskDiscount)
	case score >= valueobject.MediumRiskMinScore:
		return base
	default:
		return base.Add(highRiskSurcharge)
	}
}

func (e *RiskEvaluator) maxAmount(req model.CreditRequest) decimal.Decimal {
	amount := req.DisposableIncome().Mul(disposableIncomeMultiple)
	if amount.IsNegative() {
		return decimal.Zero
	}
	return amount
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}
