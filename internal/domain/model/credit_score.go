package model

import (
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-risk-service/internal/domain/valueobject"
)

// Score range of the simulated FICO-style scale.
const (
	MinCreditScore = 300
	MaxCreditScore = 850
)

// Factor names reported in ScoreFactor.Name.
const (
	FactorDebtToIncome = "debt_to_income"
	FactorAge          = "age"
	FactorIncome       = "income"
)

// ScoreFactor records one adjustment applied to the base score.
type ScoreFactor struct {
	Name   string
	Points int
}

// CreditScore is the outcome of a risk evaluation.
type CreditScore struct {
	RiskLevel             valueobject.RiskLevel
	SuggestedInterestRate decimal.Decimal
	MaxApprovedAmount     decimal.Decimal
	// Factors lists the non-zero adjustments in evaluation order.
	Factors    []ScoreFactor
	Score      int
	IsApproved bool
}

// ScoringPolicy holds the two tunables supplied by configuration.
type ScoringPolicy struct {
	BaseInterestRate decimal.Decimal
	MinScoreApprove  int
}

// DefaultScoringPolicy approves from 650 with a 10% base rate.
func DefaultScoringPolicy() ScoringPolicy {
	return ScoringPolicy{
		MinScoreApprove:  650,
		BaseInterestRate: decimal.RequireFromString("0.10"),
	}
}
