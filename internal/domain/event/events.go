package event

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-risk-service/internal/domain/valueobject"
	"github.com/bibbank/credit-risk-service/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	aggregateTypeCreditAssessment = "CreditAssessment"

	// TypeCreditAssessmentEvaluated is the event type published for every
	// persisted evaluation.
	TypeCreditAssessmentEvaluated = "risk.credit_assessment.evaluated"
)

// CreditAssessmentEvaluated is raised when an applicant has been scored.
type CreditAssessmentEvaluated struct {
	events.BaseEvent
	ApplicantID           string                `json:"applicant_id"`
	RiskLevel             valueobject.RiskLevel `json:"risk_level"`
	SuggestedInterestRate decimal.Decimal       `json:"suggested_interest_rate"`
	MaxApprovedAmount     decimal.Decimal       `json:"max_approved_amount"`
	Score                 int                   `json:"score"`
	Approved              bool                  `json:"approved"`
}

func NewCreditAssessmentEvaluated(
	assessmentID, tenantID, applicantID string,
	score int,
	riskLevel valueobject.RiskLevel,
	approved bool,
	interestRate, maxAmount decimal.Decimal,
	at time.Time,
) CreditAssessmentEvaluated {
	return CreditAssessmentEvaluated{
		BaseEvent: events.NewBaseEventAt(
			TypeCreditAssessmentEvaluated, assessmentID, aggregateTypeCreditAssessment, tenantID, at,
		),
		ApplicantID:           applicantID,
		Score:                 score,
		RiskLevel:             riskLevel,
		Approved:              approved,
		SuggestedInterestRate: interestRate,
		MaxApprovedAmount:     maxAmount,
	}
}
