package model

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/bibbank/credit-risk-service/internal/domain/event"
)

// ErrAssessmentNotFound is returned by repositories when no assessment matches.
var ErrAssessmentNotFound = errors.New("credit assessment not found")

// ---------------------------------------------------------------------------
// CreditAssessment aggregate root
// ---------------------------------------------------------------------------

// CreditAssessment is the persisted record of one evaluation: the input, the
// result and the policy it was scored under. It is immutable once created.
type CreditAssessment struct {
	id           string
	tenantID     string
	applicantID  string
	request      CreditRequest
	result       CreditScore
	policy       ScoringPolicy
	createdAt    time.Time
	domainEvents []event.DomainEvent
}

// NewCreditAssessment records a fresh evaluation and raises
// CreditAssessmentEvaluated.
func NewCreditAssessment(
	tenantID, applicantID string,
	request CreditRequest,
	result CreditScore,
	policy ScoringPolicy,
	now time.Time,
) (CreditAssessment, error) {
	if tenantID == "" {
		return CreditAssessment{}, errors.New("tenant ID is required")
	}
	if applicantID == "" {
		return CreditAssessment{}, errors.New("applicant ID is required")
	}
	if result.RiskLevel.IsZero() {
		return CreditAssessment{}, errors.New("risk level is required")
	}

	id := uuid.New().String()
	a := CreditAssessment{
		id:          id,
		tenantID:    tenantID,
		applicantID: applicantID,
		request:     request,
		result:      result,
		policy:      policy,
		createdAt:   now.UTC(),
	}

	a.domainEvents = append(a.domainEvents, event.NewCreditAssessmentEvaluated(
		id, tenantID, applicantID,
		result.Score, result.RiskLevel, result.IsApproved,
		result.SuggestedInterestRate, result.MaxApprovedAmount,
		now,
	))
	return a, nil
}

// ReconstructCreditAssessment rebuilds an aggregate from persistence without side-effects.
func ReconstructCreditAssessment(
	id, tenantID, applicantID string,
	request CreditRequest,
	result CreditScore,
	policy ScoringPolicy,
	createdAt time.Time,
) CreditAssessment {
	return CreditAssessment{
		id:          id,
		tenantID:    tenantID,
		applicantID: applicantID,
		request:     request,
		result:      result,
		policy:      policy,
		createdAt:   createdAt,
	}
}

func (a CreditAssessment) ID() string                        { return a.id }
func (a CreditAssessment) TenantID() string                  { return a.tenantID }
func (a CreditAssessment) ApplicantID() string               { return a.applicantID }
func (a CreditAssessment) Request() CreditRequest            { return a.request }
func (a CreditAssessment) Result() CreditScore               { return a.result }
func (a CreditAssessment) Policy() ScoringPolicy             { return a.policy }
func (a CreditAssessment) CreatedAt() time.Time              { return a.createdAt }
func (a CreditAssessment) DomainEvents() []event.DomainEvent { return a.domainEvents }

// ClearEvents returns a copy with an empty event list (call after publishing).
func (a CreditAssessment) ClearEvents() CreditAssessment {
	next := a
	next.domainEvents = nil
	return next
}
