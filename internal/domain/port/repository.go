package port

import (
	"context"

	"github.com/bibbank/credit-risk-service/internal/domain/event"
	"github.com/bibbank/credit-risk-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Repository ports (driven/secondary adapters)
// ---------------------------------------------------------------------------

// AssessmentRepository persists and retrieves credit assessments.
type AssessmentRepository interface {
	Save(ctx context.Context, a model.CreditAssessment) error
	FindByID(ctx context.Context, tenantID, id string) (model.CreditAssessment, error)
	// FindByApplicantID returns at most limit assessments, newest first.
	FindByApplicantID(ctx context.Context, tenantID, applicantID string, limit int) ([]model.CreditAssessment, error)
}

// AssessmentCache is a read-through cache in front of AssessmentRepository.
// A miss is reported as (_, false, nil).
type AssessmentCache interface {
	Get(ctx context.Context, tenantID, id string) (model.CreditAssessment, bool, error)
	Set(ctx context.Context, a model.CreditAssessment) error
}

// ---------------------------------------------------------------------------
// Event publisher port
// ---------------------------------------------------------------------------

// EventPublisher publishes domain events to external consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events ...event.DomainEvent) error
}
