package usecase_test

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/bibbank/credit-risk-service/internal/domain/event"
	"github.com/bibbank/credit-risk-service/internal/domain/model"
)

// --- Mock implementations ---

type mockAssessmentRepository struct {
	saveFunc              func(ctx context.Context, a model.CreditAssessment) error
	findByIDFunc          func(ctx context.Context, tenantID, id string) (model.CreditAssessment, error)
	findByApplicantIDFunc func(ctx context.Context, tenantID, applicantID string, limit int) ([]model.CreditAssessment, error)

	mu          sync.Mutex
	saved       []model.CreditAssessment
	findByIDHit int
}

func (m *mockAssessmentRepository) Save(ctx context.Context, a model.CreditAssessment) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, a)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saved = append(m.saved, a)
	return nil
}

func (m *mockAssessmentRepository) FindByID(ctx context.Context, tenantID, id string) (model.CreditAssessment, error) {
	m.mu.Lock()
	m.findByIDHit++
	m.mu.Unlock()
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, tenantID, id)
	}
	return model.CreditAssessment{}, model.ErrAssessmentNotFound
}

func (m *mockAssessmentRepository) FindByApplicantID(ctx context.Context, tenantID, applicantID string, limit int) ([]model.CreditAssessment, error) {
	if m.findByApplicantIDFunc != nil {
		return m.findByApplicantIDFunc(ctx, tenantID, applicantID, limit)
	}
	return nil, nil
}

type mockAssessmentCache struct {
	getFunc func(ctx context.Context, tenantID, id string) (model.CreditAssessment, bool, error)
	setFunc func(ctx context.Context, a model.CreditAssessment) error

	stored []model.CreditAssessment
}

func (m *mockAssessmentCache) Get(ctx context.Context, tenantID, id string) (model.CreditAssessment, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, tenantID, id)
	}
	return model.CreditAssessment{}, false, nil
}

func (m *mockAssessmentCache) Set(ctx context.Context, a model.CreditAssessment) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, a)
	}
	m.stored = append(m.stored, a)
	return nil
}

type mockEventPublisher struct {
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
	publishedEvents []event.DomainEvent
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...event.DomainEvent) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
