package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-risk-service/internal/application/dto"
	"github.com/bibbank/credit-risk-service/internal/application/usecase"
	"github.com/bibbank/credit-risk-service/internal/domain/event"
	"github.com/bibbank/credit-risk-service/internal/domain/model"
	"github.com/bibbank/credit-risk-service/internal/domain/service"
)

func validEvaluateRequest() dto.EvaluateCreditRequest {
	return dto.EvaluateCreditRequest{
		TenantID:    "tenant-001",
		ApplicantID: "applicant-001",
		CreditProfile: dto.CreditProfile{
			MonthlyIncome: decimal.NewFromInt(4000),
			MonthlyDebt:   decimal.NewFromInt(500),
			Age:           30,
		},
	}
}

func newEvaluateUseCase(
	repo *mockAssessmentRepository,
	cache *mockAssessmentCache,
	publisher *mockEventPublisher,
) *usecase.EvaluateCreditUseCase {
	evaluator := service.NewRiskEvaluator(model.DefaultScoringPolicy())
	return usecase.NewEvaluateCreditUseCase(repo, cache, publisher, evaluator, discardLogger())
}

func TestEvaluateCredit_Execute(t *testing.T) {
	t.Run("scores, persists, caches and publishes", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		cache := &mockAssessmentCache{}
		publisher := &mockEventPublisher{}
		uc := newEvaluateUseCase(repo, cache, publisher)

		resp, err := uc.Execute(context.Background(), validEvaluateRequest())

		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "tenant-001", resp.TenantID)
		assert.Equal(t, 800, resp.Result.Score)
		assert.Equal(t, "LOW", resp.Result.RiskLevel)
		assert.True(t, resp.Result.IsApproved)
		assert.True(t, decimal.RequireFromString("0.08").Equal(resp.Result.SuggestedInterestRate))
		assert.True(t, decimal.NewFromInt(35000).Equal(resp.Result.MaxApprovedAmount))
		assert.True(t, decimal.RequireFromString("0.125").Equal(resp.DebtToIncomeRatio))
		assert.Equal(t, 650, resp.MinScoreApprove)
		assert.Len(t, resp.Result.Factors, 3)

		require.Len(t, repo.saved, 1)
		assert.Equal(t, resp.ID, repo.saved[0].ID())

		require.Len(t, cache.stored, 1)
		assert.Empty(t, cache.stored[0].DomainEvents())

		require.Len(t, publisher.publishedEvents, 1)
		assert.Equal(t, event.TypeCreditAssessmentEvaluated, publisher.publishedEvents[0].EventType())
		assert.Equal(t, resp.ID, publisher.publishedEvents[0].AggregateID())
	})

	t.Run("records declined assessments", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		uc := newEvaluateUseCase(repo, &mockAssessmentCache{}, &mockEventPublisher{})

		req := validEvaluateRequest()
		req.MonthlyIncome = decimal.NewFromInt(2000)
		req.MonthlyDebt = decimal.NewFromInt(1600)
		req.Age = 45

		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 550, resp.Result.Score)
		assert.Equal(t, "HIGH", resp.Result.RiskLevel)
		assert.False(t, resp.Result.IsApproved)
		assert.True(t, resp.Result.MaxApprovedAmount.IsZero())
		assert.Len(t, repo.saved, 1)
	})

	t.Run("rejects invalid input before touching storage", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		publisher := &mockEventPublisher{}
		uc := newEvaluateUseCase(repo, &mockAssessmentCache{}, publisher)

		req := validEvaluateRequest()
		req.MonthlyIncome = decimal.Zero

		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.True(t, errors.Is(err, dto.ErrInvalidRequest))
		assert.Empty(t, repo.saved)
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("fails when repository save fails", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			saveFunc: func(_ context.Context, _ model.CreditAssessment) error {
				return fmt.Errorf("database unavailable")
			},
		}
		publisher := &mockEventPublisher{}
		uc := newEvaluateUseCase(repo, &mockAssessmentCache{}, publisher)

		_, err := uc.Execute(context.Background(), validEvaluateRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "save assessment")
		assert.Empty(t, publisher.publishedEvents)
	})

	t.Run("tolerates cache failures", func(t *testing.T) {
		cache := &mockAssessmentCache{
			setFunc: func(_ context.Context, _ model.CreditAssessment) error {
				return fmt.Errorf("redis unavailable")
			},
		}
		publisher := &mockEventPublisher{}
		uc := newEvaluateUseCase(&mockAssessmentRepository{}, cache, publisher)

		_, err := uc.Execute(context.Background(), validEvaluateRequest())

		require.NoError(t, err)
		assert.Len(t, publisher.publishedEvents, 1)
	})

	t.Run("works without a cache", func(t *testing.T) {
		evaluator := service.NewRiskEvaluator(model.DefaultScoringPolicy())
		uc := usecase.NewEvaluateCreditUseCase(
			&mockAssessmentRepository{}, nil, &mockEventPublisher{}, evaluator, discardLogger(),
		)

		_, err := uc.Execute(context.Background(), validEvaluateRequest())

		require.NoError(t, err)
	})

	t.Run("fails when event publishing fails", func(t *testing.T) {
		publisher := &mockEventPublisher{
			publishFunc: func(_ context.Context, _ ...event.DomainEvent) error {
				return fmt.Errorf("kafka unavailable")
			},
		}
		uc := newEvaluateUseCase(&mockAssessmentRepository{}, &mockAssessmentCache{}, publisher)

		_, err := uc.Execute(context.Background(), validEvaluateRequest())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "publish events")
	})

	t.Run("uses the configured policy", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		evaluator := service.NewRiskEvaluator(model.ScoringPolicy{
			MinScoreApprove:  820,
			BaseInterestRate: decimal.RequireFromString("0.07"),
		})
		uc := usecase.NewEvaluateCreditUseCase(repo, nil, &mockEventPublisher{}, evaluator, discardLogger())

		resp, err := uc.Execute(context.Background(), validEvaluateRequest())

		require.NoError(t, err)
		assert.False(t, resp.Result.IsApproved)
		assert.True(t, decimal.RequireFromString("0.05").Equal(resp.Result.SuggestedInterestRate))
		assert.Equal(t, 820, repo.saved[0].Policy().MinScoreApprove)
	})
}
