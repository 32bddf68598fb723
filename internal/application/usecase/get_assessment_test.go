package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-risk-service/internal/application/dto"
	"github.com/bibbank/credit-risk-service/internal/application/usecase"
	"github.com/bibbank/credit-risk-service/internal/domain/model"
	"github.com/bibbank/credit-risk-service/internal/domain/valueobject"
)

func storedAssessment(id string, createdAt time.Time) model.CreditAssessment {
	return model.ReconstructCreditAssessment(
		id, "tenant-001", "applicant-001",
		model.CreditRequest{
			MonthlyIncome:     decimal.NewFromInt(1000),
			MonthlyDebt:       decimal.NewFromInt(100),
			DebtToIncomeRatio: decimal.RequireFromString("0.10"),
			Age:               19,
		},
		model.CreditScore{
			Score:                 680,
			RiskLevel:             valueobject.RiskLevelMedium,
			IsApproved:            true,
			SuggestedInterestRate: decimal.RequireFromString("0.10"),
			MaxApprovedAmount:     decimal.NewFromInt(9000),
		},
		model.DefaultScoringPolicy(),
		createdAt,
	)
}

func TestGetAssessment_Execute(t *testing.T) {
	req := dto.GetAssessmentRequest{TenantID: "tenant-001", AssessmentID: "assessment-1"}

	t.Run("returns a cached assessment without a database read", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		cache := &mockAssessmentCache{
			getFunc: func(_ context.Context, tenantID, id string) (model.CreditAssessment, bool, error) {
				assert.Equal(t, "tenant-001", tenantID)
				return storedAssessment(id, time.Now()), true, nil
			},
		}
		uc := usecase.NewGetAssessmentUseCase(repo, cache, discardLogger())

		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "assessment-1", resp.ID)
		assert.Equal(t, "MEDIUM", resp.Result.RiskLevel)
		assert.Zero(t, repo.findByIDHit)
	})

	t.Run("falls back to the repository and fills the cache", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			findByIDFunc: func(_ context.Context, _, id string) (model.CreditAssessment, error) {
				return storedAssessment(id, time.Now()), nil
			},
		}
		cache := &mockAssessmentCache{}
		uc := usecase.NewGetAssessmentUseCase(repo, cache, discardLogger())

		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 680, resp.Result.Score)
		assert.Equal(t, 1, repo.findByIDHit)
		require.Len(t, cache.stored, 1)
		assert.Equal(t, "assessment-1", cache.stored[0].ID())
	})

	t.Run("treats cache errors as a miss", func(t *testing.T) {
		repo := &mockAssessmentRepository{
			findByIDFunc: func(_ context.Context, _, id string) (model.CreditAssessment, error) {
				return storedAssessment(id, time.Now()), nil
			},
		}
		cache := &mockAssessmentCache{
			getFunc: func(_ context.Context, _, _ string) (model.CreditAssessment, bool, error) {
				return model.CreditAssessment{}, false, fmt.Errorf("connection refused")
			},
		}
		uc := usecase.NewGetAssessmentUseCase(repo, cache, discardLogger())

		_, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, 1, repo.findByIDHit)
	})

	t.Run("reports not found", func(t *testing.T) {
		uc := usecase.NewGetAssessmentUseCase(&mockAssessmentRepository{}, nil, discardLogger())

		_, err := uc.Execute(context.Background(), req)

		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrAssessmentNotFound))
	})

	t.Run("rejects a missing ID", func(t *testing.T) {
		repo := &mockAssessmentRepository{}
		uc := usecase.NewGetAssessmentUseCase(repo, nil, discardLogger())

		_, err := uc.Execute(context.Background(), dto.GetAssessmentRequest{TenantID: "tenant-001"})

		assert.ErrorIs(t, err, dto.ErrInvalidRequest)
		assert.Zero(t, repo.findByIDHit)
	})
}
