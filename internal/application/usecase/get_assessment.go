package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bibbank/credit-risk-service/internal/application/dto"
	"github.com/bibbank/credit-risk-service/internal/domain/port"
)

// GetAssessmentUseCase retrieves an assessment by ID, consulting the cache first.
type GetAssessmentUseCase struct {
	repo   port.AssessmentRepository
	cache  port.AssessmentCache
	logger *slog.Logger
}

// NewGetAssessmentUseCase wires dependencies. cache may be nil.
func NewGetAssessmentUseCase(
	repo port.AssessmentRepository,
	cache port.AssessmentCache,
	logger *slog.Logger,
) *GetAssessmentUseCase {
	return &GetAssessmentUseCase{repo: repo, cache: cache, logger: logger}
}

// Execute returns the assessment or an error wrapping model.ErrAssessmentNotFound.
func (uc *GetAssessmentUseCase) Execute(
	ctx context.Context,
	req dto.GetAssessmentRequest,
) (dto.CreditAssessmentResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.CreditAssessmentResponse{}, err
	}

	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx, req.TenantID, req.AssessmentID)
		switch {
		case err != nil:
			uc.logger.WarnContext(ctx, "assessment cache read failed",
				"assessment_id", req.AssessmentID, "error", err)
		case ok:
			return toAssessmentResponse(cached), nil
		}
	}

	assessment, err := uc.repo.FindByID(ctx, req.TenantID, req.AssessmentID)
	if err != nil {
		return dto.CreditAssessmentResponse{}, fmt.Errorf("find assessment: %w", err)
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, assessment); err != nil {
			uc.logger.WarnContext(ctx, "failed to cache assessment",
				"assessment_id", assessment.ID(), "error", err)
		}
	}

	return toAssessmentResponse(assessment), nil
}
