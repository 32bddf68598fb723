package usecase

import (
	"context"
	"fmt"

	"github.com/bibbank/credit-risk-service/internal/application/dto"
	"github.com/bibbank/credit-risk-service/internal/domain/port"
)

// ListAssessmentsUseCase returns an applicant's assessment history.
type ListAssessmentsUseCase struct {
	repo port.AssessmentRepository
}

// NewListAssessmentsUseCase wires dependencies.
func NewListAssessmentsUseCase(repo port.AssessmentRepository) *ListAssessmentsUseCase {
	return &ListAssessmentsUseCase{repo: repo}
}

// Execute lists assessments newest first.
func (uc *ListAssessmentsUseCase) Execute(
	ctx context.Context,
	req dto.ListAssessmentsRequest,
) (dto.ListAssessmentsResponse, error) {
	if err := req.Validate(); err != nil {
		return dto.ListAssessmentsResponse{}, err
	}

	assessments, err := uc.repo.FindByApplicantID(ctx, req.TenantID, req.ApplicantID, req.EffectiveLimit())
	if err != nil {
		return dto.ListAssessmentsResponse{}, fmt.Errorf("list assessments: %w", err)
	}

	resp := dto.ListAssessmentsResponse{
		Assessments: make([]dto.CreditAssessmentResponse, 0, len(assessments)),
		Count:       len(assessments),
	}
	for _, a := range assessments {
		resp.Assessments = append(resp.Assessments, toAssessmentResponse(a))
	}
	return resp, nil
}
