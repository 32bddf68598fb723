package usecase

import (
	"github.com/bibbank/credit-risk-service/internal/application/dto"
	"github.com/bibbank/credit-risk-service/internal/domain/model"
)

func toScoreResponse(s model.CreditScore) dto.CreditScoreResponse {
	resp := dto.CreditScoreResponse{
		Score:                 s.Score,
		RiskLevel:             s.RiskLevel.String(),
		IsApproved:            s.IsApproved,
		SuggestedInterestRate: s.SuggestedInterestRate,
		MaxApprovedAmount:     s.MaxApprovedAmount,
	}
	for _, f := range s.Factors {
		resp.Factors = append(resp.Factors, dto.ScoreFactorResponse{Name: f.Name, Points: f.Points})
	}
	return resp
}

func toAssessmentResponse(a model.CreditAssessment) dto.CreditAssessmentResponse {
	req := a.Request()
	return dto.CreditAssessmentResponse{
		ID:                a.ID(),
		TenantID:          a.TenantID(),
		ApplicantID:       a.ApplicantID(),
		MonthlyIncome:     req.MonthlyIncome,
		MonthlyDebt:       req.MonthlyDebt,
		DebtToIncomeRatio: req.DebtToIncomeRatio,
		Age:               req.Age,
		Result:            toScoreResponse(a.Result()),
		MinScoreApprove:   a.Policy().MinScoreApprove,
		BaseInterestRate:  a.Policy().BaseInterestRate,
		CreatedAt:         a.CreatedAt(),
	}
}
