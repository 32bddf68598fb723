package dto

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-risk-service/internal/domain/model"
)

// ErrInvalidRequest wraps every validation failure raised at this boundary.
var ErrInvalidRequest = errors.New("invalid request")

// Listing bounds for ListAssessmentsRequest.Limit.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// ---------------------------------------------------------------------------
// Request DTOs
// ---------------------------------------------------------------------------

// CreditProfile carries the applicant attributes that are scored. When
// DebtToIncomeRatio is nil it is derived from MonthlyDebt / MonthlyIncome.
type CreditProfile struct {
	MonthlyIncome     decimal.Decimal  `json:"monthly_income"`
	MonthlyDebt       decimal.Decimal  `json:"monthly_debt"`
	DebtToIncomeRatio *decimal.Decimal `json:"debt_to_income_ratio,omitempty"`
	Age               int              `json:"age"`
}

// ToCreditRequest validates the profile and converts it to the domain input.
func (p CreditProfile) ToCreditRequest() (model.CreditRequest, error) {
	if !p.MonthlyIncome.IsPositive() {
		return model.CreditRequest{}, invalid("monthly_income must be greater than zero")
	}
	if p.MonthlyDebt.IsNegative() {
		return model.CreditRequest{}, invalid("monthly_debt must not be negative")
	}
	if p.Age <= 0 {
		return model.CreditRequest{}, invalid("age must be greater than zero")
	}

	var dti decimal.Decimal
	if p.DebtToIncomeRatio != nil {
		if p.DebtToIncomeRatio.IsNegative() {
			return model.CreditRequest{}, invalid("debt_to_income_ratio must not be negative")
		}
		dti = *p.DebtToIncomeRatio
	} else {
		// Unrounded so values just past a bracket edge stay past it.
		dti = p.MonthlyDebt.Div(p.MonthlyIncome)
	}

	return model.CreditRequest{
		MonthlyIncome:     p.MonthlyIncome,
		MonthlyDebt:       p.MonthlyDebt,
		DebtToIncomeRatio: dti,
		Age:               p.Age,
	}, nil
}

// EvaluateCreditRequest asks for a scored and persisted assessment.
type EvaluateCreditRequest struct {
	TenantID    string `json:"tenant_id"`
	ApplicantID string `json:"applicant_id"`
	CreditProfile
}

// ToCreditRequest checks the identifiers and then the profile.
func (r EvaluateCreditRequest) ToCreditRequest() (model.CreditRequest, error) {
	if r.TenantID == "" {
		return model.CreditRequest{}, invalid("tenant_id is required")
	}
	if r.ApplicantID == "" {
		return model.CreditRequest{}, invalid("applicant_id is required")
	}
	return r.CreditProfile.ToCreditRequest()
}

// QuoteRequest asks for a stateless evaluation.
type QuoteRequest = CreditProfile

// GetAssessmentRequest identifies an assessment to retrieve.
type GetAssessmentRequest struct {
	TenantID     string `json:"tenant_id"`
	AssessmentID string `json:"assessment_id"`
}

// Validate reports missing identifiers.
func (r GetAssessmentRequest) Validate() error {
	if r.TenantID == "" {
		return invalid("tenant_id is required")
	}
	if r.AssessmentID == "" {
		return invalid("assessment_id is required")
	}
	return nil
}

// ListAssessmentsRequest selects an applicant's assessment history.
type ListAssessmentsRequest struct {
	TenantID    string `json:"tenant_id"`
	ApplicantID string `json:"applicant_id"`
	Limit       int    `json:"limit,omitempty"`
}

// Validate reports missing identifiers and out-of-range limits.
func (r ListAssessmentsRequest) Validate() error {
	if r.TenantID == "" {
		return invalid("tenant_id is required")
	}
	if r.ApplicantID == "" {
		return invalid("applicant_id is required")
	}
	if r.Limit < 0 {
		return invalid("limit must not be negative")
	}
	return nil
}

// EffectiveLimit applies the default and the upper bound.
func (r ListAssessmentsRequest) EffectiveLimit() int {
	switch {
	case r.Limit == 0:
		return DefaultListLimit
	case r.Limit > MaxListLimit:
		return MaxListLimit
	default:
		return r.Limit
	}
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, reason)
}

// ---------------------------------------------------------------------------
// Response DTOs
// ---------------------------------------------------------------------------

// ScoreFactorResponse is one adjustment applied to the base score.
type ScoreFactorResponse struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

// CreditScoreResponse is the external representation of an evaluation result.
type CreditScoreResponse struct {
	Score                 int                   `json:"score"`
	RiskLevel             string                `json:"risk_level"`
	IsApproved            bool                  `json:"is_approved"`
	SuggestedInterestRate decimal.Decimal       `json:"suggested_interest_rate"`
	MaxApprovedAmount     decimal.Decimal       `json:"max_approved_amount"`
	Factors               []ScoreFactorResponse `json:"factors,omitempty"`
}

// CreditAssessmentResponse is the external representation of a stored assessment.
type CreditAssessmentResponse struct {
	ID                string              `json:"id"`
	TenantID          string              `json:"tenant_id"`
	ApplicantID       string              `json:"applicant_id"`
	MonthlyIncome     decimal.Decimal     `json:"monthly_income"`
	MonthlyDebt       decimal.Decimal     `json:"monthly_debt"`
	DebtToIncomeRatio decimal.Decimal     `json:"debt_to_income_ratio"`
	Age               int                 `json:"age"`
	Result            CreditScoreResponse `json:"result"`
	MinScoreApprove   int                 `json:"min_score_approve"`
	BaseInterestRate  decimal.Decimal     `json:"base_interest_rate"`
	CreatedAt         time.Time           `json:"created_at"`
}

// ListAssessmentsResponse holds an applicant's history, newest first.
type ListAssessmentsResponse struct {
	Assessments []CreditAssessmentResponse `json:"assessments"`
	Count       int                        `json:"count"`
}
