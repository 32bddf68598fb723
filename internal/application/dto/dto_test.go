package dto_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bibbank/credit-risk-service/internal/application/dto"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }

func validEvaluateRequest() dto.EvaluateCreditRequest {
	return dto.EvaluateCreditRequest{
		TenantID:    "tenant-001",
		ApplicantID: "applicant-001",
		CreditProfile: dto.CreditProfile{
			MonthlyIncome: dec("4000"),
			MonthlyDebt:   dec("500"),
			Age:           30,
		},
	}
}

func TestCreditProfile_ToCreditRequest(t *testing.T) {
	t.Run("derives the ratio when omitted", func(t *testing.T) {
		req, err := validEvaluateRequest().ToCreditRequest()
		require.NoError(t, err)

		assert.True(t, dec("0.125").Equal(req.DebtToIncomeRatio), "got %s", req.DebtToIncomeRatio)
		assert.Equal(t, 30, req.Age)
	})

	t.Run("keeps the derived ratio unrounded", func(t *testing.T) {
		p := dto.CreditProfile{MonthlyIncome: dec("10000"), MonthlyDebt: dec("7000.4"), Age: 30}

		req, err := p.ToCreditRequest()
		require.NoError(t, err)

		assert.True(t, dec("0.70004").Equal(req.DebtToIncomeRatio), "got %s", req.DebtToIncomeRatio)
	})

	t.Run("keeps an explicit ratio as given", func(t *testing.T) {
		r := validEvaluateRequest()
		r.DebtToIncomeRatio = ptr(dec("0.80"))

		req, err := r.ToCreditRequest()
		require.NoError(t, err)

		assert.True(t, dec("0.80").Equal(req.DebtToIncomeRatio))
	})

	tests := []struct {
		name    string
		mutate  func(r *dto.EvaluateCreditRequest)
		wantErr string
	}{
		{"missing tenant", func(r *dto.EvaluateCreditRequest) { r.TenantID = "" }, "tenant_id"},
		{"missing applicant", func(r *dto.EvaluateCreditRequest) { r.ApplicantID = "" }, "applicant_id"},
		{"zero income", func(r *dto.EvaluateCreditRequest) { r.MonthlyIncome = decimal.Zero }, "monthly_income"},
		{"negative income", func(r *dto.EvaluateCreditRequest) { r.MonthlyIncome = dec("-1") }, "monthly_income"},
		{"negative debt", func(r *dto.EvaluateCreditRequest) { r.MonthlyDebt = dec("-0.01") }, "monthly_debt"},
		{"zero age", func(r *dto.EvaluateCreditRequest) { r.Age = 0 }, "age"},
		{"negative ratio", func(r *dto.EvaluateCreditRequest) { r.DebtToIncomeRatio = ptr(dec("-0.1")) }, "debt_to_income_ratio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validEvaluateRequest()
			tt.mutate(&r)

			_, err := r.ToCreditRequest()

			require.Error(t, err)
			assert.True(t, errors.Is(err, dto.ErrInvalidRequest))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetAssessmentRequest_Validate(t *testing.T) {
	assert.NoError(t, dto.GetAssessmentRequest{TenantID: "t", AssessmentID: "a"}.Validate())
	assert.ErrorIs(t, dto.GetAssessmentRequest{AssessmentID: "a"}.Validate(), dto.ErrInvalidRequest)
	assert.ErrorIs(t, dto.GetAssessmentRequest{TenantID: "t"}.Validate(), dto.ErrInvalidRequest)
}

func TestListAssessmentsRequest(t *testing.T) {
	tests := []struct {
		limit int
		want  int
	}{
		{0, dto.DefaultListLimit},
		{1, 1},
		{50, 50},
		{dto.MaxListLimit, dto.MaxListLimit},
		{500, dto.MaxListLimit},
	}
	for _, tt := range tests {
		r := dto.ListAssessmentsRequest{TenantID: "t", ApplicantID: "a", Limit: tt.limit}
		require.NoError(t, r.Validate())
		assert.Equal(t, tt.want, r.EffectiveLimit(), "limit %d", tt.limit)
	}

	assert.ErrorIs(t, dto.ListAssessmentsRequest{TenantID: "t", ApplicantID: "a", Limit: -1}.Validate(), dto.ErrInvalidRequest)
	assert.ErrorIs(t, dto.ListAssessmentsRequest{ApplicantID: "a"}.Validate(), dto.ErrInvalidRequest)
}
