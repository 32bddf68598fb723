package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-risk-service/internal/domain/model"
	"github.com/bibbank/credit-risk-service/internal/domain/valueobject"
)

const keyPrefix = "credit-assessment"

// AssessmentCache implements port.AssessmentCache on top of Redis. Entries
// expire after the configured TTL.
type AssessmentCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

// NewAssessmentCache creates a cache whose entries live for ttl.
func NewAssessmentCache(client goredis.Cmdable, ttl time.Duration) *AssessmentCache {
	return &AssessmentCache{client: client, ttl: ttl}
}

type cachedFactor struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

type cachedAssessment struct {
	ID                    string                `json:"id"`
	TenantID              string                `json:"tenant_id"`
	ApplicantID           string                `json:"applicant_id"`
	MonthlyIncome         decimal.Decimal       `json:"monthly_income"`
	MonthlyDebt           decimal.Decimal       `json:"monthly_debt"`
	DebtToIncomeRatio     decimal.Decimal       `json:"debt_to_income_ratio"`
	Age                   int                   `json:"age"`
	Score                 int                   `json:"score"`
	RiskLevel             valueobject.RiskLevel `json:"risk_level"`
	IsApproved            bool                  `json:"is_approved"`
	SuggestedInterestRate decimal.Decimal       `json:"suggested_interest_rate"`
	MaxApprovedAmount     decimal.Decimal       `json:"max_approved_amount"`
	Factors               []cachedFactor        `json:"factors,omitempty"`
	MinScoreApprove       int                   `json:"min_score_approve"`
	BaseInterestRate      decimal.Decimal       `json:"base_interest_rate"`
	CreatedAt             time.Time             `json:"created_at"`
}

// Get returns (_, false, nil) on a miss.
func (c *AssessmentCache) Get(ctx context.Context, tenantID, id string) (model.CreditAssessment, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(tenantID, id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return model.CreditAssessment{}, false, nil
	}
	if err != nil {
		return model.CreditAssessment{}, false, fmt.Errorf("redis get assessment %s: %w", id, err)
	}

	a, err := decode(raw)
	if err != nil {
		return model.CreditAssessment{}, false, err
	}
	return a, true, nil
}

// Set stores the assessment under its tenant-scoped key.
func (c *AssessmentCache) Set(ctx context.Context, a model.CreditAssessment) error {
	raw, err := encode(a)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, cacheKey(a.TenantID(), a.ID()), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set assessment %s: %w", a.ID(), err)
	}
	return nil
}

func cacheKey(tenantID, id string) string {
	return keyPrefix + ":" + tenantID + ":" + id
}

func encode(a model.CreditAssessment) ([]byte, error) {
	req, res, policy := a.Request(), a.Result(), a.Policy()
	ca := cachedAssessment{
		ID:                    a.ID(),
		TenantID:              a.TenantID(),
		ApplicantID:           a.ApplicantID(),
		MonthlyIncome:         req.MonthlyIncome,
		MonthlyDebt:           req.MonthlyDebt,
		DebtToIncomeRatio:     req.DebtToIncomeRatio,
		Age:                   req.Age,
		Score:                 res.Score,
		RiskLevel:             res.RiskLevel,
		IsApproved:            res.IsApproved,
		SuggestedInterestRate: res.SuggestedInterestRate,
		MaxApprovedAmount:     res.MaxApprovedAmount,
		MinScoreApprove:       policy.MinScoreApprove,
		BaseInterestRate:      policy.BaseInterestRate,
		CreatedAt:             a.CreatedAt(),
	}
	for _, f := range res.Factors {
		ca.Factors = append(ca.Factors, cachedFactor{Name: f.Name, Points: f.Points})
	}

	raw, err := json.Marshal(ca)
	if err != nil {
		return nil, fmt.Errorf("marshal cached assessment: %w", err)
	}
	return raw, nil
}

func decode(raw []byte) (model.CreditAssessment, error) {
	var ca cachedAssessment
	if err := json.Unmarshal(raw, &ca); err != nil {
		return model.CreditAssessment{}, fmt.Errorf("unmarshal cached assessment: %w", err)
	}

	var factors []model.ScoreFactor
	for _, f := range ca.Factors {
		factors = append(factors, model.ScoreFactor{Name: f.Name, Points: f.Points})
	}

	return model.ReconstructCreditAssessment(
		ca.ID, ca.TenantID, ca.ApplicantID,
		model.CreditRequest{
			MonthlyIncome:     ca.MonthlyIncome,
			MonthlyDebt:       ca.MonthlyDebt,
			DebtToIncomeRatio: ca.DebtToIncomeRatio,
			Age:               ca.Age,
		},
		model.CreditScore{
			Score:                 ca.Score,
			RiskLevel:             ca.RiskLevel,
			IsApproved:            ca.IsApproved,
			SuggestedInterestRate: ca.SuggestedInterestRate,
			MaxApprovedAmount:     ca.MaxApprovedAmount,
			Factors:               factors,
		},
		model.ScoringPolicy{
			MinScoreApprove:  ca.MinScoreApprove,
			BaseInterestRate: ca.BaseInterestRate,
		},
		ca.CreatedAt,
	), nil
}
