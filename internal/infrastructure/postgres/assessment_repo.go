package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/bibbank/credit-risk-service/internal/domain/model"
	"github.com/bibbank/credit-risk-service/internal/domain/valueobject"
	pkgpostgres "github.com/bibbank/credit-risk-service/pkg/postgres"
)

// AssessmentRepo implements port.AssessmentRepository.
type AssessmentRepo struct {
	db pkgpostgres.Querier
}

// NewAssessmentRepo creates a PostgreSQL-backed assessment repository.
func NewAssessmentRepo(db pkgpostgres.Querier) *AssessmentRepo {
	return &AssessmentRepo{db: db}
}

type scannable interface {
	Scan(dest ...any) error
}

type factorRow struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

const selectAssessment = `
	SELECT id::text, tenant_id, applicant_id,
	       monthly_income::text, monthly_debt::text, debt_to_income_ratio::text, age,
	       score, risk_level, is_approved,
	       suggested_interest_rate::text, max_approved_amount::text, factors,
	       min_score_approve, base_interest_rate::text, created_at
	FROM credit_assessments
`

// Save inserts a new assessment. Assessments are never updated.
func (r *AssessmentRepo) Save(ctx context.Context, a model.CreditAssessment) error {
	factors := make([]factorRow, 0, len(a.Result().Factors))
	for _, f := range a.Result().Factors {
		factors = append(factors, factorRow{Name: f.Name, Points: f.Points})
	}
	factorsJSON, err := json.Marshal(factors)
	if err != nil {
		return fmt.Errorf("marshal factors: %w", err)
	}

	req, res, policy := a.Request(), a.Result(), a.Policy()
	query := `
		INSERT INTO credit_assessments (
			id, tenant_id, applicant_id,
			monthly_income, monthly_debt, debt_to_income_ratio, age,
			score, risk_level, is_approved,
			suggested_interest_rate, max_approved_amount, factors,
			min_score_approve, base_interest_rate, created_at
		) VALUES (
			$1, $2, $3,
			$4::numeric, $5::numeric, $6::numeric, $7,
			$8, $9, $10,
			$11::numeric, $12::numeric, $13,
			$14, $15::numeric, $16
		)
	`
	tag, err := r.db.Exec(ctx, query,
		a.ID(), a.TenantID(), a.ApplicantID(),
		req.MonthlyIncome.String(), req.MonthlyDebt.String(), req.DebtToIncomeRatio.String(), req.Age,
		res.Score, res.RiskLevel.String(), res.IsApproved,
		res.SuggestedInterestRate.String(), res.MaxApprovedAmount.String(), factorsJSON,
		policy.MinScoreApprove, policy.BaseInterestRate.String(), a.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("save credit assessment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return errors.New("failed to save credit assessment")
	}
	return nil
}

// FindByID retrieves an assessment by ID within a tenant.
func (r *AssessmentRepo) FindByID(ctx context.Context, tenantID, id string) (model.CreditAssessment, error) {
	row := r.db.QueryRow(ctx, selectAssessment+`WHERE tenant_id = $1 AND id::text = $2`, tenantID, id)
	a, err := scanAssessment(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.CreditAssessment{}, model.ErrAssessmentNotFound
	}
	return a, err
}

// FindByApplicantID retrieves an applicant's assessments, newest first.
func (r *AssessmentRepo) FindByApplicantID(
	ctx context.Context,
	tenantID, applicantID string,
	limit int,
) ([]model.CreditAssessment, error) {
	query := selectAssessment + `
		WHERE tenant_id = $1 AND applicant_id = $2
		ORDER BY created_at DESC, id
		LIMIT $3
	`
	rows, err := r.db.Query(ctx, query, tenantID, applicantID, limit)
	if err != nil {
		return nil, fmt.Errorf("query credit assessments: %w", err)
	}
	defer rows.Close()

	var result []model.CreditAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func scanAssessment(s scannable) (model.CreditAssessment, error) {
	var (
		id, tenantID, applicantID string
		income, debt, dti         string
		age, score, minScore      int
		riskLevelStr              string
		approved                  bool
		rate, maxAmount, baseRate string
		factorsJSON               []byte
		createdAt                 time.Time
	)

	err := s.Scan(
		&id, &tenantID, &applicantID,
		&income, &debt, &dti, &age,
		&score, &riskLevelStr, &approved,
		&rate, &maxAmount, &factorsJSON,
		&minScore, &baseRate, &createdAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.CreditAssessment{}, err
		}
		return model.CreditAssessment{}, fmt.Errorf("scan credit assessment: %w", err)
	}

	riskLevel, err := valueobject.RiskLevelFromString(riskLevelStr)
	if err != nil {
		return model.CreditAssessment{}, fmt.Errorf("parse risk level: %w", err)
	}

	var rows []factorRow
	if err := json.Unmarshal(factorsJSON, &rows); err != nil {
		return model.CreditAssessment{}, fmt.Errorf("unmarshal factors: %w", err)
	}
	var factors []model.ScoreFactor
	for _, f := range rows {
		factors = append(factors, model.ScoreFactor{Name: f.Name, Points: f.Points})
	}

	decimals, err := parseDecimals(income, debt, dti, rate, maxAmount, baseRate)
	if err != nil {
		return model.CreditAssessment{}, err
	}

	return model.ReconstructCreditAssessment(
		id, tenantID, applicantID,
		model.CreditRequest{
			MonthlyIncome:     decimals[0],
			MonthlyDebt:       decimals[1],
			DebtToIncomeRatio: decimals[2],
			Age:               age,
		},
		model.CreditScore{
			Score:                 score,
			RiskLevel:             riskLevel,
			IsApproved:            approved,
			SuggestedInterestRate: decimals[3],
			MaxApprovedAmount:     decimals[4],
			Factors:               factors,
		},
		model.ScoringPolicy{
			MinScoreApprove:  minScore,
			BaseInterestRate: decimals[5],
		},
		createdAt.UTC(),
	), nil
}

func parseDecimals(values ...string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("parse numeric %q: %w", v, err)
		}
		out[i] = d
	}
	return out, nil
}
