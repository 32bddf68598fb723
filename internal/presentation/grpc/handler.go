package grpc

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/bibbank/credit-risk-service/internal/application/dto"
	"github.com/bibbank/credit-risk-service/internal/application/usecase"
	"github.com/bibbank/credit-risk-service/internal/domain/model"
	"github.com/bibbank/credit-risk-service/pkg/auth"
)

// requireRole checks that the caller has at least one of the given roles.
func requireRole(ctx context.Context, roles ...string) (*auth.Claims, error) {
	claims, ok := auth.ClaimsFromContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, "authentication required")
	}
	if !claims.HasAnyRole(roles...) {
		return nil, status.Error(codes.PermissionDenied, "insufficient permissions")
	}
	return claims, nil
}

// Compile-time assertion that CreditRiskHandler implements CreditRiskServiceServer.
var _ CreditRiskServiceServer = (*CreditRiskHandler)(nil)

// CreditRiskHandler implements the gRPC CreditRiskServiceServer interface.
// The tenant is always taken from the caller's token.
type CreditRiskHandler struct {
	UnimplementedCreditRiskServiceServer
	evaluate *usecase.EvaluateCreditUseCase
	quote    *usecase.QuoteUseCase
	get      *usecase.GetAssessmentUseCase
	list     *usecase.ListAssessmentsUseCase
	logger   *slog.Logger
}

// NewCreditRiskHandler creates a new gRPC handler.
func NewCreditRiskHandler(
	evaluate *usecase.EvaluateCreditUseCase,
	quote *usecase.QuoteUseCase,
	get *usecase.GetAssessmentUseCase,
	list *usecase.ListAssessmentsUseCase,
	logger *slog.Logger,
) *CreditRiskHandler {
	return &CreditRiskHandler{
		evaluate: evaluate,
		quote:    quote,
		get:      get,
		list:     list,
		logger:   logger,
	}
}

// Proto-aligned request/response message types. Decimal values travel as
// strings.

// CreditProfileMsg represents the proto CreditProfile message.
type CreditProfileMsg struct {
	MonthlyIncome     string `json:"monthly_income"`
	MonthlyDebt       string `json:"monthly_debt"`
	DebtToIncomeRatio string `json:"debt_to_income_ratio,omitempty"`
	Age               int32  `json:"age"`
}

// ScoreFactorMsg represents the proto ScoreFactor message.
type ScoreFactorMsg struct {
	Name   string `json:"name"`
	Points int32  `json:"points"`
}

// CreditScoreMsg represents the proto CreditScore message.
type CreditScoreMsg struct {
	Score                 int32            `json:"score"`
	RiskLevel             string           `json:"risk_level"`
	IsApproved            bool             `json:"is_approved"`
	SuggestedInterestRate string           `json:"suggested_interest_rate"`
	MaxApprovedAmount     string           `json:"max_approved_amount"`
	Factors               []ScoreFactorMsg `json:"factors,omitempty"`
}

// CreditAssessmentMsg represents the proto CreditAssessment message.
type CreditAssessmentMsg struct {
	ID          string            `json:"id"`
	TenantID    string            `json:"tenant_id"`
	ApplicantID string            `json:"applicant_id"`
	Profile     *CreditProfileMsg `json:"profile"`
	Result      *CreditScoreMsg   `json:"result"`
	CreatedAt   string            `json:"created_at"`
}

// EvaluateCreditRequest represents the proto EvaluateCreditRequest message.
type EvaluateCreditRequest struct {
	ApplicantID string            `json:"applicant_id"`
	Profile     *CreditProfileMsg `json:"profile"`
}

// EvaluateCreditResponse represents the proto EvaluateCreditResponse message.
type EvaluateCreditResponse struct {
	Assessment *CreditAssessmentMsg `json:"assessment"`
}

// QuoteCreditRequest represents the proto QuoteCreditRequest message.
type QuoteCreditRequest struct {
	Profile *CreditProfileMsg `json:"profile"`
}

// QuoteCreditResponse represents the proto QuoteCreditResponse message.
type QuoteCreditResponse struct {
	Result *CreditScoreMsg `json:"result"`
}

// GetAssessmentRequest represents the proto GetAssessmentRequest message.
type GetAssessmentRequest struct {
	ID string `json:"id"`
}

// GetAssessmentResponse represents the proto GetAssessmentResponse message.
type GetAssessmentResponse struct {
	Assessment *CreditAssessmentMsg `json:"assessment"`
}

// ListAssessmentsRequest represents the proto ListAssessmentsRequest message.
type ListAssessmentsRequest struct {
	ApplicantID string `json:"applicant_id"`
	Limit       int32  `json:"limit"`
}

// ListAssessmentsResponse represents the proto ListAssessmentsResponse message.
type ListAssessmentsResponse struct {
	Assessments []*CreditAssessmentMsg `json:"assessments"`
}

// EvaluateCredit scores an applicant and records the assessment.
func (h *CreditRiskHandler) EvaluateCredit(ctx context.Context, req *EvaluateCreditRequest) (*EvaluateCreditResponse, error) {
	claims, err := requireRole(ctx, auth.RoleAdmin, auth.RoleRiskOfficer, auth.RoleAPIClient)
	if err != nil {
		return nil, err
	}
	if req == nil || req.Profile == nil {
		return nil, status.Error(codes.InvalidArgument, "profile is required")
	}

	profile, err := parseProfile(req.Profile)
	if err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "evaluating credit",
		slog.String("tenant_id", claims.TenantID.String()),
		slog.String("applicant_id", req.ApplicantID),
	)

	result, err := h.evaluate.Execute(ctx, dto.EvaluateCreditRequest{
		TenantID:      claims.TenantID.String(),
		ApplicantID:   req.ApplicantID,
		CreditProfile: profile,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "evaluate credit", err)
	}

	return &EvaluateCreditResponse{Assessment: toAssessmentMsg(result)}, nil
}

// QuoteCredit scores a profile without recording it.
func (h *CreditRiskHandler) QuoteCredit(ctx context.Context, req *QuoteCreditRequest) (*QuoteCreditResponse, error) {
	if _, err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleRiskOfficer, auth.RoleAPIClient); err != nil {
		return nil, err
	}
	if req == nil || req.Profile == nil {
		return nil, status.Error(codes.InvalidArgument, "profile is required")
	}

	profile, err := parseProfile(req.Profile)
	if err != nil {
		return nil, err
	}

	result, err := h.quote.Execute(profile)
	if err != nil {
		return nil, h.toStatus(ctx, "quote credit", err)
	}

	return &QuoteCreditResponse{Result: toScoreMsg(result)}, nil
}

// GetAssessment returns one assessment of the caller's tenant.
func (h *CreditRiskHandler) GetAssessment(ctx context.Context, req *GetAssessmentRequest) (*GetAssessmentResponse, error) {
	claims, err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleRiskOfficer, auth.RoleAuditor)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.get.Execute(ctx, dto.GetAssessmentRequest{
		TenantID:     claims.TenantID.String(),
		AssessmentID: req.ID,
	})
	if err != nil {
		return nil, h.toStatus(ctx, "get assessment", err)
	}

	return &GetAssessmentResponse{Assessment: toAssessmentMsg(result)}, nil
}

// ListAssessments returns an applicant's history, newest first.
func (h *CreditRiskHandler) ListAssessments(ctx context.Context, req *ListAssessmentsRequest) (*ListAssessmentsResponse, error) {
	claims, err := requireRole(ctx, auth.RoleAdmin, auth.RoleOperator, auth.RoleRiskOfficer, auth.RoleAuditor)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	result, err := h.list.Execute(ctx, dto.ListAssessmentsRequest{
		TenantID:    claims.TenantID.String(),
		ApplicantID: req.ApplicantID,
		Limit:       int(req.Limit),
	})
	if err != nil {
		return nil, h.toStatus(ctx, "list assessments", err)
	}

	resp := &ListAssessmentsResponse{Assessments: make([]*CreditAssessmentMsg, 0, len(result.Assessments))}
	for _, a := range result.Assessments {
		resp.Assessments = append(resp.Assessments, toAssessmentMsg(a))
	}
	return resp, nil
}

// toStatus maps use case errors to gRPC codes. Internal details are logged,
// never returned.
func (h *CreditRiskHandler) toStatus(ctx context.Context, op string, err error) error {
	switch {
	case errors.Is(err, dto.ErrInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, model.ErrAssessmentNotFound):
		return status.Error(codes.NotFound, "assessment not found")
	default:
		h.logger.ErrorContext(ctx, "request failed", slog.String("op", op), slog.String("error", err.Error()))
		return status.Error(codes.Internal, "internal error")
	}
}

func parseProfile(msg *CreditProfileMsg) (dto.CreditProfile, error) {
	income, err := decimal.NewFromString(msg.MonthlyIncome)
	if err != nil {
		return dto.CreditProfile{}, status.Errorf(codes.InvalidArgument, "invalid monthly_income: %v", err)
	}
	debt, err := decimal.NewFromString(msg.MonthlyDebt)
	if err != nil {
		return dto.CreditProfile{}, status.Errorf(codes.InvalidArgument, "invalid monthly_debt: %v", err)
	}

	profile := dto.CreditProfile{
		MonthlyIncome: income,
		MonthlyDebt:   debt,
		Age:           int(msg.Age),
	}
	if msg.DebtToIncomeRatio != "" {
		dti, err := decimal.NewFromString(msg.DebtToIncomeRatio)
		if err != nil {
			return dto.CreditProfile{}, status.Errorf(codes.InvalidArgument, "invalid debt_to_income_ratio: %v", err)
		}
		profile.DebtToIncomeRatio = &dti
	}
	return profile, nil
}

func toScoreMsg(r dto.CreditScoreResponse) *CreditScoreMsg {
	msg := &CreditScoreMsg{
		Score:                 int32(r.Score),
		RiskLevel:             r.RiskLevel,
		IsApproved:            r.IsApproved,
		SuggestedInterestRate: r.SuggestedInterestRate.String(),
		MaxApprovedAmount:     r.MaxApprovedAmount.StringFixedBank(2),
	}
	for _, f := range r.Factors {
		msg.Factors = append(msg.Factors, ScoreFactorMsg{Name: f.Name, Points: int32(f.Points)})
	}
	return msg
}

func toAssessmentMsg(r dto.CreditAssessmentResponse) *CreditAssessmentMsg {
	return &CreditAssessmentMsg{
		ID:          r.ID,
		TenantID:    r.TenantID,
		ApplicantID: r.ApplicantID,
		Profile: &CreditProfileMsg{
			MonthlyIncome:     r.MonthlyIncome.String(),
			MonthlyDebt:       r.MonthlyDebt.String(),
			DebtToIncomeRatio: r.DebtToIncomeRatio.String(),
			Age:               int32(r.Age),
		},
		Result:    toScoreMsg(r.Result),
		CreatedAt: r.CreatedAt.Format(time.RFC3339Nano),
	}
}
