package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/bibbank/credit-risk-service/internal/application/dto"
	"github.com/bibbank/credit-risk-service/internal/domain/model"
	"github.com/bibbank/credit-risk-service/internal/domain/port"
	"github.com/bibbank/credit-risk-service/internal/domain/service"
)

const instrumentationName = "github.com/bibbank/credit-risk-service/internal/application/usecase"

// EvaluateCreditUseCase scores an applicant, records the assessment and
// announces it.
type EvaluateCreditUseCase struct {
	repo      port.AssessmentRepository
	cache     port.AssessmentCache
	publisher port.EventPublisher
	evaluator *service.RiskEvaluator
	logger    *slog.Logger

	tracer      trace.Tracer
	assessments metric.Int64Counter
}

// NewEvaluateCreditUseCase wires dependencies. cache may be nil.
func NewEvaluateCreditUseCase(
	repo port.AssessmentRepository,
	cache port.AssessmentCache,
	publisher port.EventPublisher,
	evaluator *service.RiskEvaluator,
	logger *slog.Logger,
) *EvaluateCreditUseCase {
	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"credit_assessments",
		metric.WithDescription("Credit assessments recorded, by risk level and decision."),
	)
	if err != nil {
		otel.Handle(err)
	}

	return &EvaluateCreditUseCase{
		repo:        repo,
		cache:       cache,
		publisher:   publisher,
		evaluator:   evaluator,
		logger:      logger,
		tracer:      otel.Tracer(instrumentationName),
		assessments: counter,
	}
}

// Execute validates, scores, persists, caches and publishes an assessment.
func (uc *EvaluateCreditUseCase) Execute(
	ctx context.Context,
	req dto.EvaluateCreditRequest,
) (dto.CreditAssessmentResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "EvaluateCredit",
		trace.WithAttributes(attribute.String("tenant.id", req.TenantID)))
	defer span.End()

	resp, err := uc.execute(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return dto.CreditAssessmentResponse{}, err
	}

	span.SetAttributes(
		attribute.Int("credit.score", resp.Result.Score),
		attribute.String("credit.risk_level", resp.Result.RiskLevel),
		attribute.Bool("credit.approved", resp.Result.IsApproved),
	)
	return resp, nil
}

func (uc *EvaluateCreditUseCase) execute(
	ctx context.Context,
	req dto.EvaluateCreditRequest,
) (dto.CreditAssessmentResponse, error) {
	now := time.Now().UTC()

	// 1. Validate and prepare the evaluator input.
	creditReq, err := req.ToCreditRequest()
	if err != nil {
		return dto.CreditAssessmentResponse{}, err
	}

	// 2. Score.
	result := uc.evaluator.Evaluate(creditReq)

	// 3. Create the assessment aggregate.
	assessment, err := model.NewCreditAssessment(
		req.TenantID, req.ApplicantID, creditReq, result, uc.evaluator.Policy(), now,
	)
	if err != nil {
		return dto.CreditAssessmentResponse{}, fmt.Errorf("create assessment: %w", err)
	}

	// 4. Persist.
	if err := uc.repo.Save(ctx, assessment); err != nil {
		return dto.CreditAssessmentResponse{}, fmt.Errorf("save assessment: %w", err)
	}
	uc.assessments.Add(ctx, 1, metric.WithAttributes(
		attribute.String("risk_level", result.RiskLevel.String()),
		attribute.String("approved", strconv.FormatBool(result.IsApproved)),
	))

	// 5. Warm the cache; a failure here only costs a later database read.
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, assessment.ClearEvents()); err != nil {
			uc.logger.WarnContext(ctx, "failed to cache assessment",
				"assessment_id", assessment.ID(), "error", err)
		}
	}

	// 6. Publish domain events.
	if err := uc.publisher.Publish(ctx, assessment.DomainEvents()...); err != nil {
		return dto.CreditAssessmentResponse{}, fmt.Errorf("publish events: %w", err)
	}

	uc.logger.InfoContext(ctx, "credit assessment recorded",
		"assessment_id", assessment.ID(),
		"tenant_id", assessment.TenantID(),
		"score", result.Score,
		"risk_level", result.RiskLevel.String(),
		"approved", result.IsApproved,
	)

	return toAssessmentResponse(assessment), nil
}
