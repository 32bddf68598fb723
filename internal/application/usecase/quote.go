package usecase

import (
	"github.com/bibbank/credit-risk-service/internal/application/dto"
	"github.com/bibbank/credit-risk-service/internal/domain/service"
)

// QuoteUseCase evaluates a profile without recording anything.
type QuoteUseCase struct {
	evaluator *service.RiskEvaluator
}

// NewQuoteUseCase wires dependencies.
func NewQuoteUseCase(evaluator *service.RiskEvaluator) *QuoteUseCase {
	return &QuoteUseCase{evaluator: evaluator}
}

// Execute validates the profile and returns the score.
func (uc *QuoteUseCase) Execute(req dto.QuoteRequest) (dto.CreditScoreResponse, error) {
	creditReq, err := req.ToCreditRequest()
	if err != nil {
		return dto.CreditScoreResponse{}, err
	}
	return toScoreResponse(uc.evaluator.Evaluate(creditReq)), nil
}
