package model

import "github.com/shopspring/decimal"

// CreditRequest carries the applicant attributes the risk evaluator scores.
// DebtToIncomeRatio is supplied by the caller and is not recomputed from
// income and debt.
type CreditRequest struct {
	MonthlyIncome     decimal.Decimal
	MonthlyDebt       decimal.Decimal
	DebtToIncomeRatio decimal.Decimal
	Age               int
}

// DisposableIncome is monthly income minus monthly debt. It may be negative.
func (r CreditRequest) DisposableIncome() decimal.Decimal {
	return r.MonthlyIncome.Sub(r.MonthlyDebt)
}
