package dto

import (
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceCheckResponse reports a read-only recomputation of an account balance.
type BalanceCheckResponse struct {
	AccountID  string          `json:"accountId"`
	Stored     decimal.Decimal `json:"stored"`
	Recomputed decimal.Decimal `json:"recomputed"`
	Consistent bool            `json:"consistent"`
}

// ReconciliationResponse reports the outcome of a reconciliation run.
type ReconciliationResponse struct {
	AccountID  string          `json:"accountId"`
	Previous   decimal.Decimal `json:"previous"`
	Recomputed decimal.Decimal `json:"recomputed"`
	Corrected  bool            `json:"corrected"`
}

// ToReconciliationResponse maps a domain reconciliation result.
func ToReconciliationResponse(r *domain.ReconciliationResult) ReconciliationResponse {
	return ReconciliationResponse{
		AccountID:  r.AccountID,
		Previous:   r.Previous,
		Recomputed: r.Recomputed,
		Corrected:  r.Corrected,
	}
}
