package services

import (
	"context"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationSvcFacade recomputes account balances from transaction history
// and repairs the cached balance when drift is found.
type ReconciliationSvcFacade interface {
	// RecomputeBalance derives the balance from the account's initial balance
	// plus the signed deltas of its full history, without writing anything.
	RecomputeBalance(ctx context.Context, workspaceID, accountID string, userID string) (decimal.Decimal, error)

	// Reconcile recomputes the balance and, when it disagrees with the cached
	// value, replaces the cached value. ADMIN only. Returns ErrConflict when
	// the balance moved concurrently; callers may simply retry.
	Reconcile(ctx context.Context, workspaceID, accountID string, userID string) (*domain.ReconciliationResult, error)
}
