package services

import (
	"context"
	"fmt"
	"time"

	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	portsrepo "github.com/pennywise-app/pennywise_backend/internal/core/ports/repositories"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/middleware"
	"github.com/pennywise-app/pennywise_backend/internal/utils/ledger"
	"github.com/shopspring/decimal"
)

// reconciliationService recomputes account balances from the full transaction
// history and repairs the cached balance when it has drifted. The history is
// the source of truth; the cached balance is only an optimization.
type reconciliationService struct {
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	accountRepo  portsrepo.AccountReader
	workspaceSvc portssvc.WorkspaceAuthorizerSvc
}

var _ portssvc.ReconciliationSvcFacade = (*reconciliationService)(nil)

// NewReconciliationService creates the reconciliation service.
func NewReconciliationService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	workspaceSvc portssvc.WorkspaceAuthorizerSvc,
) portssvc.ReconciliationSvcFacade {
	return &reconciliationService{
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		workspaceSvc: workspaceSvc,
	}
}

// recompute derives the balance as initial balance plus the signed delta of
// every transaction ever posted to the account.
func (s *reconciliationService) recompute(ctx context.Context, account *domain.Account) (decimal.Decimal, error) {
	txns, err := s.ledgerRepo.FindAllTransactionsByAccountID(ctx, account.AccountID)
	if err != nil {
		return decimal.Zero, err
	}
	sum := account.InitialBalance
	for i := range txns {
		delta, err := ledger.Delta(txns[i].Type, txns[i].Amount)
		if err != nil {
			// A stored row the calculator rejects means corrupted history, not
			// a recoverable input problem.
			return decimal.Zero, fmt.Errorf("%w: stored transaction %s has no computable delta: %v",
				apperrors.ErrConsistency, txns[i].TransactionID, err)
		}
		sum = sum.Add(delta)
	}
	return sum, nil
}

func (s *reconciliationService) loadOwnedAccount(ctx context.Context, workspaceID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.WorkspaceID != workspaceID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
	}
	return account, nil
}

// RecomputeBalance returns the history-derived balance without writing.
func (s *reconciliationService) RecomputeBalance(ctx context.Context, workspaceID, accountID string, userID string) (decimal.Decimal, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return decimal.Zero, err
	}
	account, err := s.loadOwnedAccount(ctx, workspaceID, accountID)
	if err != nil {
		return decimal.Zero, err
	}
	return s.recompute(ctx, account)
}

// Reconcile recomputes the balance and overwrites the cached value when the
// two disagree. The overwrite is guarded by the previously read balance, so a
// mutation racing the repair aborts it with ErrConflict instead of being
// silently clobbered; callers just retry.
func (s *reconciliationService) Reconcile(ctx context.Context, workspaceID, accountID string, userID string) (*domain.ReconciliationResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleAdmin); err != nil {
		return nil, err
	}
	account, err := s.loadOwnedAccount(ctx, workspaceID, accountID)
	if err != nil {
		return nil, err
	}

	recomputed, err := s.recompute(ctx, account)
	if err != nil {
		return nil, err
	}

	result := &domain.ReconciliationResult{
		AccountID:  accountID,
		Previous:   account.Balance,
		Recomputed: recomputed,
	}
	if account.Balance.Equal(recomputed) {
		logger.Info("reconciliation found no drift", "accountID", accountID)
		return result, nil
	}

	// Drift means a past mutation's delta went missing or was double applied.
	logger.Error("balance drift detected",
		"accountID", accountID,
		"stored", account.Balance.String(),
		"recomputed", recomputed.String())

	if err := s.ledgerRepo.ReplaceAccountBalance(ctx, accountID, account.Balance, recomputed, userID, time.Now()); err != nil {
		return nil, err
	}
	result.Corrected = true
	logger.Info("balance repaired", "accountID", accountID, "balance", recomputed.String())
	return result, nil
}
