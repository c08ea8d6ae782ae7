package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	portsrepo "github.com/pennywise-app/pennywise_backend/internal/core/ports/repositories"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
	"github.com/pennywise-app/pennywise_backend/internal/middleware"
	"github.com/pennywise-app/pennywise_backend/internal/utils/ledger"
	"github.com/shopspring/decimal"
)

const defaultListLimit = 50

// ledgerService owns the balance consistency contract: every mutation applies
// the transaction row change and the matching account balance delta together,
// or neither. When the store implements LedgerTxRunner both writes share one
// store transaction; otherwise the service compensates explicitly, and a failed
// compensation surfaces as ErrConsistency rather than being swallowed.
type ledgerService struct {
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	accountRepo  portsrepo.AccountReader
	workspaceSvc portssvc.WorkspaceAuthorizerSvc
	opTimeout    time.Duration
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// NewLedgerService creates the ledger service. opTimeout bounds each mutation
// including its compensations.
func NewLedgerService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	workspaceSvc portssvc.WorkspaceAuthorizerSvc,
	opTimeout time.Duration,
) portssvc.LedgerSvcFacade {
	if opTimeout <= 0 {
		opTimeout = 10 * time.Second
	}
	return &ledgerService{
		ledgerRepo:   ledgerRepo,
		accountRepo:  accountRepo,
		workspaceSvc: workspaceSvc,
		opTimeout:    opTimeout,
	}
}

// undoCtx derives a context for compensating writes. It keeps the request's
// values but drops its cancellation, so a caller timing out mid-operation
// cannot also abort the compensation that restores consistency.
func (s *ledgerService) undoCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.opTimeout)
}

// finishOp logs consistency failures at error severity. A dangling delta means
// the stored balance no longer matches the transaction history and needs
// reconciliation, so it must never pass quietly.
func finishOp(logger *slog.Logger, op string, err error) error {
	if err != nil && errors.Is(err, apperrors.ErrConsistency) {
		logger.Error("ledger consistency failure", "op", op, "error", err)
	}
	return err
}

// validateTargetAccount checks the account a mutation wants to post against.
func (s *ledgerService) validateTargetAccount(ctx context.Context, workspaceID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.WorkspaceID != workspaceID {
		return nil, fmt.Errorf("%w: account %s does not belong to the workspace", apperrors.ErrForbidden, accountID)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, accountID)
	}
	return account, nil
}

// resolveCurrency fills in the account currency and rejects mismatches, since
// cross-currency amounts cannot be added to a balance without conversion.
func resolveCurrency(requested string, account *domain.Account) (string, error) {
	if requested == "" {
		return account.CurrencyCode, nil
	}
	if requested != account.CurrencyCode {
		return "", fmt.Errorf("%w: currency %s does not match account currency %s",
			apperrors.ErrValidation, requested, account.CurrencyCode)
	}
	return requested, nil
}

// GetTransactionByID retrieves a transaction scoped to a workspace.
func (s *ledgerService) GetTransactionByID(ctx context.Context, workspaceID, transactionID string, userID string) (*domain.Transaction, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	txn, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.WorkspaceID != workspaceID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction with ID %s not found", transactionID))
	}
	return txn, nil
}

// ListTransactionsByAccount retrieves one page of an account's transactions.
func (s *ledgerService) ListTransactionsByAccount(ctx context.Context, workspaceID, accountID string, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = defaultListLimit
	}
	return s.ledgerRepo.ListTransactionsByAccountID(ctx, workspaceID, accountID, limit, nextToken)
}

// CreateTransaction records one income or expense and applies its delta to the
// account balance.
func (s *ledgerService) CreateTransaction(ctx context.Context, workspaceID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, creatorUserID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.Type == domain.TypeTransfer {
		return nil, fmt.Errorf("%w: transfers must be created through the transfer operation", apperrors.ErrValidation)
	}

	delta, err := ledger.Delta(req.Type, req.Amount)
	if err != nil {
		return nil, err
	}
	account, err := s.validateTargetAccount(ctx, workspaceID, req.AccountID)
	if err != nil {
		return nil, err
	}
	currency, err := resolveCurrency(req.CurrencyCode, account)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:   uuid.NewString(),
		WorkspaceID:     workspaceID,
		AccountID:       req.AccountID,
		Type:            req.Type,
		Amount:          req.Amount,
		CurrencyCode:    currency,
		Category:        req.Category,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
		Version:         1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := finishOp(logger, "create", s.applyCreate(opCtx, txn, delta)); err != nil {
		return nil, err
	}
	logger.Info("transaction created", "transactionID", txn.TransactionID, "accountID", txn.AccountID)
	return &txn, nil
}

func (s *ledgerService) applyCreate(ctx context.Context, txn domain.Transaction, delta decimal.Decimal) error {
	if runner, ok := s.ledgerRepo.(portsrepo.LedgerTxRunner); ok {
		return runner.WithTx(ctx, func(r portsrepo.LedgerRepositoryFacade) error {
			if err := r.InsertTransaction(ctx, txn); err != nil {
				return err
			}
			_, err := r.AdjustAccountBalance(ctx, txn.AccountID, delta, txn.CreatedBy, txn.CreatedAt)
			return err
		})
	}

	// Per-statement store. Insert the row first; if the balance adjustment
	// fails, remove the row again so history and balance stay in agreement.
	if err := s.ledgerRepo.InsertTransaction(ctx, txn); err != nil {
		return err
	}
	if _, err := s.ledgerRepo.AdjustAccountBalance(ctx, txn.AccountID, delta, txn.CreatedBy, txn.CreatedAt); err != nil {
		uctx, cancel := s.undoCtx(ctx)
		defer cancel()
		if delErr := s.ledgerRepo.DeleteTransaction(uctx, txn.TransactionID, txn.Version); delErr != nil {
			return fmt.Errorf("%w: balance adjustment failed (%v) and removal of orphaned transaction %s failed: %v",
				apperrors.ErrConsistency, err, txn.TransactionID, delErr)
		}
		return fmt.Errorf("%w: balance adjustment failed, transaction rolled back: %v", apperrors.ErrPersistence, err)
	}
	return nil
}

// CreateTransfer moves an amount between two accounts by recording an expense
// leg on the source and an income leg on the destination under one transfer ID.
func (s *ledgerService) CreateTransfer(ctx context.Context, workspaceID string, req dto.CreateTransferRequest, creatorUserID string) (*domain.Transfer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, creatorUserID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, fmt.Errorf("%w: a transfer needs two distinct accounts", apperrors.ErrValidation)
	}
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: transfer amount must be positive", apperrors.ErrValidation)
	}

	from, err := s.validateTargetAccount(ctx, workspaceID, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.validateTargetAccount(ctx, workspaceID, req.ToAccountID)
	if err != nil {
		return nil, err
	}
	if from.CurrencyCode != to.CurrencyCode {
		return nil, fmt.Errorf("%w: transfers between %s and %s accounts require conversion, which is not supported",
			apperrors.ErrValidation, from.CurrencyCode, to.CurrencyCode)
	}

	now := time.Now()
	transferID := uuid.NewString()
	audit := domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     creatorUserID,
		LastUpdatedAt: now,
		LastUpdatedBy: creatorUserID,
	}
	outgoing := domain.Transaction{
		TransactionID:   uuid.NewString(),
		WorkspaceID:     workspaceID,
		AccountID:       req.FromAccountID,
		Type:            domain.TypeExpense,
		Amount:          req.Amount,
		CurrencyCode:    from.CurrencyCode,
		Category:        req.Category,
		Description:     req.Description,
		TransactionDate: req.TransactionDate,
		TransferID:      &transferID,
		Version:         1,
		AuditFields:     audit,
	}
	incoming := outgoing
	incoming.TransactionID = uuid.NewString()
	incoming.AccountID = req.ToAccountID
	incoming.Type = domain.TypeIncome

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := finishOp(logger, "transfer", s.applyTransfer(opCtx, outgoing, incoming, req.Amount)); err != nil {
		return nil, err
	}
	logger.Info("transfer created", "transferID", transferID,
		"fromAccountID", req.FromAccountID, "toAccountID", req.ToAccountID)
	return &domain.Transfer{TransferID: transferID, Outgoing: outgoing, Incoming: incoming}, nil
}

func (s *ledgerService) applyTransfer(ctx context.Context, outgoing, incoming domain.Transaction, amount decimal.Decimal) error {
	by, at := outgoing.CreatedBy, outgoing.CreatedAt

	if runner, ok := s.ledgerRepo.(portsrepo.LedgerTxRunner); ok {
		return runner.WithTx(ctx, func(r portsrepo.LedgerRepositoryFacade) error {
			// Lock both accounts in sorted order so concurrent transfers
			// touching the same pair cannot deadlock.
			if _, err := r.FindAccountsByIDsForUpdate(ctx, []string{outgoing.AccountID, incoming.AccountID}); err != nil {
				return err
			}
			if err := r.InsertTransactions(ctx, []domain.Transaction{outgoing, incoming}); err != nil {
				return err
			}
			if _, err := r.AdjustAccountBalance(ctx, outgoing.AccountID, amount.Neg(), by, at); err != nil {
				return err
			}
			_, err := r.AdjustAccountBalance(ctx, incoming.AccountID, amount, by, at)
			return err
		})
	}

	// Per-statement store: insert both legs, then move the balances. Every
	// failure unwinds whatever already landed.
	if err := s.ledgerRepo.InsertTransaction(ctx, outgoing); err != nil {
		return err
	}
	if err := s.ledgerRepo.InsertTransaction(ctx, incoming); err != nil {
		uctx, cancel := s.undoCtx(ctx)
		defer cancel()
		if delErr := s.ledgerRepo.DeleteTransaction(uctx, outgoing.TransactionID, outgoing.Version); delErr != nil {
			return fmt.Errorf("%w: transfer leg insert failed (%v) and removal of orphaned leg %s failed: %v",
				apperrors.ErrConsistency, err, outgoing.TransactionID, delErr)
		}
		return err
	}
	if _, err := s.ledgerRepo.AdjustAccountBalance(ctx, outgoing.AccountID, amount.Neg(), by, at); err != nil {
		return s.unwindTransferLegs(ctx, outgoing, incoming, err)
	}
	if _, err := s.ledgerRepo.AdjustAccountBalance(ctx, incoming.AccountID, amount, by, at); err != nil {
		uctx, cancel := s.undoCtx(ctx)
		defer cancel()
		if _, undoErr := s.ledgerRepo.AdjustAccountBalance(uctx, outgoing.AccountID, amount, by, at); undoErr != nil {
			return fmt.Errorf("%w: destination adjustment failed (%v) and source balance restore failed: %v",
				apperrors.ErrConsistency, err, undoErr)
		}
		return s.unwindTransferLegs(uctx, outgoing, incoming, err)
	}
	return nil
}

// unwindTransferLegs removes both persisted legs after a failed transfer.
func (s *ledgerService) unwindTransferLegs(ctx context.Context, outgoing, incoming domain.Transaction, cause error) error {
	uctx, cancel := s.undoCtx(ctx)
	defer cancel()
	var undoErrs []error
	if err := s.ledgerRepo.DeleteTransaction(uctx, outgoing.TransactionID, outgoing.Version); err != nil {
		undoErrs = append(undoErrs, err)
	}
	if err := s.ledgerRepo.DeleteTransaction(uctx, incoming.TransactionID, incoming.Version); err != nil {
		undoErrs = append(undoErrs, err)
	}
	if len(undoErrs) > 0 {
		return fmt.Errorf("%w: transfer failed (%v) and leg removal failed: %v",
			apperrors.ErrConsistency, cause, errors.Join(undoErrs...))
	}
	return fmt.Errorf("%w: transfer rolled back: %v", apperrors.ErrPersistence, cause)
}

// UpdateTransaction edits a transaction, reversing its previous balance effect
// and applying the new one, moving the effect between accounts when re-pointed.
func (s *ledgerService) UpdateTransaction(ctx context.Context, workspaceID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	existing, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if existing.WorkspaceID != workspaceID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction with ID %s not found", transactionID))
	}
	if existing.IsTransferLeg() && (req.Amount != nil || req.AccountID != nil || req.Type != nil) {
		// Paired legs must stay mirror images. Amount, account or type edits
		// would desynchronize the pair; delete the transfer and recreate it.
		return nil, fmt.Errorf("%w: transfer legs only allow category, description and date edits", apperrors.ErrValidation)
	}

	updated := *existing
	if req.Type != nil {
		if *req.Type == domain.TypeTransfer {
			return nil, fmt.Errorf("%w: a transaction cannot be turned into a transfer", apperrors.ErrValidation)
		}
		updated.Type = *req.Type
	}
	if req.Amount != nil {
		updated.Amount = *req.Amount
	}
	if req.AccountID != nil {
		updated.AccountID = *req.AccountID
	}
	if req.Category != nil {
		updated.Category = *req.Category
	}
	if req.Description != nil {
		updated.Description = *req.Description
	}
	if req.TransactionDate != nil {
		updated.TransactionDate = *req.TransactionDate
	}
	updated.Version = existing.Version + 1
	updated.LastUpdatedAt = time.Now()
	updated.LastUpdatedBy = userID

	oldDelta, err := ledger.Delta(existing.Type, existing.Amount)
	if err != nil {
		return nil, err
	}
	newDelta, err := ledger.Delta(updated.Type, updated.Amount)
	if err != nil {
		return nil, err
	}

	if updated.AccountID != existing.AccountID {
		account, err := s.validateTargetAccount(ctx, workspaceID, updated.AccountID)
		if err != nil {
			return nil, err
		}
		// The transaction keeps its currency, so the target account must use
		// the same one or its balance would mix units.
		if _, err := resolveCurrency(updated.CurrencyCode, account); err != nil {
			return nil, err
		}
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	var applyErr error
	if updated.AccountID == existing.AccountID {
		applyErr = s.applySameAccountUpdate(opCtx, *existing, updated, newDelta.Sub(oldDelta))
	} else {
		applyErr = s.applyCrossAccountUpdate(opCtx, *existing, updated, oldDelta, newDelta)
	}
	if err := finishOp(logger, "update", applyErr); err != nil {
		return nil, err
	}
	logger.Info("transaction updated", "transactionID", transactionID)
	return &updated, nil
}

func (s *ledgerService) applySameAccountUpdate(ctx context.Context, existing, updated domain.Transaction, adjustment decimal.Decimal) error {
	by, at := updated.LastUpdatedBy, updated.LastUpdatedAt

	if runner, ok := s.ledgerRepo.(portsrepo.LedgerTxRunner); ok {
		return runner.WithTx(ctx, func(r portsrepo.LedgerRepositoryFacade) error {
			if !adjustment.IsZero() {
				if _, err := r.AdjustAccountBalance(ctx, updated.AccountID, adjustment, by, at); err != nil {
					return err
				}
			}
			return r.UpdateTransaction(ctx, updated, existing.Version)
		})
	}

	if !adjustment.IsZero() {
		if _, err := s.ledgerRepo.AdjustAccountBalance(ctx, updated.AccountID, adjustment, by, at); err != nil {
			return err
		}
	}
	if err := s.ledgerRepo.UpdateTransaction(ctx, updated, existing.Version); err != nil {
		if adjustment.IsZero() {
			return err
		}
		uctx, cancel := s.undoCtx(ctx)
		defer cancel()
		if _, undoErr := s.ledgerRepo.AdjustAccountBalance(uctx, updated.AccountID, adjustment.Neg(), by, at); undoErr != nil {
			return fmt.Errorf("%w: row update failed (%v) and balance restore of account %s failed: %v",
				apperrors.ErrConsistency, err, updated.AccountID, undoErr)
		}
		return err
	}
	return nil
}

func (s *ledgerService) applyCrossAccountUpdate(ctx context.Context, existing, updated domain.Transaction, oldDelta, newDelta decimal.Decimal) error {
	by, at := updated.LastUpdatedBy, updated.LastUpdatedAt

	if runner, ok := s.ledgerRepo.(portsrepo.LedgerTxRunner); ok {
		return runner.WithTx(ctx, func(r portsrepo.LedgerRepositoryFacade) error {
			if _, err := r.FindAccountsByIDsForUpdate(ctx, []string{existing.AccountID, updated.AccountID}); err != nil {
				return err
			}
			if _, err := r.AdjustAccountBalance(ctx, existing.AccountID, oldDelta.Neg(), by, at); err != nil {
				return err
			}
			if _, err := r.AdjustAccountBalance(ctx, updated.AccountID, newDelta, by, at); err != nil {
				return err
			}
			return r.UpdateTransaction(ctx, updated, existing.Version)
		})
	}

	if _, err := s.ledgerRepo.AdjustAccountBalance(ctx, existing.AccountID, oldDelta.Neg(), by, at); err != nil {
		return err
	}
	if _, err := s.ledgerRepo.AdjustAccountBalance(ctx, updated.AccountID, newDelta, by, at); err != nil {
		uctx, cancel := s.undoCtx(ctx)
		defer cancel()
		if _, undoErr := s.ledgerRepo.AdjustAccountBalance(uctx, existing.AccountID, oldDelta, by, at); undoErr != nil {
			return fmt.Errorf("%w: target adjustment failed (%v) and source balance restore failed: %v",
				apperrors.ErrConsistency, err, undoErr)
		}
		return err
	}
	if err := s.ledgerRepo.UpdateTransaction(ctx, updated, existing.Version); err != nil {
		uctx, cancel := s.undoCtx(ctx)
		defer cancel()
		var undoErrs []error
		if _, undoErr := s.ledgerRepo.AdjustAccountBalance(uctx, updated.AccountID, newDelta.Neg(), by, at); undoErr != nil {
			undoErrs = append(undoErrs, undoErr)
		}
		if _, undoErr := s.ledgerRepo.AdjustAccountBalance(uctx, existing.AccountID, oldDelta, by, at); undoErr != nil {
			undoErrs = append(undoErrs, undoErr)
		}
		if len(undoErrs) > 0 {
			return fmt.Errorf("%w: row update failed (%v) and balance restore failed: %v",
				apperrors.ErrConsistency, err, errors.Join(undoErrs...))
		}
		return err
	}
	return nil
}

// DeleteTransaction removes a transaction after reversing its balance effect.
// Deleting one leg of a transfer removes both legs to keep the pair intact.
func (s *ledgerService) DeleteTransaction(ctx context.Context, workspaceID, transactionID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return err
	}

	existing, err := s.ledgerRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return err
	}
	if existing.WorkspaceID != workspaceID {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction with ID %s not found", transactionID))
	}

	targets := []domain.Transaction{*existing}
	if existing.IsTransferLeg() {
		legs, err := s.ledgerRepo.FindTransactionsByTransferID(ctx, *existing.TransferID)
		if err != nil {
			return err
		}
		targets = legs
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := finishOp(logger, "delete", s.applyDelete(opCtx, targets, userID)); err != nil {
		return err
	}
	logger.Info("transaction deleted", "transactionID", transactionID, "legs", len(targets))
	return nil
}

func (s *ledgerService) applyDelete(ctx context.Context, targets []domain.Transaction, userID string) error {
	now := time.Now()

	reversals := make([]decimal.Decimal, len(targets))
	for i, t := range targets {
		rev, err := ledger.Reverse(t.Type, t.Amount)
		if err != nil {
			return err
		}
		reversals[i] = rev
	}

	if runner, ok := s.ledgerRepo.(portsrepo.LedgerTxRunner); ok {
		return runner.WithTx(ctx, func(r portsrepo.LedgerRepositoryFacade) error {
			for i, t := range targets {
				if _, err := r.AdjustAccountBalance(ctx, t.AccountID, reversals[i], userID, now); err != nil {
					return err
				}
				if err := r.DeleteTransaction(ctx, t.TransactionID, t.Version); err != nil {
					return err
				}
			}
			return nil
		})
	}

	// Per-statement store. Reverse each balance first and delete the row only
	// afterwards: if the delete then fails, the reversal is undone, so a row
	// never disappears while its delta is still applied.
	for i, t := range targets {
		if _, err := s.ledgerRepo.AdjustAccountBalance(ctx, t.AccountID, reversals[i], userID, now); err != nil {
			if undoErr := s.undoDeleteReversals(ctx, targets[:i], reversals[:i], userID, now); undoErr != nil {
				return fmt.Errorf("%w: balance reversal failed (%v) and restore of earlier legs failed: %v",
					apperrors.ErrConsistency, err, undoErr)
			}
			if i > 0 {
				// Earlier legs are already gone, so this is not a clean
				// rollback the caller could safely retry.
				return fmt.Errorf("%w: transfer pair partially deleted, remaining leg %s needs manual removal: %v",
					apperrors.ErrConsistency, t.TransactionID, err)
			}
			return err
		}
		if err := s.ledgerRepo.DeleteTransaction(ctx, t.TransactionID, t.Version); err != nil {
			uctx, cancel := s.undoCtx(ctx)
			var undoErrs []error
			if _, restoreErr := s.ledgerRepo.AdjustAccountBalance(uctx, t.AccountID, reversals[i].Neg(), userID, now); restoreErr != nil {
				undoErrs = append(undoErrs, restoreErr)
			}
			cancel()
			if restoreErr := s.undoDeleteReversals(ctx, targets[:i], reversals[:i], userID, now); restoreErr != nil {
				undoErrs = append(undoErrs, restoreErr)
			}
			if len(undoErrs) > 0 {
				return fmt.Errorf("%w: row delete failed (%v) and balance restore failed: %v",
					apperrors.ErrConsistency, err, errors.Join(undoErrs...))
			}
			if i > 0 {
				// Earlier legs were already deleted and cannot be restored, so
				// the transfer pair is broken even though balances now agree.
				return fmt.Errorf("%w: transfer pair partially deleted, remaining leg %s needs manual removal: %v",
					apperrors.ErrConsistency, t.TransactionID, err)
			}
			return err
		}
	}
	return nil
}

// undoDeleteReversals restores the balance deltas of legs whose reversal was
// applied but whose row still exists. Legs whose row is already gone keep
// their reversal, since restoring it would leave a delta with no backing row.
func (s *ledgerService) undoDeleteReversals(ctx context.Context, legs []domain.Transaction, reversals []decimal.Decimal, userID string, now time.Time) error {
	if len(legs) == 0 {
		return nil
	}
	uctx, cancel := s.undoCtx(ctx)
	defer cancel()
	var errs []error
	for i := range legs {
		// Rows already deleted keep their reversal; restoring it would drift.
		if _, err := s.ledgerRepo.FindTransactionByID(uctx, legs[i].TransactionID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				continue
			}
			// Cannot tell whether the row survived; leave the balance alone
			// and let the caller escalate.
			errs = append(errs, err)
			continue
		}
		if _, err := s.ledgerRepo.AdjustAccountBalance(uctx, legs[i].AccountID, reversals[i].Neg(), userID, now); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BulkCreateTransactions imports a batch of transactions, adjusting each
// touched account once with its aggregated delta.
func (s *ledgerService) BulkCreateTransactions(ctx context.Context, workspaceID string, req dto.BulkCreateTransactionsRequest, creatorUserID string) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, creatorUserID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if len(req.Transactions) == 0 {
		return nil, fmt.Errorf("%w: empty batch", apperrors.ErrValidation)
	}

	accountIDs := make([]string, 0, len(req.Transactions))
	seen := make(map[string]struct{})
	for _, item := range req.Transactions {
		if _, ok := seen[item.AccountID]; !ok {
			seen[item.AccountID] = struct{}{}
			accountIDs = append(accountIDs, item.AccountID)
		}
	}
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txns := make([]domain.Transaction, 0, len(req.Transactions))
	deltas := make(map[string]decimal.Decimal, len(accountIDs))
	for i, item := range req.Transactions {
		account, ok := accounts[item.AccountID]
		if !ok {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", item.AccountID))
		}
		if account.WorkspaceID != workspaceID {
			return nil, fmt.Errorf("%w: account %s does not belong to the workspace", apperrors.ErrForbidden, item.AccountID)
		}
		if !account.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, item.AccountID)
		}
		currency, err := resolveCurrency(item.CurrencyCode, &account)
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		delta, err := ledger.Delta(item.Type, item.Amount)
		if err != nil {
			return nil, fmt.Errorf("batch item %d: %w", i, err)
		}
		deltas[item.AccountID] = deltas[item.AccountID].Add(delta)

		txns = append(txns, domain.Transaction{
			TransactionID:   uuid.NewString(),
			WorkspaceID:     workspaceID,
			AccountID:       item.AccountID,
			Type:            item.Type,
			Amount:          item.Amount,
			CurrencyCode:    currency,
			Category:        item.Category,
			Description:     item.Description,
			TransactionDate: item.TransactionDate,
			Version:         1,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     creatorUserID,
				LastUpdatedAt: now,
				LastUpdatedBy: creatorUserID,
			},
		})
	}

	sort.Strings(accountIDs)

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()

	if err := finishOp(logger, "bulk-create", s.applyBulkCreate(opCtx, txns, accountIDs, deltas, creatorUserID, now)); err != nil {
		return nil, err
	}
	logger.Info("bulk transactions created", "count", len(txns), "accounts", len(accountIDs))
	return txns, nil
}

func (s *ledgerService) applyBulkCreate(ctx context.Context, txns []domain.Transaction, accountIDs []string, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	if runner, ok := s.ledgerRepo.(portsrepo.LedgerTxRunner); ok {
		return runner.WithTx(ctx, func(r portsrepo.LedgerRepositoryFacade) error {
			if _, err := r.FindAccountsByIDsForUpdate(ctx, accountIDs); err != nil {
				return err
			}
			if err := r.InsertTransactions(ctx, txns); err != nil {
				return err
			}
			for _, accountID := range accountIDs {
				if _, err := r.AdjustAccountBalance(ctx, accountID, deltas[accountID], userID, now); err != nil {
					return err
				}
			}
			return nil
		})
	}

	// Per-statement store: insert row by row so a failure knows exactly what
	// landed, then adjust each account once.
	for i := range txns {
		if err := s.ledgerRepo.InsertTransaction(ctx, txns[i]); err != nil {
			if undoErr := s.removeInsertedRows(ctx, txns[:i]); undoErr != nil {
				return fmt.Errorf("%w: batch insert failed (%v) and removal of earlier rows failed: %v",
					apperrors.ErrConsistency, err, undoErr)
			}
			return err
		}
	}
	for i, accountID := range accountIDs {
		if _, err := s.ledgerRepo.AdjustAccountBalance(ctx, accountID, deltas[accountID], userID, now); err != nil {
			var undoErrs []error
			if undoErr := s.removeInsertedRows(ctx, txns); undoErr != nil {
				undoErrs = append(undoErrs, undoErr)
			}
			uctx, cancel := s.undoCtx(ctx)
			for _, adjusted := range accountIDs[:i] {
				if _, undoErr := s.ledgerRepo.AdjustAccountBalance(uctx, adjusted, deltas[adjusted].Neg(), userID, now); undoErr != nil {
					undoErrs = append(undoErrs, undoErr)
				}
			}
			cancel()
			if len(undoErrs) > 0 {
				return fmt.Errorf("%w: batch adjustment failed (%v) and rollback failed: %v",
					apperrors.ErrConsistency, err, errors.Join(undoErrs...))
			}
			return fmt.Errorf("%w: batch rolled back: %v", apperrors.ErrPersistence, err)
		}
	}
	return nil
}

// removeInsertedRows deletes freshly inserted batch rows during a rollback.
func (s *ledgerService) removeInsertedRows(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	uctx, cancel := s.undoCtx(ctx)
	defer cancel()
	var errs []error
	for _, txn := range txns {
		if err := s.ledgerRepo.DeleteTransaction(uctx, txn.TransactionID, txn.Version); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
