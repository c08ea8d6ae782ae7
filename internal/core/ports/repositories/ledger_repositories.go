package repositories

import (
	"context"
	"time"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionReader defines read operations for transaction data.
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindTransactionsByTransferID retrieves both legs of a paired transfer.
	FindTransactionsByTransferID(ctx context.Context, transferID string) ([]domain.Transaction, error)

	// ListTransactionsByAccountID retrieves a paginated list of transactions for an
	// account using token-based pagination. It returns the transactions, a token
	// for the next page, and an error.
	ListTransactionsByAccountID(ctx context.Context, workspaceID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// FindAllTransactionsByAccountID retrieves the complete transaction history of
	// an account, used by reconciliation to recompute the balance from scratch.
	FindAllTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// TransactionWriter defines write operations for transaction rows. Each call is
// individually atomic; multi-row consistency is the ledger service's job, either
// through LedgerTxRunner or through compensating actions.
type TransactionWriter interface {
	// InsertTransaction persists a single new transaction row.
	InsertTransaction(ctx context.Context, txn domain.Transaction) error

	// InsertTransactions persists a batch of new transaction rows.
	InsertTransactions(ctx context.Context, txns []domain.Transaction) error

	// UpdateTransaction overwrites a transaction row, guarded by expectedVersion.
	// Returns ErrConflict when the row's version no longer matches.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, expectedVersion int64) error

	// DeleteTransaction removes a transaction row, guarded by expectedVersion.
	DeleteTransaction(ctx context.Context, transactionID string, expectedVersion int64) error
}

// BalanceWriter defines the account-balance mutations the ledger engine needs.
type BalanceWriter interface {
	// AdjustAccountBalance atomically adds delta to the account's cached balance
	// and returns the new balance. This is the preferred primitive: the increment
	// happens in the store, so concurrent adjustments cannot lose updates.
	AdjustAccountBalance(ctx context.Context, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error)

	// ReplaceAccountBalance overwrites the cached balance, guarded by the expected
	// previous value. Returns ErrConflict if the balance moved concurrently. Used
	// only by reconciliation repair.
	ReplaceAccountBalance(ctx context.Context, accountID string, previous, corrected decimal.Decimal, userID string, now time.Time) error

	// FindAccountsByIDsForUpdate retrieves accounts and, when running inside a
	// store transaction, locks their rows for the remainder of it. Callers must
	// pass IDs in a deterministic order to avoid lock cycles.
	FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)
}

// LedgerRepositoryFacade combines every ledger-store operation the engine uses.
type LedgerRepositoryFacade interface {
	TransactionReader
	TransactionWriter
	BalanceWriter
}

// LedgerTxRunner is implemented by ledger stores that offer multi-statement
// atomicity. The facade passed to fn performs all operations inside one store
// transaction, committed when fn returns nil and rolled back otherwise.
type LedgerTxRunner interface {
	WithTx(ctx context.Context, fn func(LedgerRepositoryFacade) error) error
}

// LedgerRepositoryWithTx extends the facade with transaction capabilities.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	LedgerTxRunner
}
