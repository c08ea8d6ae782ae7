package services

import (
	"context"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
)

// LedgerReaderSvc defines read operations for transactions.
type LedgerReaderSvc interface {
	// GetTransactionByID retrieves a transaction scoped to a workspace.
	GetTransactionByID(ctx context.Context, workspaceID, transactionID string, userID string) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves a page of an account's transactions,
	// newest first, with token-based pagination.
	ListTransactionsByAccount(ctx context.Context, workspaceID, accountID string, userID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
}

// LedgerWriterSvc defines the balance-consistent transaction mutations.
// Every operation either applies the row change and the matching account
// balance adjustment together, or leaves both untouched; when neither is
// possible it fails with ErrConsistency so the drift is never silent.
type LedgerWriterSvc interface {
	// CreateTransaction records a single income or expense and applies its
	// signed delta to the account balance.
	CreateTransaction(ctx context.Context, workspaceID string, req dto.CreateTransactionRequest, creatorUserID string) (*domain.Transaction, error)

	// CreateTransfer records a paired expense/income across two accounts,
	// moving the amount atomically between them.
	CreateTransfer(ctx context.Context, workspaceID string, req dto.CreateTransferRequest, creatorUserID string) (*domain.Transfer, error)

	// UpdateTransaction edits a transaction, reversing the old delta and
	// applying the new one, including moving the effect between accounts when
	// the transaction is re-pointed.
	UpdateTransaction(ctx context.Context, workspaceID, transactionID string, req dto.UpdateTransactionRequest, userID string) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction after reversing its balance
	// effect. Deleting a transfer leg removes both legs.
	DeleteTransaction(ctx context.Context, workspaceID, transactionID string, userID string) error

	// BulkCreateTransactions imports a batch, aggregating per-account deltas so
	// each touched account is adjusted exactly once.
	BulkCreateTransactions(ctx context.Context, workspaceID string, req dto.BulkCreateTransactionsRequest, creatorUserID string) ([]domain.Transaction, error)
}

// LedgerSvcFacade combines reader and writer interfaces.
type LedgerSvcFacade interface {
	LedgerReaderSvc
	LedgerWriterSvc
}
