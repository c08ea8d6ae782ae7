package services

import (
	"context"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
)

// AccountReaderSvc defines read operations for accounts.
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account, verifying workspace membership and
	// that the account belongs to the workspace.
	GetAccountByID(ctx context.Context, workspaceID, accountID string, userID string) (*domain.Account, error)

	// ListAccounts retrieves the workspace's accounts.
	ListAccounts(ctx context.Context, workspaceID string, userID string, limit, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for accounts.
type AccountWriterSvc interface {
	// CreateAccount creates an account in the workspace. The cached balance
	// starts at the declared initial balance.
	CreateAccount(ctx context.Context, workspaceID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// UpdateAccount edits account metadata. Balances are not editable here.
	UpdateAccount(ctx context.Context, workspaceID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error)

	// DeactivateAccount marks an account inactive. Its history and balance
	// remain readable but no new transactions may target it.
	DeactivateAccount(ctx context.Context, workspaceID, accountID string, userID string) error
}

// AccountSvcFacade combines reader and writer interfaces.
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
