package services

import (
	"context"
	"time"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	portsrepo "github.com/pennywise-app/pennywise_backend/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockLedgerRepository implements the ledger facade without WithTx, so the
// service exercises its compensating path.
type MockLedgerRepository struct {
	mock.Mock
}

func (m *MockLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, transactionID)
	if txn, ok := args.Get(0).(*domain.Transaction); ok {
		return txn, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) FindTransactionsByTransferID(ctx context.Context, transferID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, transferID)
	if txns, ok := args.Get(0).([]domain.Transaction); ok {
		return txns, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) ListTransactionsByAccountID(ctx context.Context, workspaceID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := m.Called(ctx, workspaceID, accountID, limit, nextToken)
	var txns []domain.Transaction
	if v, ok := args.Get(0).([]domain.Transaction); ok {
		txns = v
	}
	var token *string
	if v, ok := args.Get(1).(*string); ok {
		token = v
	}
	return txns, token, args.Error(2)
}

func (m *MockLedgerRepository) FindAllTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, accountID)
	if txns, ok := args.Get(0).([]domain.Transaction); ok {
		return txns, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockLedgerRepository) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	return m.Called(ctx, txn).Error(0)
}

func (m *MockLedgerRepository) InsertTransactions(ctx context.Context, txns []domain.Transaction) error {
	return m.Called(ctx, txns).Error(0)
}

func (m *MockLedgerRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, expectedVersion int64) error {
	return m.Called(ctx, txn, expectedVersion).Error(0)
}

func (m *MockLedgerRepository) DeleteTransaction(ctx context.Context, transactionID string, expectedVersion int64) error {
	return m.Called(ctx, transactionID, expectedVersion).Error(0)
}

func (m *MockLedgerRepository) AdjustAccountBalance(ctx context.Context, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, accountID, delta, userID, now)
	if balance, ok := args.Get(0).(decimal.Decimal); ok {
		return balance, args.Error(1)
	}
	return decimal.Zero, args.Error(1)
}

func (m *MockLedgerRepository) ReplaceAccountBalance(ctx context.Context, accountID string, previous, corrected decimal.Decimal, userID string, now time.Time) error {
	return m.Called(ctx, accountID, previous, corrected, userID, now).Error(0)
}

func (m *MockLedgerRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if accounts, ok := args.Get(0).(map[string]domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockTxLedgerRepository adds WithTx on top of the plain mock, running fn
// against the same mock, so tests can drive the transactional path.
type MockTxLedgerRepository struct {
	MockLedgerRepository
	txErr error
}

func (m *MockTxLedgerRepository) WithTx(ctx context.Context, fn func(portsrepo.LedgerRepositoryFacade) error) error {
	if m.txErr != nil {
		return m.txErr
	}
	return fn(m)
}

// MockAccountRepository implements the account reader and writer ports.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if account, ok := args.Get(0).(*domain.Account); ok {
		return account, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, accountIDs)
	if accounts, ok := args.Get(0).(map[string]domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, workspaceID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, workspaceID, limit, offset)
	if accounts, ok := args.Get(0).([]domain.Account); ok {
		return accounts, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	return m.Called(ctx, accountID, userID, now).Error(0)
}

// MockWorkspaceAuthorizer stubs the membership check.
type MockWorkspaceAuthorizer struct {
	mock.Mock
}

func (m *MockWorkspaceAuthorizer) AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.UserWorkspaceRole) error {
	return m.Called(ctx, userID, workspaceID, requiredRole).Error(0)
}

// MockWorkspaceRepository implements the workspace repository facade.
type MockWorkspaceRepository struct {
	mock.Mock
}

func (m *MockWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	args := m.Called(ctx, workspaceID)
	if workspace, ok := args.Get(0).(*domain.Workspace); ok {
		return workspace, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	args := m.Called(ctx, userID)
	if workspaces, ok := args.Get(0).([]domain.Workspace); ok {
		return workspaces, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWorkspaceRepository) FindUserWorkspaceRole(ctx context.Context, userID, workspaceID string) (*domain.UserWorkspace, error) {
	args := m.Called(ctx, userID, workspaceID)
	if membership, ok := args.Get(0).(*domain.UserWorkspace); ok {
		return membership, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace, creatorUserID string) error {
	return m.Called(ctx, workspace, creatorUserID).Error(0)
}

func (m *MockWorkspaceRepository) AddUserToWorkspace(ctx context.Context, membership domain.UserWorkspace) error {
	return m.Called(ctx, membership).Error(0)
}

func (m *MockWorkspaceRepository) RemoveUserFromWorkspace(ctx context.Context, userID, workspaceID string, actorUserID string, now time.Time) error {
	return m.Called(ctx, userID, workspaceID, actorUserID, now).Error(0)
}

func (m *MockWorkspaceRepository) DeactivateWorkspace(ctx context.Context, workspaceID string, userID string, now time.Time) error {
	return m.Called(ctx, workspaceID, userID, now).Error(0)
}

// MockUserRepository implements the user repository facade.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	return m.Called(ctx, user).Error(0)
}
