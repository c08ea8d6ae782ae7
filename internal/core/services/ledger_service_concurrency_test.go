package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// memoryLedgerStore is a thread-safe in-memory ledger without multi-statement
// transactions, forcing the service down its compensating path while many
// goroutines hammer the same account.
type memoryLedgerStore struct {
	mu       sync.Mutex
	txns     map[string]domain.Transaction
	balances map[string]decimal.Decimal
	accounts map[string]domain.Account
}

func newMemoryLedgerStore(accounts ...domain.Account) *memoryLedgerStore {
	s := &memoryLedgerStore{
		txns:     make(map[string]domain.Transaction),
		balances: make(map[string]decimal.Decimal),
		accounts: make(map[string]domain.Account),
	}
	for _, a := range accounts {
		s.accounts[a.AccountID] = a
		s.balances[a.AccountID] = a.Balance
	}
	return s
}

func (s *memoryLedgerStore) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	txn, ok := s.txns[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction not found")
	}
	return &txn, nil
}

func (s *memoryLedgerStore) FindTransactionsByTransferID(_ context.Context, transferID string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var legs []domain.Transaction
	for _, txn := range s.txns {
		if txn.TransferID != nil && *txn.TransferID == transferID {
			legs = append(legs, txn)
		}
	}
	return legs, nil
}

func (s *memoryLedgerStore) ListTransactionsByAccountID(_ context.Context, _, accountID string, limit int, _ *string) ([]domain.Transaction, *string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Transaction
	for _, txn := range s.txns {
		if txn.AccountID == accountID && len(out) < limit {
			out = append(out, txn)
		}
	}
	return out, nil, nil
}

func (s *memoryLedgerStore) FindAllTransactionsByAccountID(_ context.Context, accountID string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Transaction
	for _, txn := range s.txns {
		if txn.AccountID == accountID {
			out = append(out, txn)
		}
	}
	return out, nil
}

func (s *memoryLedgerStore) InsertTransaction(_ context.Context, txn domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.txns[txn.TransactionID]; exists {
		return fmt.Errorf("%w: transaction exists", apperrors.ErrDuplicate)
	}
	s.txns[txn.TransactionID] = txn
	return nil
}

func (s *memoryLedgerStore) InsertTransactions(ctx context.Context, txns []domain.Transaction) error {
	for _, txn := range txns {
		if err := s.InsertTransaction(ctx, txn); err != nil {
			return err
		}
	}
	return nil
}

func (s *memoryLedgerStore) UpdateTransaction(_ context.Context, txn domain.Transaction, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.txns[txn.TransactionID]
	if !ok {
		return apperrors.NewNotFoundError("transaction not found")
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("%w: stale version", apperrors.ErrConflict)
	}
	s.txns[txn.TransactionID] = txn
	return nil
}

func (s *memoryLedgerStore) DeleteTransaction(_ context.Context, transactionID string, expectedVersion int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.txns[transactionID]
	if !ok {
		return apperrors.NewNotFoundError("transaction not found")
	}
	if current.Version != expectedVersion {
		return fmt.Errorf("%w: stale version", apperrors.ErrConflict)
	}
	delete(s.txns, transactionID)
	return nil
}

func (s *memoryLedgerStore) AdjustAccountBalance(_ context.Context, accountID string, delta decimal.Decimal, _ string, _ time.Time) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, ok := s.balances[accountID]
	if !ok {
		return decimal.Zero, apperrors.NewNotFoundError("account not found")
	}
	balance = balance.Add(delta)
	s.balances[accountID] = balance
	return balance, nil
}

func (s *memoryLedgerStore) ReplaceAccountBalance(_ context.Context, accountID string, previous, corrected decimal.Decimal, _ string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	balance, ok := s.balances[accountID]
	if !ok {
		return apperrors.NewNotFoundError("account not found")
	}
	if !balance.Equal(previous) {
		return fmt.Errorf("%w: balance moved", apperrors.ErrConflict)
	}
	s.balances[accountID] = corrected
	return nil
}

func (s *memoryLedgerStore) FindAccountsByIDsForUpdate(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if account, ok := s.accounts[id]; ok {
			out[id] = account
		}
	}
	return out, nil
}

// accountReader adapter over the same store.
func (s *memoryLedgerStore) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account not found")
	}
	account.Balance = s.balances[accountID]
	return &account, nil
}

func (s *memoryLedgerStore) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	return s.FindAccountsByIDsForUpdate(ctx, accountIDs)
}

func (s *memoryLedgerStore) ListAccounts(_ context.Context, workspaceID string, _ int, _ int) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Account
	for _, account := range s.accounts {
		if account.WorkspaceID == workspaceID {
			out = append(out, account)
		}
	}
	return out, nil
}

type allowAllAuthorizer struct{}

func (allowAllAuthorizer) AuthorizeUserAction(context.Context, string, string, domain.UserWorkspaceRole) error {
	return nil
}

func TestConcurrentCreatesNeverLoseADelta(t *testing.T) {
	store := newMemoryLedgerStore(*testAccount(testAccountID))
	svc := NewLedgerService(store, store, allowAllAuthorizer{}, time.Second)

	const workers = 50
	amount := dec(7)

	var wg sync.WaitGroup
	workerErrs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateTransaction(context.Background(), testWorkspaceID, dto.CreateTransactionRequest{
				AccountID:       testAccountID,
				Type:            domain.TypeIncome,
				Amount:          amount,
				TransactionDate: time.Now(),
			}, testUserID)
			workerErrs <- err
		}()
	}
	wg.Wait()
	close(workerErrs)
	for err := range workerErrs {
		require.NoError(t, err)
	}

	account, err := store.FindAccountByID(context.Background(), testAccountID)
	require.NoError(t, err)
	require.True(t, account.Balance.Equal(dec(7*workers)),
		"expected %s, got %s", dec(7*workers), account.Balance)
}

func TestCreateThenDeleteRestoresOriginalBalance(t *testing.T) {
	store := newMemoryLedgerStore(*testAccount(testAccountID))
	svc := NewLedgerService(store, store, allowAllAuthorizer{}, time.Second)
	ctx := context.Background()

	txn, err := svc.CreateTransaction(ctx, testWorkspaceID, dto.CreateTransactionRequest{
		AccountID:       testAccountID,
		Type:            domain.TypeExpense,
		Amount:          dec(42),
		TransactionDate: time.Now(),
	}, testUserID)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTransaction(ctx, testWorkspaceID, txn.TransactionID, testUserID))

	account, err := store.FindAccountByID(ctx, testAccountID)
	require.NoError(t, err)
	require.True(t, account.Balance.IsZero(), "balance after round trip: %s", account.Balance)
}

func TestBulkMatchesSequentialCreates(t *testing.T) {
	now := time.Now()
	items := []dto.CreateTransactionRequest{
		{AccountID: testAccountID, Type: domain.TypeIncome, Amount: dec(100), TransactionDate: now},
		{AccountID: testAccountID, Type: domain.TypeExpense, Amount: dec(33), TransactionDate: now},
		{AccountID: testAccountID, Type: domain.TypeIncome, Amount: dec(5), TransactionDate: now},
	}

	bulkStore := newMemoryLedgerStore(*testAccount(testAccountID))
	bulkSvc := NewLedgerService(bulkStore, bulkStore, allowAllAuthorizer{}, time.Second)
	_, err := bulkSvc.BulkCreateTransactions(context.Background(), testWorkspaceID,
		dto.BulkCreateTransactionsRequest{Transactions: items}, testUserID)
	require.NoError(t, err)

	seqStore := newMemoryLedgerStore(*testAccount(testAccountID))
	seqSvc := NewLedgerService(seqStore, seqStore, allowAllAuthorizer{}, time.Second)
	for _, item := range items {
		_, err := seqSvc.CreateTransaction(context.Background(), testWorkspaceID, item, testUserID)
		require.NoError(t, err)
	}

	bulkAccount, err := bulkStore.FindAccountByID(context.Background(), testAccountID)
	require.NoError(t, err)
	seqAccount, err := seqStore.FindAccountByID(context.Background(), testAccountID)
	require.NoError(t, err)
	require.True(t, bulkAccount.Balance.Equal(seqAccount.Balance))
}

func TestTransferMovesBalanceBetweenAccounts(t *testing.T) {
	store := newMemoryLedgerStore(*testAccount(testAccountID), *testAccount(otherAccountID))
	svc := NewLedgerService(store, store, allowAllAuthorizer{}, time.Second)
	ctx := context.Background()

	transfer, err := svc.CreateTransfer(ctx, testWorkspaceID, dto.CreateTransferRequest{
		FromAccountID:   testAccountID,
		ToAccountID:     otherAccountID,
		Amount:          dec(80),
		TransactionDate: time.Now(),
	}, testUserID)
	require.NoError(t, err)

	from, err := store.FindAccountByID(ctx, testAccountID)
	require.NoError(t, err)
	to, err := store.FindAccountByID(ctx, otherAccountID)
	require.NoError(t, err)
	require.True(t, from.Balance.Equal(dec(-80)))
	require.True(t, to.Balance.Equal(dec(80)))

	// Deleting either leg removes the pair and restores both balances.
	require.NoError(t, svc.DeleteTransaction(ctx, testWorkspaceID, transfer.Incoming.TransactionID, testUserID))

	from, err = store.FindAccountByID(ctx, testAccountID)
	require.NoError(t, err)
	to, err = store.FindAccountByID(ctx, otherAccountID)
	require.NoError(t, err)
	require.True(t, from.Balance.IsZero())
	require.True(t, to.Balance.IsZero())

	legs, err := store.FindTransactionsByTransferID(ctx, transfer.TransferID)
	require.NoError(t, err)
	require.Empty(t, legs)
}
