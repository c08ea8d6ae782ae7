package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	portsrepo "github.com/pennywise-app/pennywise_backend/internal/core/ports/repositories"
	"github.com/pennywise-app/pennywise_backend/internal/models"
	"github.com/pennywise-app/pennywise_backend/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// PgxLedgerRepository implements the ledger store against Postgres. Each method
// is a single statement, so each is individually atomic; WithTx runs a group of
// them inside one database transaction.
type PgxLedgerRepository struct {
	BaseRepository
}

// interface compliance check
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

// NewPgxLedgerRepository creates a ledger repository bound to the pool.
func NewPgxLedgerRepository(pool *pgxpool.Pool) *PgxLedgerRepository {
	return &PgxLedgerRepository{BaseRepository: NewBaseRepository(pool)}
}

// WithTx runs fn against a repository bound to a single database transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *PgxLedgerRepository) WithTx(ctx context.Context, fn func(portsrepo.LedgerRepositoryFacade) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", errors.Join(apperrors.ErrPersistence, err))
	}
	defer tx.Rollback(ctx) //nolint:errcheck // rollback after commit is a no-op

	txRepo := &PgxLedgerRepository{BaseRepository: BaseRepository{pool: r.pool, q: tx}}
	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", errors.Join(apperrors.ErrPersistence, err))
	}
	return nil
}

const transactionColumns = `transaction_id, workspace_id, account_id, type, amount, currency_code,
	category, description, transaction_date, transfer_id, version,
	created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID, &m.WorkspaceID, &m.AccountID, &m.Type, &m.Amount, &m.CurrencyCode,
		&m.Category, &m.Description, &m.TransactionDate, &m.TransferID, &m.Version,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func toDomainTransaction(m *models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		WorkspaceID:     m.WorkspaceID,
		AccountID:       m.AccountID,
		Type:            domain.TransactionType(m.Type),
		Amount:          m.Amount,
		CurrencyCode:    m.CurrencyCode,
		Category:        m.Category,
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		TransferID:      m.TransferID,
		Version:         m.Version,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// FindTransactionByID retrieves a transaction by its identifier.
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	m, err := scanTransaction(r.q.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("transaction with ID %s not found", transactionID))
		}
		return nil, apperrors.NewAppError(500, "failed to get transaction", err)
	}
	txn := toDomainTransaction(m)
	return &txn, nil
}

// FindTransactionsByTransferID retrieves both legs of a transfer.
func (r *PgxLedgerRepository) FindTransactionsByTransferID(ctx context.Context, transferID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transfer_id = $1 ORDER BY type;`
	rows, err := r.q.Query(ctx, query, transferID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transfer legs", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

// ListTransactionsByAccountID retrieves one page of an account's transactions,
// newest first, keyed on (transaction_date, created_at) for a stable cursor.
func (r *PgxLedgerRepository) ListTransactionsByAccountID(ctx context.Context, workspaceID, accountID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	args := []any{workspaceID, accountID}
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE workspace_id = $1 AND account_id = $2`

	if nextToken != nil && *nextToken != "" {
		afterDate, afterCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid pagination token", apperrors.ErrValidation)
		}
		query += ` AND (transaction_date, created_at) < ($3, $4)`
		args = append(args, afterDate, afterCreatedAt)
	}

	query += fmt.Sprintf(` ORDER BY transaction_date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions", err)
	}
	defer rows.Close()

	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, nil, err
	}

	var token *string
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		encoded := pagination.EncodeToken(last.TransactionDate, last.CreatedAt)
		token = &encoded
	}
	return txns, token, nil
}

// FindAllTransactionsByAccountID retrieves the full history of an account.
// Used by reconciliation, which needs every row to recompute the balance.
func (r *PgxLedgerRepository) FindAllTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions WHERE account_id = $1
		ORDER BY transaction_date ASC, created_at ASC;`
	rows, err := r.q.Query(ctx, query, accountID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query transaction history", err)
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var txns []domain.Transaction
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read transactions", err)
	}
	return txns, nil
}

const insertTransactionQuery = `
	INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);`

func transactionArgs(t domain.Transaction) []any {
	return []any{
		t.TransactionID, t.WorkspaceID, t.AccountID, string(t.Type), t.Amount, t.CurrencyCode,
		t.Category, t.Description, t.TransactionDate, t.TransferID, t.Version,
		t.CreatedAt, t.CreatedBy, t.LastUpdatedAt, t.LastUpdatedBy,
	}
}

// InsertTransaction persists one new transaction row.
func (r *PgxLedgerRepository) InsertTransaction(ctx context.Context, txn domain.Transaction) error {
	_, err := r.q.Exec(ctx, insertTransactionQuery, transactionArgs(txn)...)
	return mapWriteError(err, "failed to insert transaction")
}

// InsertTransactions persists multiple rows using a batch.
func (r *PgxLedgerRepository) InsertTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, txn := range txns {
		batch.Queue(insertTransactionQuery, transactionArgs(txn)...)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()

	for range txns {
		if _, err := results.Exec(); err != nil {
			return mapWriteError(err, "failed to insert transaction batch")
		}
	}
	return nil
}

// UpdateTransaction overwrites a row, guarded by expectedVersion.
func (r *PgxLedgerRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, expectedVersion int64) error {
	query := `
		UPDATE transactions
		SET account_id = $2, type = $3, amount = $4, category = $5, description = $6,
			transaction_date = $7, version = $8, last_updated_at = $9, last_updated_by = $10
		WHERE transaction_id = $1 AND version = $11;`
	tag, err := r.q.Exec(ctx, query,
		txn.TransactionID, txn.AccountID, string(txn.Type), txn.Amount, txn.Category, txn.Description,
		txn.TransactionDate, txn.Version, txn.LastUpdatedAt, txn.LastUpdatedBy, expectedVersion)
	if err != nil {
		return mapWriteError(err, "failed to update transaction")
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, txn.TransactionID)
	}
	return nil
}

// DeleteTransaction removes a row, guarded by expectedVersion.
func (r *PgxLedgerRepository) DeleteTransaction(ctx context.Context, transactionID string, expectedVersion int64) error {
	tag, err := r.q.Exec(ctx,
		`DELETE FROM transactions WHERE transaction_id = $1 AND version = $2;`,
		transactionID, expectedVersion)
	if err != nil {
		return mapWriteError(err, "failed to delete transaction")
	}
	if tag.RowsAffected() == 0 {
		return r.classifyMissedWrite(ctx, transactionID)
	}
	return nil
}

// classifyMissedWrite distinguishes a stale version from a missing row after a
// guarded write touched nothing.
func (r *PgxLedgerRepository) classifyMissedWrite(ctx context.Context, transactionID string) error {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1);`,
		transactionID).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check transaction existence", err)
	}
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("transaction with ID %s not found", transactionID))
	}
	return fmt.Errorf("%w: transaction %s was modified concurrently", apperrors.ErrConflict, transactionID)
}

// AdjustAccountBalance adds delta to the account balance in a single statement,
// so concurrent adjustments serialize on the row and no update is lost.
func (r *PgxLedgerRepository) AdjustAccountBalance(ctx context.Context, accountID string, delta decimal.Decimal, userID string, now time.Time) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.q.QueryRow(ctx, `
		UPDATE accounts
		SET balance = balance + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1
		RETURNING balance;`,
		accountID, delta, now, userID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to adjust account balance", errors.Join(apperrors.ErrPersistence, err))
	}
	return balance, nil
}

// ReplaceAccountBalance overwrites the balance, guarded by the expected
// previous value so a concurrent mutation aborts the repair.
func (r *PgxLedgerRepository) ReplaceAccountBalance(ctx context.Context, accountID string, previous, corrected decimal.Decimal, userID string, now time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE accounts
		SET balance = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $1 AND balance = $2;`,
		accountID, previous, corrected, now, userID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to replace account balance", errors.Join(apperrors.ErrPersistence, err))
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.q.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM accounts WHERE account_id = $1);`,
			accountID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check account existence", err)
		}
		if !exists {
			return apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
		}
		return fmt.Errorf("%w: balance of account %s moved concurrently", apperrors.ErrConflict, accountID)
	}
	return nil
}

// FindAccountsByIDsForUpdate retrieves accounts with FOR UPDATE row locks.
// IDs are sorted before locking so concurrent multi-account operations acquire
// locks in the same order.
func (r *PgxLedgerRepository) FindAccountsByIDsForUpdate(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	sorted := make([]string, len(accountIDs))
	copy(sorted, accountIDs)
	sort.Strings(sorted)

	rows, err := r.q.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		WHERE account_id = ANY($1)
		ORDER BY account_id
		FOR UPDATE;`, sorted)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to lock accounts", errors.Join(apperrors.ErrPersistence, err))
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(sorted))
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts[m.AccountID] = toDomainAccount(m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read accounts", err)
	}
	return accounts, nil
}
