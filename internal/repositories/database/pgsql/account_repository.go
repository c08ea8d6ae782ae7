package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	portsrepo "github.com/pennywise-app/pennywise_backend/internal/core/ports/repositories"
	"github.com/pennywise-app/pennywise_backend/internal/models"
)

// PgxAccountRepository implements account persistence against Postgres.
// Balance columns are written only through the ledger repository.
type PgxAccountRepository struct {
	BaseRepository
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

// NewPgxAccountRepository creates an account repository bound to the pool.
func NewPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: NewBaseRepository(pool)}
}

const accountColumns = `account_id, workspace_id, name, account_type, currency_code, description,
	is_active, balance, initial_balance,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAccount(row pgx.Row) (*models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID, &m.WorkspaceID, &m.Name, &m.AccountType, &m.CurrencyCode, &m.Description,
		&m.IsActive, &m.Balance, &m.InitialBalance,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func toDomainAccount(m *models.Account) domain.Account {
	return domain.Account{
		AccountID:      m.AccountID,
		WorkspaceID:    m.WorkspaceID,
		Name:           m.Name,
		AccountType:    domain.AccountType(m.AccountType),
		CurrencyCode:   m.CurrencyCode,
		Description:    m.Description,
		IsActive:       m.IsActive,
		Balance:        m.Balance,
		InitialBalance: m.InitialBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// FindAccountByID retrieves an account by its identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	m, err := scanAccount(r.q.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
		}
		return nil, apperrors.NewAppError(500, "failed to get account", err)
	}
	account := toDomainAccount(m)
	return &account, nil
}

// FindAccountsByIDs retrieves multiple accounts keyed by ID.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.q.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	accounts := make(map[string]domain.Account, len(accountIDs))
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

// ListAccounts retrieves a workspace's accounts ordered by creation time.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, workspaceID string, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts WHERE workspace_id = $1
		ORDER BY created_at ASC LIMIT $2 OFFSET $3;`
	rows, err := r.q.Query(ctx, query, workspaceID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan account", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read accounts", err)
	}
	return accounts, nil
}

// SaveAccount persists a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	query := `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);`
	_, err := r.q.Exec(ctx, query,
		account.AccountID, account.WorkspaceID, account.Name, string(account.AccountType),
		account.CurrencyCode, account.Description, account.IsActive,
		account.Balance, account.InitialBalance,
		account.CreatedAt, account.CreatedBy, account.LastUpdatedAt, account.LastUpdatedBy)
	return mapWriteError(err, "failed to insert account")
}

// UpdateAccount persists account metadata changes. Balance columns are
// deliberately not in the SET list.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET name = $2, account_type = $3, description = $4, last_updated_at = $5, last_updated_by = $6
		WHERE account_id = $1;`
	tag, err := r.q.Exec(ctx, query,
		account.AccountID, account.Name, string(account.AccountType), account.Description,
		account.LastUpdatedAt, account.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "failed to update account")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", account.AccountID))
	}
	return nil
}

// DeactivateAccount flags an account inactive, keeping its history.
func (r *PgxAccountRepository) DeactivateAccount(ctx context.Context, accountID string, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1;`
	tag, err := r.q.Exec(ctx, query, accountID, now, userID)
	if err != nil {
		return mapWriteError(err, "failed to deactivate account")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
	}
	return nil
}
