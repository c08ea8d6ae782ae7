package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	portsrepo "github.com/pennywise-app/pennywise_backend/internal/core/ports/repositories"
	"github.com/pennywise-app/pennywise_backend/internal/models"
)

// PgxBudgetRepository implements budget persistence against Postgres.
type PgxBudgetRepository struct {
	BaseRepository
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// NewPgxBudgetRepository creates a budget repository bound to the pool.
func NewPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository: NewBaseRepository(pool)}
}

const budgetColumns = `budget_id, workspace_id, category, amount_limit, currency_code, month,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBudget(row pgx.Row) (*models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID, &m.WorkspaceID, &m.Category, &m.AmountLimit, &m.CurrencyCode, &m.Month,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func toDomainBudget(m *models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:     m.BudgetID,
		WorkspaceID:  m.WorkspaceID,
		Category:     m.Category,
		AmountLimit:  m.AmountLimit,
		CurrencyCode: m.CurrencyCode,
		Month:        m.Month,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// FindBudgetByID retrieves a budget by its identifier.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`
	m, err := scanBudget(r.q.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("budget with ID %s not found", budgetID))
		}
		return nil, apperrors.NewAppError(500, "failed to get budget", err)
	}
	budget := toDomainBudget(m)
	return &budget, nil
}

// ListBudgetsByWorkspace retrieves budgets, optionally filtered by month.
func (r *PgxBudgetRepository) ListBudgetsByWorkspace(ctx context.Context, workspaceID string, month *string) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE workspace_id = $1`
	args := []any{workspaceID}
	if month != nil && *month != "" {
		query += ` AND month = $2`
		args = append(args, *month)
	}
	query += ` ORDER BY month DESC, category ASC;`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query budgets", err)
	}
	defer rows.Close()

	var budgets []domain.Budget
	for rows.Next() {
		m, err := scanBudget(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan budget", err)
		}
		budgets = append(budgets, toDomainBudget(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read budgets", err)
	}
	return budgets, nil
}

// SaveBudget persists a new budget.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.q.Exec(ctx, query,
		budget.BudgetID, budget.WorkspaceID, budget.Category, budget.AmountLimit,
		budget.CurrencyCode, budget.Month,
		budget.CreatedAt, budget.CreatedBy, budget.LastUpdatedAt, budget.LastUpdatedBy)
	return mapWriteError(err, "failed to insert budget")
}

// UpdateBudget persists changes to a budget's limit.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	query := `
		UPDATE budgets
		SET amount_limit = $2, last_updated_at = $3, last_updated_by = $4
		WHERE budget_id = $1;`
	tag, err := r.q.Exec(ctx, query,
		budget.BudgetID, budget.AmountLimit, budget.LastUpdatedAt, budget.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "failed to update budget")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("budget with ID %s not found", budget.BudgetID))
	}
	return nil
}

// DeleteBudget removes a budget.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return mapWriteError(err, "failed to delete budget")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("budget with ID %s not found", budgetID))
	}
	return nil
}
