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

// PgxSavingsGoalRepository implements savings goal persistence against Postgres.
type PgxSavingsGoalRepository struct {
	BaseRepository
}

var _ portsrepo.SavingsGoalRepositoryFacade = (*PgxSavingsGoalRepository)(nil)

// NewPgxSavingsGoalRepository creates a savings goal repository bound to the pool.
func NewPgxSavingsGoalRepository(pool *pgxpool.Pool) *PgxSavingsGoalRepository {
	return &PgxSavingsGoalRepository{BaseRepository: NewBaseRepository(pool)}
}

const savingsGoalColumns = `goal_id, workspace_id, account_id, name, target_amount, target_date,
	created_at, created_by, last_updated_at, last_updated_by`

func scanSavingsGoal(row pgx.Row) (*models.SavingsGoal, error) {
	var m models.SavingsGoal
	err := row.Scan(
		&m.GoalID, &m.WorkspaceID, &m.AccountID, &m.Name, &m.TargetAmount, &m.TargetDate,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func toDomainSavingsGoal(m *models.SavingsGoal) domain.SavingsGoal {
	return domain.SavingsGoal{
		GoalID:       m.GoalID,
		WorkspaceID:  m.WorkspaceID,
		AccountID:    m.AccountID,
		Name:         m.Name,
		TargetAmount: m.TargetAmount,
		TargetDate:   m.TargetDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// FindGoalByID retrieves a savings goal by its identifier.
func (r *PgxSavingsGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error) {
	query := `SELECT ` + savingsGoalColumns + ` FROM savings_goals WHERE goal_id = $1;`
	m, err := scanSavingsGoal(r.q.QueryRow(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("savings goal with ID %s not found", goalID))
		}
		return nil, apperrors.NewAppError(500, "failed to get savings goal", err)
	}
	goal := toDomainSavingsGoal(m)
	return &goal, nil
}

// ListGoalsByWorkspace retrieves a workspace's savings goals.
func (r *PgxSavingsGoalRepository) ListGoalsByWorkspace(ctx context.Context, workspaceID string) ([]domain.SavingsGoal, error) {
	query := `SELECT ` + savingsGoalColumns + `
		FROM savings_goals WHERE workspace_id = $1
		ORDER BY created_at ASC;`
	rows, err := r.q.Query(ctx, query, workspaceID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query savings goals", err)
	}
	defer rows.Close()

	var goals []domain.SavingsGoal
	for rows.Next() {
		m, err := scanSavingsGoal(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan savings goal", err)
		}
		goals = append(goals, toDomainSavingsGoal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read savings goals", err)
	}
	return goals, nil
}

// SaveGoal persists a new savings goal.
func (r *PgxSavingsGoalRepository) SaveGoal(ctx context.Context, goal domain.SavingsGoal) error {
	query := `
		INSERT INTO savings_goals (` + savingsGoalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);`
	_, err := r.q.Exec(ctx, query,
		goal.GoalID, goal.WorkspaceID, goal.AccountID, goal.Name, goal.TargetAmount, goal.TargetDate,
		goal.CreatedAt, goal.CreatedBy, goal.LastUpdatedAt, goal.LastUpdatedBy)
	return mapWriteError(err, "failed to insert savings goal")
}

// UpdateGoal persists changes to a savings goal.
func (r *PgxSavingsGoalRepository) UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error {
	query := `
		UPDATE savings_goals
		SET name = $2, target_amount = $3, target_date = $4, last_updated_at = $5, last_updated_by = $6
		WHERE goal_id = $1;`
	tag, err := r.q.Exec(ctx, query,
		goal.GoalID, goal.Name, goal.TargetAmount, goal.TargetDate,
		goal.LastUpdatedAt, goal.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "failed to update savings goal")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("savings goal with ID %s not found", goal.GoalID))
	}
	return nil
}

// DeleteGoal removes a savings goal.
func (r *PgxSavingsGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM savings_goals WHERE goal_id = $1;`, goalID)
	if err != nil {
		return mapWriteError(err, "failed to delete savings goal")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("savings goal with ID %s not found", goalID))
	}
	return nil
}
