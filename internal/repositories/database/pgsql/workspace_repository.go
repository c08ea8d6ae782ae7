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

// PgxWorkspaceRepository implements workspace persistence against Postgres.
type PgxWorkspaceRepository struct {
	BaseRepository
}

var _ portsrepo.WorkspaceRepositoryFacade = (*PgxWorkspaceRepository)(nil)

// NewPgxWorkspaceRepository creates a workspace repository bound to the pool.
func NewPgxWorkspaceRepository(pool *pgxpool.Pool) *PgxWorkspaceRepository {
	return &PgxWorkspaceRepository{BaseRepository: NewBaseRepository(pool)}
}

const workspaceColumns = `workspace_id, name, description, default_currency_code, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanWorkspace(row pgx.Row) (*models.Workspace, error) {
	var m models.Workspace
	err := row.Scan(
		&m.WorkspaceID, &m.Name, &m.Description, &m.DefaultCurrencyCode, &m.IsActive,
		&m.CreatedAt, &m.CreatedBy, &m.LastUpdatedAt, &m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func toDomainWorkspace(m *models.Workspace) domain.Workspace {
	return domain.Workspace{
		WorkspaceID:         m.WorkspaceID,
		Name:                m.Name,
		Description:         m.Description,
		DefaultCurrencyCode: m.DefaultCurrencyCode,
		IsActive:            m.IsActive,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// FindWorkspaceByID retrieves a workspace by its identifier.
func (r *PgxWorkspaceRepository) FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	query := `SELECT ` + workspaceColumns + ` FROM workspaces WHERE workspace_id = $1;`
	m, err := scanWorkspace(r.q.QueryRow(ctx, query, workspaceID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("workspace with ID %s not found", workspaceID))
		}
		return nil, apperrors.NewAppError(500, "failed to get workspace", err)
	}
	workspace := toDomainWorkspace(m)
	return &workspace, nil
}

// ListWorkspacesByUserID retrieves all workspaces a user is an active member of.
func (r *PgxWorkspaceRepository) ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error) {
	query := `
		SELECT ` + prefixColumns("w", workspaceColumns) + `
		FROM workspaces w
		JOIN user_workspaces uw ON uw.workspace_id = w.workspace_id
		WHERE uw.user_id = $1 AND uw.role <> 'REMOVED'
		ORDER BY w.created_at ASC;`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query workspaces", err)
	}
	defer rows.Close()

	var workspaces []domain.Workspace
	for rows.Next() {
		m, err := scanWorkspace(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan workspace", err)
		}
		workspaces = append(workspaces, toDomainWorkspace(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to read workspaces", err)
	}
	return workspaces, nil
}

// FindUserWorkspaceRole retrieves the membership row for a user in a workspace.
func (r *PgxWorkspaceRepository) FindUserWorkspaceRole(ctx context.Context, userID, workspaceID string) (*domain.UserWorkspace, error) {
	query := `
		SELECT uw.user_id, u.name, uw.workspace_id, uw.role, uw.joined_at
		FROM user_workspaces uw
		JOIN users u ON u.user_id = uw.user_id
		WHERE uw.user_id = $1 AND uw.workspace_id = $2;`
	var membership domain.UserWorkspace
	err := r.q.QueryRow(ctx, query, userID, workspaceID).Scan(
		&membership.UserID, &membership.UserName, &membership.WorkspaceID,
		&membership.Role, &membership.JoinedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("user is not a member of the workspace")
		}
		return nil, apperrors.NewAppError(500, "failed to get workspace membership", err)
	}
	return &membership, nil
}

// SaveWorkspace persists a new workspace together with the creator's ADMIN
// membership in one database transaction.
func (r *PgxWorkspaceRepository) SaveWorkspace(ctx context.Context, workspace domain.Workspace, creatorUserID string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(500, "failed to begin transaction", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	_, err = tx.Exec(ctx, `
		INSERT INTO workspaces (`+workspaceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`,
		workspace.WorkspaceID, workspace.Name, workspace.Description,
		workspace.DefaultCurrencyCode, workspace.IsActive,
		workspace.CreatedAt, workspace.CreatedBy, workspace.LastUpdatedAt, workspace.LastUpdatedBy)
	if err != nil {
		return mapWriteError(err, "failed to insert workspace")
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_workspaces (user_id, workspace_id, role, joined_at)
		VALUES ($1, $2, $3, $4);`,
		creatorUserID, workspace.WorkspaceID, string(domain.RoleAdmin), workspace.CreatedAt)
	if err != nil {
		return mapWriteError(err, "failed to insert workspace membership")
	}

	if err := tx.Commit(ctx); err != nil {
		return apperrors.NewAppError(500, "failed to commit transaction", err)
	}
	return nil
}

// AddUserToWorkspace inserts a membership or updates the role of an existing one.
func (r *PgxWorkspaceRepository) AddUserToWorkspace(ctx context.Context, membership domain.UserWorkspace) error {
	query := `
		INSERT INTO user_workspaces (user_id, workspace_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, workspace_id) DO UPDATE SET role = EXCLUDED.role;`
	_, err := r.q.Exec(ctx, query,
		membership.UserID, membership.WorkspaceID, string(membership.Role), membership.JoinedAt)
	return mapWriteError(err, "failed to save workspace membership")
}

// RemoveUserFromWorkspace marks the membership as removed.
func (r *PgxWorkspaceRepository) RemoveUserFromWorkspace(ctx context.Context, userID, workspaceID string, actorUserID string, now time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE user_workspaces SET role = $3
		WHERE user_id = $1 AND workspace_id = $2;`,
		userID, workspaceID, string(domain.RoleRemoved))
	if err != nil {
		return mapWriteError(err, "failed to remove workspace membership")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("user is not a member of the workspace")
	}
	return nil
}

// DeactivateWorkspace flags a workspace inactive.
func (r *PgxWorkspaceRepository) DeactivateWorkspace(ctx context.Context, workspaceID string, userID string, now time.Time) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE workspaces
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE workspace_id = $1;`,
		workspaceID, now, userID)
	if err != nil {
		return mapWriteError(err, "failed to deactivate workspace")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("workspace with ID %s not found", workspaceID))
	}
	return nil
}
