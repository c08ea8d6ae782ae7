package repositories

import (
	"context"
	"time"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
)

// WorkspaceReader defines read operations for workspace data.
type WorkspaceReader interface {
	// FindWorkspaceByID retrieves a specific workspace by its identifier.
	FindWorkspaceByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)

	// ListWorkspacesByUserID retrieves all workspaces a user belongs to.
	ListWorkspacesByUserID(ctx context.Context, userID string) ([]domain.Workspace, error)

	// FindUserWorkspaceRole retrieves a user's role in a workspace.
	// Returns ErrNotFound when the user is not a member.
	FindUserWorkspaceRole(ctx context.Context, userID, workspaceID string) (*domain.UserWorkspace, error)
}

// WorkspaceWriter defines write operations for workspace data.
type WorkspaceWriter interface {
	// SaveWorkspace persists a new workspace and the creator's ADMIN membership.
	SaveWorkspace(ctx context.Context, workspace domain.Workspace, creatorUserID string) error

	// AddUserToWorkspace persists a membership row, or updates the role of an
	// existing membership.
	AddUserToWorkspace(ctx context.Context, membership domain.UserWorkspace) error

	// RemoveUserFromWorkspace marks a membership as removed.
	RemoveUserFromWorkspace(ctx context.Context, userID, workspaceID string, actorUserID string, now time.Time) error

	// DeactivateWorkspace marks a workspace as inactive.
	DeactivateWorkspace(ctx context.Context, workspaceID string, userID string, now time.Time) error
}

// WorkspaceRepositoryFacade combines reader and writer interfaces.
type WorkspaceRepositoryFacade interface {
	WorkspaceReader
	WorkspaceWriter
}
