package services

import (
	"context"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
)

// WorkspaceReaderSvc defines read operations for workspaces.
type WorkspaceReaderSvc interface {
	// GetWorkspaceByID retrieves a workspace the user is a member of.
	GetWorkspaceByID(ctx context.Context, workspaceID string, userID string) (*domain.Workspace, error)

	// ListUserWorkspaces retrieves all workspaces the user belongs to.
	ListUserWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error)
}

// WorkspaceWriterSvc defines write operations for workspaces.
type WorkspaceWriterSvc interface {
	// CreateWorkspace creates a workspace with the creator as ADMIN.
	CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error)

	// AddUserToWorkspace adds a user to a workspace or changes their role.
	// Only an ADMIN of the workspace may call this.
	AddUserToWorkspace(ctx context.Context, workspaceID string, req dto.AddUserToWorkspaceRequest, actorUserID string) error

	// RemoveUserFromWorkspace revokes a user's membership. ADMIN only.
	RemoveUserFromWorkspace(ctx context.Context, workspaceID string, targetUserID string, actorUserID string) error

	// DeactivateWorkspace marks a workspace inactive. ADMIN only.
	DeactivateWorkspace(ctx context.Context, workspaceID string, actorUserID string) error
}

// WorkspaceAuthorizerSvc centralizes the membership-and-role check every
// workspace-scoped operation performs before touching data.
type WorkspaceAuthorizerSvc interface {
	// AuthorizeUserAction verifies the user has at least requiredRole in the
	// workspace. Returns ErrForbidden on insufficient role and ErrNotFound when
	// the user is not a member at all, so non-members cannot probe for
	// workspace existence.
	AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.UserWorkspaceRole) error
}

// WorkspaceSvcFacade combines all workspace service interfaces.
type WorkspaceSvcFacade interface {
	WorkspaceReaderSvc
	WorkspaceWriterSvc
	WorkspaceAuthorizerSvc
}
