package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	portsrepo "github.com/pennywise-app/pennywise_backend/internal/core/ports/repositories"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
	"github.com/pennywise-app/pennywise_backend/internal/middleware"
)

// roleRank orders roles by privilege for the minimum-role check.
var roleRank = map[domain.UserWorkspaceRole]int{
	domain.RoleReadOnly: 1,
	domain.RoleMember:   2,
	domain.RoleAdmin:    3,
}

type workspaceService struct {
	workspaceRepo portsrepo.WorkspaceRepositoryFacade
	userRepo      portsrepo.UserReader
}

var _ portssvc.WorkspaceSvcFacade = (*workspaceService)(nil)

// NewWorkspaceService creates the workspace service.
func NewWorkspaceService(workspaceRepo portsrepo.WorkspaceRepositoryFacade, userRepo portsrepo.UserReader) portssvc.WorkspaceSvcFacade {
	return &workspaceService{workspaceRepo: workspaceRepo, userRepo: userRepo}
}

// AuthorizeUserAction verifies the user holds at least requiredRole in the
// workspace. Non-members get ErrNotFound so they cannot distinguish a
// workspace they were excluded from and one that does not exist.
func (s *workspaceService) AuthorizeUserAction(ctx context.Context, userID, workspaceID string, requiredRole domain.UserWorkspaceRole) error {
	membership, err := s.workspaceRepo.FindUserWorkspaceRole(ctx, userID, workspaceID)
	if err != nil {
		return err
	}
	if membership.Role == domain.RoleRemoved {
		return apperrors.NewNotFoundError("user is not a member of the workspace")
	}
	if roleRank[membership.Role] < roleRank[requiredRole] {
		return fmt.Errorf("%w: role %s does not allow this action", apperrors.ErrForbidden, membership.Role)
	}
	return nil
}

func (s *workspaceService) GetWorkspaceByID(ctx context.Context, workspaceID string, userID string) (*domain.Workspace, error) {
	if err := s.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.workspaceRepo.FindWorkspaceByID(ctx, workspaceID)
}

func (s *workspaceService) ListUserWorkspaces(ctx context.Context, userID string) ([]domain.Workspace, error) {
	return s.workspaceRepo.ListWorkspacesByUserID(ctx, userID)
}

func (s *workspaceService) CreateWorkspace(ctx context.Context, req dto.CreateWorkspaceRequest, creatorUserID string) (*domain.Workspace, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	now := time.Now()
	workspace := domain.Workspace{
		WorkspaceID:         uuid.NewString(),
		Name:                req.Name,
		Description:         req.Description,
		DefaultCurrencyCode: req.DefaultCurrencyCode,
		IsActive:            true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.workspaceRepo.SaveWorkspace(ctx, workspace, creatorUserID); err != nil {
		return nil, err
	}
	logger.Info("workspace created", "workspaceID", workspace.WorkspaceID)
	return &workspace, nil
}

func (s *workspaceService) AddUserToWorkspace(ctx context.Context, workspaceID string, req dto.AddUserToWorkspaceRequest, actorUserID string) error {
	if err := s.AuthorizeUserAction(ctx, actorUserID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}
	// The target must exist before a membership row can point at them.
	if _, err := s.userRepo.FindUserByID(ctx, req.UserID); err != nil {
		return err
	}
	membership := domain.UserWorkspace{
		UserID:      req.UserID,
		WorkspaceID: workspaceID,
		Role:        req.Role,
		JoinedAt:    time.Now(),
	}
	return s.workspaceRepo.AddUserToWorkspace(ctx, membership)
}

func (s *workspaceService) RemoveUserFromWorkspace(ctx context.Context, workspaceID string, targetUserID string, actorUserID string) error {
	if err := s.AuthorizeUserAction(ctx, actorUserID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}
	if targetUserID == actorUserID {
		return fmt.Errorf("%w: admins cannot remove themselves", apperrors.ErrValidation)
	}
	return s.workspaceRepo.RemoveUserFromWorkspace(ctx, targetUserID, workspaceID, actorUserID, time.Now())
}

func (s *workspaceService) DeactivateWorkspace(ctx context.Context, workspaceID string, actorUserID string) error {
	if err := s.AuthorizeUserAction(ctx, actorUserID, workspaceID, domain.RoleAdmin); err != nil {
		return err
	}
	return s.workspaceRepo.DeactivateWorkspace(ctx, workspaceID, actorUserID, time.Now())
}
