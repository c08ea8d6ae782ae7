package services

import (
	"context"
	"testing"
	"time"

	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type WorkspaceServiceTestSuite struct {
	suite.Suite
	workspaceRepo *MockWorkspaceRepository
	userRepo      *MockUserRepository
	svc           portssvc.WorkspaceSvcFacade
}

func (s *WorkspaceServiceTestSuite) SetupTest() {
	s.workspaceRepo = new(MockWorkspaceRepository)
	s.userRepo = new(MockUserRepository)
	s.svc = NewWorkspaceService(s.workspaceRepo, s.userRepo)
}

func (s *WorkspaceServiceTestSuite) membership(role domain.UserWorkspaceRole) *domain.UserWorkspace {
	return &domain.UserWorkspace{
		UserID:      testUserID,
		WorkspaceID: testWorkspaceID,
		Role:        role,
		JoinedAt:    time.Now(),
	}
}

func (s *WorkspaceServiceTestSuite) TestAuthorizeAllowsEqualRole() {
	s.workspaceRepo.On("FindUserWorkspaceRole", mock.Anything, testUserID, testWorkspaceID).
		Return(s.membership(domain.RoleMember), nil)

	err := s.svc.AuthorizeUserAction(context.Background(), testUserID, testWorkspaceID, domain.RoleMember)

	s.NoError(err)
}

func (s *WorkspaceServiceTestSuite) TestAuthorizeAllowsHigherRole() {
	s.workspaceRepo.On("FindUserWorkspaceRole", mock.Anything, testUserID, testWorkspaceID).
		Return(s.membership(domain.RoleAdmin), nil)

	err := s.svc.AuthorizeUserAction(context.Background(), testUserID, testWorkspaceID, domain.RoleReadOnly)

	s.NoError(err)
}

func (s *WorkspaceServiceTestSuite) TestAuthorizeRejectsLowerRole() {
	s.workspaceRepo.On("FindUserWorkspaceRole", mock.Anything, testUserID, testWorkspaceID).
		Return(s.membership(domain.RoleReadOnly), nil)

	err := s.svc.AuthorizeUserAction(context.Background(), testUserID, testWorkspaceID, domain.RoleMember)

	s.ErrorIs(err, apperrors.ErrForbidden)
}

func (s *WorkspaceServiceTestSuite) TestAuthorizeHidesWorkspaceFromRemovedMember() {
	s.workspaceRepo.On("FindUserWorkspaceRole", mock.Anything, testUserID, testWorkspaceID).
		Return(s.membership(domain.RoleRemoved), nil)

	err := s.svc.AuthorizeUserAction(context.Background(), testUserID, testWorkspaceID, domain.RoleReadOnly)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.NotErrorIs(err, apperrors.ErrForbidden)
}

func (s *WorkspaceServiceTestSuite) TestAuthorizeHidesWorkspaceFromNonMember() {
	s.workspaceRepo.On("FindUserWorkspaceRole", mock.Anything, testUserID, testWorkspaceID).
		Return(nil, apperrors.NewNotFoundError("membership not found"))

	err := s.svc.AuthorizeUserAction(context.Background(), testUserID, testWorkspaceID, domain.RoleReadOnly)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *WorkspaceServiceTestSuite) TestCreateWorkspaceAssignsIDAndAudit() {
	var saved domain.Workspace
	s.workspaceRepo.On("SaveWorkspace", mock.Anything, mock.MatchedBy(func(ws domain.Workspace) bool {
		saved = ws
		return ws.Name == "Family" && ws.IsActive && ws.WorkspaceID != ""
	}), testUserID).Return(nil)

	currency := "EUR"
	workspace, err := s.svc.CreateWorkspace(context.Background(), dto.CreateWorkspaceRequest{
		Name:                "Family",
		DefaultCurrencyCode: &currency,
	}, testUserID)

	s.Require().NoError(err)
	s.Equal(saved.WorkspaceID, workspace.WorkspaceID)
	s.Equal(testUserID, workspace.CreatedBy)
}

func (s *WorkspaceServiceTestSuite) TestAddUserRequiresAdmin() {
	s.workspaceRepo.On("FindUserWorkspaceRole", mock.Anything, testUserID, testWorkspaceID).
		Return(s.membership(domain.RoleMember), nil)

	err := s.svc.AddUserToWorkspace(context.Background(), testWorkspaceID, dto.AddUserToWorkspaceRequest{
		UserID: "user-2",
		Role:   domain.RoleMember,
	}, testUserID)

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.workspaceRepo.AssertNotCalled(s.T(), "AddUserToWorkspace", mock.Anything, mock.Anything)
}

func (s *WorkspaceServiceTestSuite) TestAddUserRejectsUnknownTarget() {
	s.workspaceRepo.On("FindUserWorkspaceRole", mock.Anything, testUserID, testWorkspaceID).
		Return(s.membership(domain.RoleAdmin), nil)
	s.userRepo.On("FindUserByID", mock.Anything, "ghost").
		Return(nil, apperrors.NewNotFoundError("user not found"))

	err := s.svc.AddUserToWorkspace(context.Background(), testWorkspaceID, dto.AddUserToWorkspaceRequest{
		UserID: "ghost",
		Role:   domain.RoleMember,
	}, testUserID)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.workspaceRepo.AssertNotCalled(s.T(), "AddUserToWorkspace", mock.Anything, mock.Anything)
}

func (s *WorkspaceServiceTestSuite) TestAdminCannotRemoveThemselves() {
	s.workspaceRepo.On("FindUserWorkspaceRole", mock.Anything, testUserID, testWorkspaceID).
		Return(s.membership(domain.RoleAdmin), nil)

	err := s.svc.RemoveUserFromWorkspace(context.Background(), testWorkspaceID, testUserID, testUserID)

	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *WorkspaceServiceTestSuite) TestRemoveUserDelegatesToRepo() {
	s.workspaceRepo.On("FindUserWorkspaceRole", mock.Anything, testUserID, testWorkspaceID).
		Return(s.membership(domain.RoleAdmin), nil)
	s.workspaceRepo.On("RemoveUserFromWorkspace", mock.Anything, "user-2", testWorkspaceID, testUserID, mock.Anything).
		Return(nil)

	err := s.svc.RemoveUserFromWorkspace(context.Background(), testWorkspaceID, "user-2", testUserID)

	s.NoError(err)
	s.workspaceRepo.AssertExpectations(s.T())
}

func TestWorkspaceServiceSuite(t *testing.T) {
	suite.Run(t, new(WorkspaceServiceTestSuite))
}
