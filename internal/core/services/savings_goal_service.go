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
)

type savingsGoalService struct {
	goalRepo     portsrepo.SavingsGoalRepositoryFacade
	accountSvc   portssvc.AccountReaderSvc
	workspaceSvc portssvc.WorkspaceAuthorizerSvc
}

var _ portssvc.SavingsGoalSvcFacade = (*savingsGoalService)(nil)

// NewSavingsGoalService creates the savings goal service.
func NewSavingsGoalService(
	goalRepo portsrepo.SavingsGoalRepositoryFacade,
	accountSvc portssvc.AccountReaderSvc,
	workspaceSvc portssvc.WorkspaceAuthorizerSvc,
) portssvc.SavingsGoalSvcFacade {
	return &savingsGoalService{goalRepo: goalRepo, accountSvc: accountSvc, workspaceSvc: workspaceSvc}
}

func (s *savingsGoalService) getOwnedGoal(ctx context.Context, workspaceID, goalID string) (*domain.SavingsGoal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		return nil, err
	}
	if goal.WorkspaceID != workspaceID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("savings goal with ID %s not found", goalID))
	}
	return goal, nil
}

func (s *savingsGoalService) GetGoalByID(ctx context.Context, workspaceID, goalID string, userID string) (*domain.SavingsGoal, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.getOwnedGoal(ctx, workspaceID, goalID)
}

func (s *savingsGoalService) ListGoals(ctx context.Context, workspaceID string, userID string) ([]domain.SavingsGoal, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.goalRepo.ListGoalsByWorkspace(ctx, workspaceID)
}

func (s *savingsGoalService) CreateGoal(ctx context.Context, workspaceID string, req dto.CreateSavingsGoalRequest, userID string) (*domain.SavingsGoal, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if !req.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("%w: target amount must be positive", apperrors.ErrValidation)
	}
	// The linked account anchors the goal's progress, so it must live in the
	// same workspace.
	if _, err := s.accountSvc.GetAccountByID(ctx, workspaceID, req.AccountID, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	goal := domain.SavingsGoal{
		GoalID:       uuid.NewString(),
		WorkspaceID:  workspaceID,
		AccountID:    req.AccountID,
		Name:         req.Name,
		TargetAmount: req.TargetAmount,
		TargetDate:   req.TargetDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		return nil, err
	}
	return &goal, nil
}

func (s *savingsGoalService) UpdateGoal(ctx context.Context, workspaceID, goalID string, req dto.UpdateSavingsGoalRequest, userID string) (*domain.SavingsGoal, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	goal, err := s.getOwnedGoal(ctx, workspaceID, goalID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() {
			return nil, fmt.Errorf("%w: target amount must be positive", apperrors.ErrValidation)
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate
	}
	goal.LastUpdatedAt = time.Now()
	goal.LastUpdatedBy = userID

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *savingsGoalService) DeleteGoal(ctx context.Context, workspaceID, goalID string, userID string) error {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return err
	}
	if _, err := s.getOwnedGoal(ctx, workspaceID, goalID); err != nil {
		return err
	}
	return s.goalRepo.DeleteGoal(ctx, goalID)
}
