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

type budgetService struct {
	budgetRepo   portsrepo.BudgetRepositoryFacade
	workspaceSvc portssvc.WorkspaceAuthorizerSvc
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// NewBudgetService creates the budget service.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, workspaceSvc portssvc.WorkspaceAuthorizerSvc) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo, workspaceSvc: workspaceSvc}
}

func (s *budgetService) getOwnedBudget(ctx context.Context, workspaceID, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.WorkspaceID != workspaceID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("budget with ID %s not found", budgetID))
	}
	return budget, nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, workspaceID, budgetID string, userID string) (*domain.Budget, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.getOwnedBudget(ctx, workspaceID, budgetID)
}

func (s *budgetService) ListBudgets(ctx context.Context, workspaceID string, userID string, month *string) ([]domain.Budget, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.budgetRepo.ListBudgetsByWorkspace(ctx, workspaceID, month)
}

func (s *budgetService) CreateBudget(ctx context.Context, workspaceID string, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	if !req.AmountLimit.IsPositive() {
		return nil, fmt.Errorf("%w: budget limit must be positive", apperrors.ErrValidation)
	}
	if _, err := time.Parse("2006-01", req.Month); err != nil {
		return nil, fmt.Errorf("%w: month must use the YYYY-MM format", apperrors.ErrValidation)
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:     uuid.NewString(),
		WorkspaceID:  workspaceID,
		Category:     req.Category,
		AmountLimit:  req.AmountLimit,
		CurrencyCode: req.CurrencyCode,
		Month:        req.Month,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		return nil, err
	}
	return &budget, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, workspaceID, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	budget, err := s.getOwnedBudget(ctx, workspaceID, budgetID)
	if err != nil {
		return nil, err
	}
	if req.AmountLimit != nil {
		if !req.AmountLimit.IsPositive() {
			return nil, fmt.Errorf("%w: budget limit must be positive", apperrors.ErrValidation)
		}
		budget.AmountLimit = *req.AmountLimit
	}
	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = userID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, workspaceID, budgetID string, userID string) error {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return err
	}
	if _, err := s.getOwnedBudget(ctx, workspaceID, budgetID); err != nil {
		return err
	}
	return s.budgetRepo.DeleteBudget(ctx, budgetID)
}
