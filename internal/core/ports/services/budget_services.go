package services

import (
	"context"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
)

// BudgetSvcFacade defines CRUD for monthly category budgets. Budgets are
// declarative limits only; spend-versus-budget computation is a client concern.
type BudgetSvcFacade interface {
	GetBudgetByID(ctx context.Context, workspaceID, budgetID string, userID string) (*domain.Budget, error)
	ListBudgets(ctx context.Context, workspaceID string, userID string, month *string) ([]domain.Budget, error)
	CreateBudget(ctx context.Context, workspaceID string, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error)
	UpdateBudget(ctx context.Context, workspaceID, budgetID string, req dto.UpdateBudgetRequest, userID string) (*domain.Budget, error)
	DeleteBudget(ctx context.Context, workspaceID, budgetID string, userID string) error
}
