package repositories

import (
	"context"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
)

// BudgetReader defines read operations for budget data.
type BudgetReader interface {
	// FindBudgetByID retrieves a budget by its unique identifier.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgetsByWorkspace retrieves budgets for a workspace, optionally
	// filtered to a single "YYYY-MM" month.
	ListBudgetsByWorkspace(ctx context.Context, workspaceID string, month *string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budget data.
type BudgetWriter interface {
	// SaveBudget persists a new budget. Returns ErrDuplicate when a budget for
	// the same workspace, category and month already exists.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget persists changes to a budget.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget removes a budget.
	DeleteBudget(ctx context.Context, budgetID string) error
}

// BudgetRepositoryFacade combines reader and writer interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
