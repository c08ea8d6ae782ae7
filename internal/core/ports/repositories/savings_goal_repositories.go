package repositories

import (
	"context"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
)

// SavingsGoalReader defines read operations for savings goal data.
type SavingsGoalReader interface {
	// FindGoalByID retrieves a savings goal by its unique identifier.
	FindGoalByID(ctx context.Context, goalID string) (*domain.SavingsGoal, error)

	// ListGoalsByWorkspace retrieves all savings goals for a workspace.
	ListGoalsByWorkspace(ctx context.Context, workspaceID string) ([]domain.SavingsGoal, error)
}

// SavingsGoalWriter defines write operations for savings goal data.
type SavingsGoalWriter interface {
	// SaveGoal persists a new savings goal.
	SaveGoal(ctx context.Context, goal domain.SavingsGoal) error

	// UpdateGoal persists changes to a savings goal.
	UpdateGoal(ctx context.Context, goal domain.SavingsGoal) error

	// DeleteGoal removes a savings goal.
	DeleteGoal(ctx context.Context, goalID string) error
}

// SavingsGoalRepositoryFacade combines reader and writer interfaces.
type SavingsGoalRepositoryFacade interface {
	SavingsGoalReader
	SavingsGoalWriter
}
