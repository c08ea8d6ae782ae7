package services

import (
	"context"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
)

// SavingsGoalSvcFacade defines CRUD for savings goals. Progress toward a goal
// is derived client-side from the linked account's balance.
type SavingsGoalSvcFacade interface {
	GetGoalByID(ctx context.Context, workspaceID, goalID string, userID string) (*domain.SavingsGoal, error)
	ListGoals(ctx context.Context, workspaceID string, userID string) ([]domain.SavingsGoal, error)
	CreateGoal(ctx context.Context, workspaceID string, req dto.CreateSavingsGoalRequest, userID string) (*domain.SavingsGoal, error)
	UpdateGoal(ctx context.Context, workspaceID, goalID string, req dto.UpdateSavingsGoalRequest, userID string) (*domain.SavingsGoal, error)
	DeleteGoal(ctx context.Context, workspaceID, goalID string, userID string) error
}
