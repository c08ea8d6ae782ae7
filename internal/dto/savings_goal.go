package dto

import (
	"time"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateSavingsGoalRequest defines the payload for creating a savings goal
// attached to an account.
type CreateSavingsGoalRequest struct {
	AccountID    string          `json:"accountId" binding:"required"`
	Name         string          `json:"name" binding:"required,min=1,max=100"`
	TargetAmount decimal.Decimal `json:"targetAmount" binding:"required,gt=0"`
	TargetDate   *time.Time      `json:"targetDate,omitempty"`
}

// UpdateSavingsGoalRequest defines the payload for editing a savings goal.
type UpdateSavingsGoalRequest struct {
	Name         *string          `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	TargetAmount *decimal.Decimal `json:"targetAmount,omitempty" binding:"omitempty,gt=0"`
	TargetDate   *time.Time       `json:"targetDate,omitempty"`
}

// SavingsGoalResponse defines the API representation of a savings goal.
type SavingsGoalResponse struct {
	GoalID       string          `json:"goalId"`
	WorkspaceID  string          `json:"workspaceId"`
	AccountID    string          `json:"accountId"`
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"`
	TargetDate   *time.Time      `json:"targetDate,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToSavingsGoalResponse maps a domain savings goal to its API representation.
func ToSavingsGoalResponse(g *domain.SavingsGoal) SavingsGoalResponse {
	return SavingsGoalResponse{
		GoalID:       g.GoalID,
		WorkspaceID:  g.WorkspaceID,
		AccountID:    g.AccountID,
		Name:         g.Name,
		TargetAmount: g.TargetAmount,
		TargetDate:   g.TargetDate,
		CreatedAt:    g.CreatedAt,
	}
}

// ListSavingsGoalsResponse wraps the savings goals of a workspace.
type ListSavingsGoalsResponse struct {
	Goals []SavingsGoalResponse `json:"goals"`
}

// ToListSavingsGoalsResponse maps a slice of domain savings goals.
func ToListSavingsGoalsResponse(goals []domain.SavingsGoal) ListSavingsGoalsResponse {
	out := make([]SavingsGoalResponse, 0, len(goals))
	for i := range goals {
		out = append(out, ToSavingsGoalResponse(&goals[i]))
	}
	return ListSavingsGoalsResponse{Goals: out}
}
