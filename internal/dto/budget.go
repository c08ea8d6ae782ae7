package dto

import (
	"time"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the payload for creating a monthly category budget.
type CreateBudgetRequest struct {
	Category     string          `json:"category" binding:"required,min=1,max=100"`
	AmountLimit  decimal.Decimal `json:"amountLimit" binding:"required,gt=0"`
	CurrencyCode string          `json:"currencyCode" binding:"required,len=3"`
	Month        string          `json:"month" binding:"required,len=7"` // "YYYY-MM"
}

// UpdateBudgetRequest defines the payload for editing a budget's limit.
type UpdateBudgetRequest struct {
	AmountLimit *decimal.Decimal `json:"amountLimit,omitempty" binding:"omitempty,gt=0"`
}

// BudgetResponse defines the API representation of a budget.
type BudgetResponse struct {
	BudgetID     string          `json:"budgetId"`
	WorkspaceID  string          `json:"workspaceId"`
	Category     string          `json:"category"`
	AmountLimit  decimal.Decimal `json:"amountLimit"`
	CurrencyCode string          `json:"currencyCode"`
	Month        string          `json:"month"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// ToBudgetResponse maps a domain budget to its API representation.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:     b.BudgetID,
		WorkspaceID:  b.WorkspaceID,
		Category:     b.Category,
		AmountLimit:  b.AmountLimit,
		CurrencyCode: b.CurrencyCode,
		Month:        b.Month,
		CreatedAt:    b.CreatedAt,
	}
}

// ListBudgetsResponse wraps the budgets of a workspace.
type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// ToListBudgetsResponse maps a slice of domain budgets.
func ToListBudgetsResponse(budgets []domain.Budget) ListBudgetsResponse {
	out := make([]BudgetResponse, 0, len(budgets))
	for i := range budgets {
		out = append(out, ToBudgetResponse(&budgets[i]))
	}
	return ListBudgetsResponse{Budgets: out}
}
