package domain

import "github.com/shopspring/decimal"

// Budget is a per-workspace monthly spending limit for a category.
// Progress against the limit is computed by callers from transaction listings;
// budgets themselves never participate in the balance invariant.
type Budget struct {
	BudgetID     string          `json:"budgetID"` // Primary Key (UUID)
	WorkspaceID  string          `json:"workspaceID"`
	Category     string          `json:"category"`
	AmountLimit  decimal.Decimal `json:"amountLimit"` // Positive
	CurrencyCode string          `json:"currencyCode"`
	Month        string          `json:"month"` // "YYYY-MM"
	AuditFields
}
