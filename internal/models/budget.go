package models

import "github.com/shopspring/decimal"

// Budget represents a row in the budgets table.
type Budget struct {
	BudgetID     string          `db:"budget_id"`
	WorkspaceID  string          `db:"workspace_id"`
	Category     string          `db:"category"`
	AmountLimit  decimal.Decimal `db:"amount_limit"`
	CurrencyCode string          `db:"currency_code"`
	Month        string          `db:"month"`
	AuditFields
}
