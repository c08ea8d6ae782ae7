package models

import "github.com/shopspring/decimal"

// AccountType mirrors domain.AccountType for storage.
type AccountType string

// Account represents a row in the accounts table.
type Account struct {
	AccountID      string          `db:"account_id"`
	WorkspaceID    string          `db:"workspace_id"`
	Name           string          `db:"name"`
	AccountType    AccountType     `db:"account_type"`
	CurrencyCode   string          `db:"currency_code"`
	Description    string          `db:"description"`
	IsActive       bool            `db:"is_active"`
	Balance        decimal.Decimal `db:"balance"`
	InitialBalance decimal.Decimal `db:"initial_balance"`
	AuditFields
}
