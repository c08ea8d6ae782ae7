package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType mirrors domain.TransactionType for storage. Only INCOME and
// EXPENSE rows are ever persisted; transfer intent becomes two linked legs.
type TransactionType string

// Transaction represents a row in the transactions table.
type Transaction struct {
	TransactionID   string          `db:"transaction_id"`
	WorkspaceID     string          `db:"workspace_id"`
	AccountID       string          `db:"account_id"`
	Type            TransactionType `db:"type"`
	Amount          decimal.Decimal `db:"amount"`
	CurrencyCode    string          `db:"currency_code"`
	Category        string          `db:"category"`
	Description     string          `db:"description"`
	TransactionDate time.Time       `db:"transaction_date"`
	TransferID      *string         `db:"transfer_id"`
	Version         int64           `db:"version"`
	AuditFields
}
