package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType determines the direction of a transaction's balance effect.
type TransactionType string

const (
	TypeIncome  TransactionType = "INCOME"
	TypeExpense TransactionType = "EXPENSE"
	// TypeTransfer is an intent type only. A transfer is persisted as two linked
	// legs (an expense on the source account and an income on the destination)
	// sharing a TransferID; a single transfer-typed row is never stored because
	// its balance effect would be undefined.
	TypeTransfer TransactionType = "TRANSFER"
)

// Transaction represents a single money movement posted against one account.
//
// Amount is always strictly positive; direction is derived from Type, never
// stored as a negative amount. Version supports optimistic concurrency on
// update/delete so two writers cannot both reverse the same pre-image.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	WorkspaceID     string          `json:"workspaceID"`
	AccountID       string          `json:"accountID"`
	Type            TransactionType `json:"type"`
	Amount          decimal.Decimal `json:"amount"` // Positive, 2 fractional digits
	CurrencyCode    string          `json:"currencyCode"`
	Category        string          `json:"category"`    // Optional
	Description     string          `json:"description"` // Optional
	TransactionDate time.Time       `json:"transactionDate"`
	TransferID      *string         `json:"transferID"` // Set on both legs of a transfer, nil otherwise
	Version         int64           `json:"version"`
	AuditFields
}

// IsTransferLeg reports whether the transaction is one leg of a paired transfer.
func (t Transaction) IsTransferLeg() bool {
	return t.TransferID != nil && *t.TransferID != ""
}

// Transfer groups the two legs created by a transfer between accounts.
// Outgoing is the expense leg on the source account, Incoming the income leg
// on the destination account. Both carry the same TransferID and amount.
type Transfer struct {
	TransferID string      `json:"transferID"`
	Outgoing   Transaction `json:"outgoing"`
	Incoming   Transaction `json:"incoming"`
}
