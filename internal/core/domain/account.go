package domain

import "github.com/shopspring/decimal"

// AccountType categorizes an account for presentation purposes. It carries no
// balance semantics; deltas are derived from the transaction type alone.
type AccountType string

const (
	AccountTypeChecking   AccountType = "CHECKING"
	AccountTypeSavings    AccountType = "SAVINGS"
	AccountTypeCash       AccountType = "CASH"
	AccountTypeCreditCard AccountType = "CREDIT_CARD"
	AccountTypeInvestment AccountType = "INVESTMENT"
	AccountTypeOther      AccountType = "OTHER"
)

// Account represents a financial account within a workspace.
//
// Invariant: Balance equals InitialBalance plus the sum of the signed deltas of
// every transaction currently posted against the account. The invariant holds
// after every successful mutation; it may be violated only inside an in-flight
// operation that has not yet committed.
type Account struct {
	AccountID      string          `json:"accountID"`   // Primary Key (UUID)
	WorkspaceID    string          `json:"workspaceID"` // Owning tenant
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	CurrencyCode   string          `json:"currencyCode"` // ISO 4217
	Description    string          `json:"description"`
	IsActive       bool            `json:"isActive"` // Soft-delete flag; accounts with history are never hard-deleted
	Balance        decimal.Decimal `json:"balance"`  // Cached; kept consistent by the ledger service
	InitialBalance decimal.Decimal `json:"initialBalance"`
	AuditFields
}
