package domain

import "github.com/shopspring/decimal"

// ReconciliationResult reports the outcome of comparing an account's cached
// balance against the value recomputed from its full transaction history.
type ReconciliationResult struct {
	AccountID  string          `json:"accountID"`
	Previous   decimal.Decimal `json:"previous"`
	Recomputed decimal.Decimal `json:"recomputed"`
	Corrected  bool            `json:"corrected"` // True when the stored balance was overwritten
}
