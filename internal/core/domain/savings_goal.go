package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal is a savings target linked to an account. Progress is the linked
// account's balance relative to TargetAmount and is computed by callers.
type SavingsGoal struct {
	GoalID       string          `json:"goalID"` // Primary Key (UUID)
	WorkspaceID  string          `json:"workspaceID"`
	AccountID    string          `json:"accountID"` // Account accumulating the savings
	Name         string          `json:"name"`
	TargetAmount decimal.Decimal `json:"targetAmount"` // Positive
	TargetDate   *time.Time      `json:"targetDate"`   // Optional deadline
	AuditFields
}
