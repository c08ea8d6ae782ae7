package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavingsGoal represents a row in the savings_goals table.
type SavingsGoal struct {
	GoalID       string          `db:"goal_id"`
	WorkspaceID  string          `db:"workspace_id"`
	AccountID    string          `db:"account_id"`
	Name         string          `db:"name"`
	TargetAmount decimal.Decimal `db:"target_amount"`
	TargetDate   *time.Time      `db:"target_date"`
	AuditFields
}
