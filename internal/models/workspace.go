package models

import "time"

// Workspace represents a row in the workspaces table.
type Workspace struct {
	WorkspaceID         string  `db:"workspace_id"`
	Name                string  `db:"name"`
	Description         string  `db:"description"`
	DefaultCurrencyCode *string `db:"default_currency_code"`
	IsActive            bool    `db:"is_active"`
	AuditFields
}

// UserWorkspace represents a row in the user_workspaces membership table.
type UserWorkspace struct {
	UserID      string    `db:"user_id"`
	WorkspaceID string    `db:"workspace_id"`
	Role        string    `db:"role"`
	JoinedAt    time.Time `db:"joined_at"`
}
