package domain

import "time"

// Workspace is the tenant boundary: every account, transaction, budget and
// savings goal belongs to exactly one workspace.
type Workspace struct {
	WorkspaceID         string  `json:"workspaceID"` // Primary Key (UUID)
	Name                string  `json:"name"`
	Description         string  `json:"description"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode"` // ISO 4217, e.g. "USD"
	IsActive            bool    `json:"isActive"`
	AuditFields
}

// UserWorkspaceRole defines the possible roles a user can have within a workspace.
type UserWorkspaceRole string

const (
	RoleAdmin    UserWorkspaceRole = "ADMIN"
	RoleMember   UserWorkspaceRole = "MEMBER"
	RoleReadOnly UserWorkspaceRole = "READONLY"
	RoleRemoved  UserWorkspaceRole = "REMOVED"
)

// UserWorkspace represents the membership of a User in a Workspace.
type UserWorkspace struct {
	UserID      string            `json:"userID"`
	UserName    string            `json:"userName"`
	WorkspaceID string            `json:"workspaceID"`
	Role        UserWorkspaceRole `json:"role"`
	JoinedAt    time.Time         `json:"joinedAt"`
}
