package dto

import (
	"time"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
)

// CreateWorkspaceRequest defines the payload for creating a workspace.
type CreateWorkspaceRequest struct {
	Name                string  `json:"name" binding:"required,min=1,max=100"`
	Description         string  `json:"description" binding:"max=255"`
	DefaultCurrencyCode *string `json:"defaultCurrencyCode,omitempty" binding:"omitempty,len=3"`
}

// AddUserToWorkspaceRequest defines the payload for adding or re-roling a member.
type AddUserToWorkspaceRequest struct {
	UserID string                   `json:"userId" binding:"required"`
	Role   domain.UserWorkspaceRole `json:"role" binding:"required,oneof=ADMIN MEMBER READONLY"`
}

// WorkspaceResponse defines the API representation of a workspace.
type WorkspaceResponse struct {
	WorkspaceID         string    `json:"workspaceId"`
	Name                string    `json:"name"`
	Description         string    `json:"description,omitempty"`
	DefaultCurrencyCode *string   `json:"defaultCurrencyCode,omitempty"`
	IsActive            bool      `json:"isActive"`
	CreatedAt           time.Time `json:"createdAt"`
}

// ToWorkspaceResponse maps a domain workspace to its API representation.
func ToWorkspaceResponse(w *domain.Workspace) WorkspaceResponse {
	return WorkspaceResponse{
		WorkspaceID:         w.WorkspaceID,
		Name:                w.Name,
		Description:         w.Description,
		DefaultCurrencyCode: w.DefaultCurrencyCode,
		IsActive:            w.IsActive,
		CreatedAt:           w.CreatedAt,
	}
}

// ListWorkspacesResponse wraps the workspaces a user belongs to.
type ListWorkspacesResponse struct {
	Workspaces []WorkspaceResponse `json:"workspaces"`
}

// ToListWorkspacesResponse maps a slice of domain workspaces.
func ToListWorkspacesResponse(workspaces []domain.Workspace) ListWorkspacesResponse {
	out := make([]WorkspaceResponse, 0, len(workspaces))
	for i := range workspaces {
		out = append(out, ToWorkspaceResponse(&workspaces[i]))
	}
	return ListWorkspacesResponse{Workspaces: out}
}
