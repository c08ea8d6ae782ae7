package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
)

// WorkspaceHandler serves workspace management endpoints.
type WorkspaceHandler struct {
	workspaceSvc portssvc.WorkspaceSvcFacade
}

// NewWorkspaceHandler creates the workspace handler.
func NewWorkspaceHandler(workspaceSvc portssvc.WorkspaceSvcFacade) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceSvc: workspaceSvc}
}

// CreateWorkspace creates a workspace owned by the caller.
//
// @Summary      Create a workspace
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateWorkspaceRequest true "Workspace payload"
// @Success      201 {object} dto.WorkspaceResponse
// @Failure      400 {object} ErrorResponse
// @Router       /workspaces [post]
func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	workspace, err := h.workspaceSvc.CreateWorkspace(c.Request.Context(), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToWorkspaceResponse(workspace))
}

// ListWorkspaces returns the caller's workspaces.
//
// @Summary      List workspaces
// @Tags         workspaces
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ListWorkspacesResponse
// @Router       /workspaces [get]
func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workspaces, err := h.workspaceSvc.ListUserWorkspaces(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListWorkspacesResponse(workspaces))
}

// GetWorkspace returns one workspace.
//
// @Summary      Get a workspace
// @Tags         workspaces
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Success      200 {object} dto.WorkspaceResponse
// @Failure      404 {object} ErrorResponse
// @Router       /workspaces/{workspaceID} [get]
func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workspace, err := h.workspaceSvc.GetWorkspaceByID(c.Request.Context(), c.Param("workspaceID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToWorkspaceResponse(workspace))
}

// AddUser adds a member or changes their role.
//
// @Summary      Add a user to a workspace
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        request body dto.AddUserToWorkspaceRequest true "Membership payload"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/users [post]
func (h *WorkspaceHandler) AddUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.AddUserToWorkspaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.workspaceSvc.AddUserToWorkspace(c.Request.Context(), c.Param("workspaceID"), req, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RemoveUser revokes a membership.
//
// @Summary      Remove a user from a workspace
// @Tags         workspaces
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        userID path string true "User ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/users/{userID} [delete]
func (h *WorkspaceHandler) RemoveUser(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.workspaceSvc.RemoveUserFromWorkspace(c.Request.Context(), c.Param("workspaceID"), c.Param("userID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeactivateWorkspace marks a workspace inactive.
//
// @Summary      Deactivate a workspace
// @Tags         workspaces
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Router       /workspaces/{workspaceID} [delete]
func (h *WorkspaceHandler) DeactivateWorkspace(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.workspaceSvc.DeactivateWorkspace(c.Request.Context(), c.Param("workspaceID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
