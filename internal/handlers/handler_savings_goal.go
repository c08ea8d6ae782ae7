package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
)

// SavingsGoalHandler serves savings goal endpoints inside a workspace.
type SavingsGoalHandler struct {
	goalSvc portssvc.SavingsGoalSvcFacade
}

// NewSavingsGoalHandler creates the savings goal handler.
func NewSavingsGoalHandler(goalSvc portssvc.SavingsGoalSvcFacade) *SavingsGoalHandler {
	return &SavingsGoalHandler{goalSvc: goalSvc}
}

// CreateGoal creates a savings goal linked to an account.
//
// @Summary      Create a savings goal
// @Tags         savings-goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        request body dto.CreateSavingsGoalRequest true "Goal payload"
// @Success      201 {object} dto.SavingsGoalResponse
// @Failure      400 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/goals [post]
func (h *SavingsGoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	goal, err := h.goalSvc.CreateGoal(c.Request.Context(), c.Param("workspaceID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToSavingsGoalResponse(goal))
}

// ListGoals returns the workspace's savings goals.
//
// @Summary      List savings goals
// @Tags         savings-goals
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Success      200 {object} dto.ListSavingsGoalsResponse
// @Router       /workspaces/{workspaceID}/goals [get]
func (h *SavingsGoalHandler) ListGoals(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	goals, err := h.goalSvc.ListGoals(c.Request.Context(), c.Param("workspaceID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListSavingsGoalsResponse(goals))
}

// GetGoal returns one savings goal.
//
// @Summary      Get a savings goal
// @Tags         savings-goals
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        goalID path string true "Goal ID"
// @Success      200 {object} dto.SavingsGoalResponse
// @Failure      404 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/goals/{goalID} [get]
func (h *SavingsGoalHandler) GetGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	goal, err := h.goalSvc.GetGoalByID(c.Request.Context(), c.Param("workspaceID"), c.Param("goalID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// UpdateGoal edits a savings goal.
//
// @Summary      Update a savings goal
// @Tags         savings-goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        goalID path string true "Goal ID"
// @Param        request body dto.UpdateSavingsGoalRequest true "Goal changes"
// @Success      200 {object} dto.SavingsGoalResponse
// @Failure      404 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/goals/{goalID} [patch]
func (h *SavingsGoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateSavingsGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	goal, err := h.goalSvc.UpdateGoal(c.Request.Context(), c.Param("workspaceID"), c.Param("goalID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToSavingsGoalResponse(goal))
}

// DeleteGoal removes a savings goal.
//
// @Summary      Delete a savings goal
// @Tags         savings-goals
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        goalID path string true "Goal ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/goals/{goalID} [delete]
func (h *SavingsGoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.goalSvc.DeleteGoal(c.Request.Context(), c.Param("workspaceID"), c.Param("goalID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
