package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
)

// BudgetHandler serves budget endpoints inside a workspace.
type BudgetHandler struct {
	budgetSvc portssvc.BudgetSvcFacade
}

// NewBudgetHandler creates the budget handler.
func NewBudgetHandler(budgetSvc portssvc.BudgetSvcFacade) *BudgetHandler {
	return &BudgetHandler{budgetSvc: budgetSvc}
}

// CreateBudget creates a monthly category budget.
//
// @Summary      Create a budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        request body dto.CreateBudgetRequest true "Budget payload"
// @Success      201 {object} dto.BudgetResponse
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/budgets [post]
func (h *BudgetHandler) CreateBudget(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	budget, err := h.budgetSvc.CreateBudget(c.Request.Context(), c.Param("workspaceID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToBudgetResponse(budget))
}

// ListBudgets returns budgets, optionally filtered by month.
//
// @Summary      List budgets
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        month query string false "Month filter (YYYY-MM)"
// @Success      200 {object} dto.ListBudgetsResponse
// @Router       /workspaces/{workspaceID}/budgets [get]
func (h *BudgetHandler) ListBudgets(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var month *string
	if m := c.Query("month"); m != "" {
		month = &m
	}
	budgets, err := h.budgetSvc.ListBudgets(c.Request.Context(), c.Param("workspaceID"), userID, month)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListBudgetsResponse(budgets))
}

// GetBudget returns one budget.
//
// @Summary      Get a budget
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        budgetID path string true "Budget ID"
// @Success      200 {object} dto.BudgetResponse
// @Failure      404 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/budgets/{budgetID} [get]
func (h *BudgetHandler) GetBudget(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	budget, err := h.budgetSvc.GetBudgetByID(c.Request.Context(), c.Param("workspaceID"), c.Param("budgetID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// UpdateBudget edits a budget's limit.
//
// @Summary      Update a budget
// @Tags         budgets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        budgetID path string true "Budget ID"
// @Param        request body dto.UpdateBudgetRequest true "Budget changes"
// @Success      200 {object} dto.BudgetResponse
// @Failure      404 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/budgets/{budgetID} [patch]
func (h *BudgetHandler) UpdateBudget(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	budget, err := h.budgetSvc.UpdateBudget(c.Request.Context(), c.Param("workspaceID"), c.Param("budgetID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// DeleteBudget removes a budget.
//
// @Summary      Delete a budget
// @Tags         budgets
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        budgetID path string true "Budget ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/budgets/{budgetID} [delete]
func (h *BudgetHandler) DeleteBudget(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.budgetSvc.DeleteBudget(c.Request.Context(), c.Param("workspaceID"), c.Param("budgetID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
