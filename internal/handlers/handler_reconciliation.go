package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
)

// ReconciliationHandler serves balance verification and repair endpoints.
type ReconciliationHandler struct {
	reconciliationSvc portssvc.ReconciliationSvcFacade
	accountSvc        portssvc.AccountReaderSvc
}

// NewReconciliationHandler creates the reconciliation handler.
func NewReconciliationHandler(reconciliationSvc portssvc.ReconciliationSvcFacade, accountSvc portssvc.AccountReaderSvc) *ReconciliationHandler {
	return &ReconciliationHandler{reconciliationSvc: reconciliationSvc, accountSvc: accountSvc}
}

// CheckBalance recomputes the balance from history without writing.
//
// @Summary      Verify an account balance
// @Tags         reconciliation
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        accountID path string true "Account ID"
// @Success      200 {object} dto.BalanceCheckResponse
// @Failure      404 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/accounts/{accountID}/balance-check [get]
func (h *ReconciliationHandler) CheckBalance(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	workspaceID := c.Param("workspaceID")
	accountID := c.Param("accountID")

	account, err := h.accountSvc.GetAccountByID(c.Request.Context(), workspaceID, accountID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	recomputed, err := h.reconciliationSvc.RecomputeBalance(c.Request.Context(), workspaceID, accountID, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceCheckResponse{
		AccountID:  accountID,
		Stored:     account.Balance,
		Recomputed: recomputed,
		Consistent: account.Balance.Equal(recomputed),
	})
}

// Reconcile recomputes and repairs the stored balance. ADMIN only.
//
// @Summary      Reconcile an account balance
// @Tags         reconciliation
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        accountID path string true "Account ID"
// @Success      200 {object} dto.ReconciliationResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/accounts/{accountID}/reconcile [post]
func (h *ReconciliationHandler) Reconcile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	result, err := h.reconciliationSvc.Reconcile(c.Request.Context(), c.Param("workspaceID"), c.Param("accountID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToReconciliationResponse(result))
}
