package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
)

// AccountHandler serves account endpoints inside a workspace.
type AccountHandler struct {
	accountSvc portssvc.AccountSvcFacade
}

// NewAccountHandler creates the account handler.
func NewAccountHandler(accountSvc portssvc.AccountSvcFacade) *AccountHandler {
	return &AccountHandler{accountSvc: accountSvc}
}

// CreateAccount creates an account in the workspace.
//
// @Summary      Create an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        request body dto.CreateAccountRequest true "Account payload"
// @Success      201 {object} dto.AccountResponse
// @Failure      400 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/accounts [post]
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	account, err := h.accountSvc.CreateAccount(c.Request.Context(), c.Param("workspaceID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// ListAccounts returns the workspace's accounts.
//
// @Summary      List accounts
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        limit query int false "Page size"
// @Param        offset query int false "Page offset"
// @Success      200 {object} dto.ListAccountsResponse
// @Router       /workspaces/{workspaceID}/accounts [get]
func (h *AccountHandler) ListAccounts(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	accounts, err := h.accountSvc.ListAccounts(c.Request.Context(), c.Param("workspaceID"), userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountsResponse(accounts))
}

// GetAccount returns one account with its cached balance.
//
// @Summary      Get an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        accountID path string true "Account ID"
// @Success      200 {object} dto.AccountResponse
// @Failure      404 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/accounts/{accountID} [get]
func (h *AccountHandler) GetAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	account, err := h.accountSvc.GetAccountByID(c.Request.Context(), c.Param("workspaceID"), c.Param("accountID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// UpdateAccount edits account metadata.
//
// @Summary      Update an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        accountID path string true "Account ID"
// @Param        request body dto.UpdateAccountRequest true "Account changes"
// @Success      200 {object} dto.AccountResponse
// @Failure      404 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/accounts/{accountID} [patch]
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	account, err := h.accountSvc.UpdateAccount(c.Request.Context(), c.Param("workspaceID"), c.Param("accountID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// DeactivateAccount marks an account inactive, keeping its history.
//
// @Summary      Deactivate an account
// @Tags         accounts
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        accountID path string true "Account ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/accounts/{accountID} [delete]
func (h *AccountHandler) DeactivateAccount(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.accountSvc.DeactivateAccount(c.Request.Context(), c.Param("workspaceID"), c.Param("accountID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
