package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
)

// TransactionHandler serves the ledger endpoints inside a workspace.
type TransactionHandler struct {
	ledgerSvc portssvc.LedgerSvcFacade
}

// NewTransactionHandler creates the transaction handler.
func NewTransactionHandler(ledgerSvc portssvc.LedgerSvcFacade) *TransactionHandler {
	return &TransactionHandler{ledgerSvc: ledgerSvc}
}

// CreateTransaction records an income or expense.
//
// @Summary      Create a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        request body dto.CreateTransactionRequest true "Transaction payload"
// @Success      201 {object} dto.TransactionResponse
// @Failure      400 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	txn, err := h.ledgerSvc.CreateTransaction(c.Request.Context(), c.Param("workspaceID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// CreateTransfer moves money between two accounts.
//
// @Summary      Create a transfer
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        request body dto.CreateTransferRequest true "Transfer payload"
// @Success      201 {object} dto.TransferResponse
// @Failure      400 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/transfers [post]
func (h *TransactionHandler) CreateTransfer(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	transfer, err := h.ledgerSvc.CreateTransfer(c.Request.Context(), c.Param("workspaceID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToTransferResponse(transfer))
}

// BulkCreateTransactions imports a batch of transactions.
//
// @Summary      Bulk create transactions
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        request body dto.BulkCreateTransactionsRequest true "Batch payload"
// @Success      201 {object} dto.BulkCreateTransactionsResponse
// @Failure      400 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/transactions/bulk [post]
func (h *TransactionHandler) BulkCreateTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.BulkCreateTransactionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	txns, err := h.ledgerSvc.BulkCreateTransactions(c.Request.Context(), c.Param("workspaceID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]dto.TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, dto.ToTransactionResponse(&txns[i]))
	}
	c.JSON(http.StatusCreated, dto.BulkCreateTransactionsResponse{Transactions: out})
}

// GetTransaction returns one transaction.
//
// @Summary      Get a transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        transactionID path string true "Transaction ID"
// @Success      200 {object} dto.TransactionResponse
// @Failure      404 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/transactions/{transactionID} [get]
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	txn, err := h.ledgerSvc.GetTransactionByID(c.Request.Context(), c.Param("workspaceID"), c.Param("transactionID"), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// ListTransactions returns a page of an account's transactions.
//
// @Summary      List transactions of an account
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        accountID path string true "Account ID"
// @Param        limit query int false "Page size"
// @Param        nextToken query string false "Pagination cursor"
// @Success      200 {object} dto.ListTransactionsResponse
// @Router       /workspaces/{workspaceID}/accounts/{accountID}/transactions [get]
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	var nextToken *string
	if token := c.Query("nextToken"); token != "" {
		nextToken = &token
	}
	txns, next, err := h.ledgerSvc.ListTransactionsByAccount(c.Request.Context(),
		c.Param("workspaceID"), c.Param("accountID"), userID, limit, nextToken)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, next))
}

// UpdateTransaction edits a transaction.
//
// @Summary      Update a transaction
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        transactionID path string true "Transaction ID"
// @Param        request body dto.UpdateTransactionRequest true "Transaction changes"
// @Success      200 {object} dto.TransactionResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/transactions/{transactionID} [patch]
func (h *TransactionHandler) UpdateTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	txn, err := h.ledgerSvc.UpdateTransaction(c.Request.Context(), c.Param("workspaceID"), c.Param("transactionID"), req, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// DeleteTransaction removes a transaction and reverses its balance effect.
//
// @Summary      Delete a transaction
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        workspaceID path string true "Workspace ID"
// @Param        transactionID path string true "Transaction ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /workspaces/{workspaceID}/transactions/{transactionID} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.ledgerSvc.DeleteTransaction(c.Request.Context(), c.Param("workspaceID"), c.Param("transactionID"), userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
