package dto

import (
	"time"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the payload for recording a single
// income or expense. Transfers use CreateTransferRequest instead.
type CreateTransactionRequest struct {
	AccountID       string                 `json:"accountId" binding:"required"`
	Type            domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount          decimal.Decimal        `json:"amount" binding:"required,gt=0"`
	CurrencyCode    string                 `json:"currencyCode" binding:"omitempty,len=3"`
	Category        string                 `json:"category" binding:"max=100"`
	Description     string                 `json:"description" binding:"max=255"`
	TransactionDate time.Time              `json:"transactionDate" binding:"required"`
}

// UpdateTransactionRequest defines the payload for editing a transaction.
// All fields are optional; absent fields keep their current values.
type UpdateTransactionRequest struct {
	AccountID       *string                 `json:"accountId,omitempty"`
	Type            *domain.TransactionType `json:"type,omitempty" binding:"omitempty,oneof=INCOME EXPENSE"`
	Amount          *decimal.Decimal        `json:"amount,omitempty" binding:"omitempty,gt=0"`
	Category        *string                 `json:"category,omitempty" binding:"omitempty,max=100"`
	Description     *string                 `json:"description,omitempty" binding:"omitempty,max=255"`
	TransactionDate *time.Time              `json:"transactionDate,omitempty"`
}

// BulkCreateTransactionsRequest defines the payload for importing a batch of
// transactions in one call.
type BulkCreateTransactionsRequest struct {
	Transactions []CreateTransactionRequest `json:"transactions" binding:"required,min=1,max=500,dive"`
}

// CreateTransferRequest defines the payload for moving money between two
// accounts in the same workspace.
type CreateTransferRequest struct {
	FromAccountID   string          `json:"fromAccountId" binding:"required"`
	ToAccountID     string          `json:"toAccountId" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required,gt=0"`
	Category        string          `json:"category" binding:"max=100"`
	Description     string          `json:"description" binding:"max=255"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
}

// TransactionResponse defines the API representation of a transaction.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionId"`
	WorkspaceID     string                 `json:"workspaceId"`
	AccountID       string                 `json:"accountId"`
	Type            domain.TransactionType `json:"type"`
	Amount          decimal.Decimal        `json:"amount"`
	CurrencyCode    string                 `json:"currencyCode"`
	Category        string                 `json:"category,omitempty"`
	Description     string                 `json:"description,omitempty"`
	TransactionDate time.Time              `json:"transactionDate"`
	TransferID      *string                `json:"transferId,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	LastUpdatedAt   time.Time              `json:"lastUpdatedAt"`
}

// ToTransactionResponse maps a domain transaction to its API representation.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		WorkspaceID:     t.WorkspaceID,
		AccountID:       t.AccountID,
		Type:            t.Type,
		Amount:          t.Amount,
		CurrencyCode:    t.CurrencyCode,
		Category:        t.Category,
		Description:     t.Description,
		TransactionDate: t.TransactionDate,
		TransferID:      t.TransferID,
		CreatedAt:       t.CreatedAt,
		LastUpdatedAt:   t.LastUpdatedAt,
	}
}

// ListTransactionsResponse wraps a page of transactions with a cursor token.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToListTransactionsResponse maps a page of domain transactions.
func ToListTransactionsResponse(txns []domain.Transaction, nextToken *string) ListTransactionsResponse {
	out := make([]TransactionResponse, 0, len(txns))
	for i := range txns {
		out = append(out, ToTransactionResponse(&txns[i]))
	}
	return ListTransactionsResponse{Transactions: out, NextToken: nextToken}
}

// BulkCreateTransactionsResponse wraps the transactions created by an import.
type BulkCreateTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// TransferResponse returns both legs of a newly created transfer.
type TransferResponse struct {
	TransferID string              `json:"transferId"`
	Outgoing   TransactionResponse `json:"outgoing"`
	Incoming   TransactionResponse `json:"incoming"`
}

// ToTransferResponse maps a domain transfer pair.
func ToTransferResponse(t *domain.Transfer) TransferResponse {
	return TransferResponse{
		TransferID: t.TransferID,
		Outgoing:   ToTransactionResponse(&t.Outgoing),
		Incoming:   ToTransactionResponse(&t.Incoming),
	}
}
