package dto

import (
	"time"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the payload for creating an account.
type CreateAccountRequest struct {
	Name           string             `json:"name" binding:"required,min=1,max=100"`
	AccountType    domain.AccountType `json:"accountType" binding:"required,oneof=CHECKING SAVINGS CASH CREDIT_CARD INVESTMENT OTHER"`
	CurrencyCode   string             `json:"currencyCode" binding:"required,len=3"`
	Description    string             `json:"description" binding:"max=255"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
}

// UpdateAccountRequest defines the payload for updating account metadata.
// Balance fields are intentionally absent; balances only move through the
// ledger and reconciliation.
type UpdateAccountRequest struct {
	Name        *string             `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	AccountType *domain.AccountType `json:"accountType,omitempty" binding:"omitempty,oneof=CHECKING SAVINGS CASH CREDIT_CARD INVESTMENT OTHER"`
	Description *string             `json:"description,omitempty" binding:"omitempty,max=255"`
}

// AccountResponse defines the API representation of an account.
type AccountResponse struct {
	AccountID      string             `json:"accountId"`
	WorkspaceID    string             `json:"workspaceId"`
	Name           string             `json:"name"`
	AccountType    domain.AccountType `json:"accountType"`
	CurrencyCode   string             `json:"currencyCode"`
	Description    string             `json:"description,omitempty"`
	Balance        decimal.Decimal    `json:"balance"`
	InitialBalance decimal.Decimal    `json:"initialBalance"`
	IsActive       bool               `json:"isActive"`
	CreatedAt      time.Time          `json:"createdAt"`
	LastUpdatedAt  time.Time          `json:"lastUpdatedAt"`
}

// ToAccountResponse maps a domain account to its API representation.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:      a.AccountID,
		WorkspaceID:    a.WorkspaceID,
		Name:           a.Name,
		AccountType:    a.AccountType,
		CurrencyCode:   a.CurrencyCode,
		Description:    a.Description,
		Balance:        a.Balance,
		InitialBalance: a.InitialBalance,
		IsActive:       a.IsActive,
		CreatedAt:      a.CreatedAt,
		LastUpdatedAt:  a.LastUpdatedAt,
	}
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ToListAccountsResponse maps a slice of domain accounts.
func ToListAccountsResponse(accounts []domain.Account) ListAccountsResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		out = append(out, ToAccountResponse(&accounts[i]))
	}
	return ListAccountsResponse{Accounts: out}
}
