package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	portsrepo "github.com/pennywise-app/pennywise_backend/internal/core/ports/repositories"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
	"github.com/pennywise-app/pennywise_backend/internal/middleware"
)

type accountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	workspaceSvc portssvc.WorkspaceAuthorizerSvc
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// NewAccountService creates the account service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, workspaceSvc portssvc.WorkspaceAuthorizerSvc) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, workspaceSvc: workspaceSvc}
}

// getOwnedAccount loads an account and hides accounts of other workspaces
// behind ErrNotFound.
func (s *accountService) getOwnedAccount(ctx context.Context, workspaceID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.WorkspaceID != workspaceID {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("account with ID %s not found", accountID))
	}
	return account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, workspaceID, accountID string, userID string) (*domain.Account, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	return s.getOwnedAccount(ctx, workspaceID, accountID)
}

func (s *accountService) ListAccounts(ctx context.Context, workspaceID string, userID string, limit, offset int) ([]domain.Account, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleReadOnly); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return s.accountRepo.ListAccounts(ctx, workspaceID, limit, offset)
}

func (s *accountService) CreateAccount(ctx context.Context, workspaceID string, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, creatorUserID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		AccountID:      uuid.NewString(),
		WorkspaceID:    workspaceID,
		Name:           req.Name,
		AccountType:    req.AccountType,
		CurrencyCode:   req.CurrencyCode,
		Description:    req.Description,
		IsActive:       true,
		Balance:        req.InitialBalance,
		InitialBalance: req.InitialBalance,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		return nil, err
	}
	logger.Info("account created", "accountID", account.AccountID, "workspaceID", workspaceID)
	return &account, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, workspaceID, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return nil, err
	}
	account, err := s.getOwnedAccount(ctx, workspaceID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountType != nil {
		account.AccountType = *req.AccountType
	}
	if req.Description != nil {
		account.Description = *req.Description
	}
	account.LastUpdatedAt = time.Now()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) DeactivateAccount(ctx context.Context, workspaceID, accountID string, userID string) error {
	if err := s.workspaceSvc.AuthorizeUserAction(ctx, userID, workspaceID, domain.RoleMember); err != nil {
		return err
	}
	if _, err := s.getOwnedAccount(ctx, workspaceID, accountID); err != nil {
		return err
	}
	return s.accountRepo.DeactivateAccount(ctx, accountID, userID, time.Now())
}
