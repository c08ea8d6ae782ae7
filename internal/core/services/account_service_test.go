package services

import (
	"context"
	"testing"

	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountServiceTestSuite struct {
	suite.Suite
	accountRepo *MockAccountRepository
	authorizer  *MockWorkspaceAuthorizer
	svc         portssvc.AccountSvcFacade
}

func (s *AccountServiceTestSuite) SetupTest() {
	s.accountRepo = new(MockAccountRepository)
	s.authorizer = new(MockWorkspaceAuthorizer)
	s.svc = NewAccountService(s.accountRepo, s.authorizer)
}

func (s *AccountServiceTestSuite) TestCreateSeedsBalanceFromInitialBalance() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleMember).Return(nil)
	s.accountRepo.On("SaveAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Balance.Equal(dec(500)) && a.InitialBalance.Equal(dec(500)) && a.IsActive
	})).Return(nil)

	account, err := s.svc.CreateAccount(context.Background(), testWorkspaceID, dto.CreateAccountRequest{
		Name:           "Savings",
		AccountType:    domain.AccountTypeSavings,
		CurrencyCode:   "EUR",
		InitialBalance: dec(500),
	}, testUserID)

	s.Require().NoError(err)
	s.NotEmpty(account.AccountID)
	s.Equal(testWorkspaceID, account.WorkspaceID)
	s.accountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestGetHidesAccountFromOtherWorkspace() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleReadOnly).Return(nil)
	foreign := testAccount(testAccountID)
	foreign.WorkspaceID = "ws-other"
	s.accountRepo.On("FindAccountByID", mock.Anything, testAccountID).Return(foreign, nil)

	_, err := s.svc.GetAccountByID(context.Background(), testWorkspaceID, testAccountID, testUserID)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *AccountServiceTestSuite) TestUpdateNeverTouchesBalanceColumns() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleMember).Return(nil)
	stored := testAccount(testAccountID)
	stored.Balance = dec(1234)
	s.accountRepo.On("FindAccountByID", mock.Anything, testAccountID).Return(stored, nil)
	s.accountRepo.On("UpdateAccount", mock.Anything, mock.MatchedBy(func(a domain.Account) bool {
		return a.Name == "Renamed" && a.Balance.Equal(dec(1234))
	})).Return(nil)

	name := "Renamed"
	account, err := s.svc.UpdateAccount(context.Background(), testWorkspaceID, testAccountID,
		dto.UpdateAccountRequest{Name: &name}, testUserID)

	s.Require().NoError(err)
	s.Equal("Renamed", account.Name)
	s.accountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestDeactivateChecksOwnershipFirst() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleMember).Return(nil)
	s.accountRepo.On("FindAccountByID", mock.Anything, testAccountID).
		Return(nil, apperrors.NewNotFoundError("account not found"))

	err := s.svc.DeactivateAccount(context.Background(), testWorkspaceID, testAccountID, testUserID)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.accountRepo.AssertNotCalled(s.T(), "DeactivateAccount",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *AccountServiceTestSuite) TestListClampsOversizedLimit() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleReadOnly).Return(nil)
	s.accountRepo.On("ListAccounts", mock.Anything, testWorkspaceID, 100, 0).
		Return([]domain.Account{*testAccount(testAccountID)}, nil)

	accounts, err := s.svc.ListAccounts(context.Background(), testWorkspaceID, testUserID, 5000, -3)

	s.Require().NoError(err)
	s.Len(accounts, 1)
	s.accountRepo.AssertExpectations(s.T())
}

func (s *AccountServiceTestSuite) TestReadOnlyMemberCannotCreate() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleMember).
		Return(apperrors.ErrForbidden)

	_, err := s.svc.CreateAccount(context.Background(), testWorkspaceID, dto.CreateAccountRequest{
		Name:         "Cash",
		AccountType:  domain.AccountTypeCash,
		CurrencyCode: "EUR",
	}, testUserID)

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.accountRepo.AssertNotCalled(s.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
