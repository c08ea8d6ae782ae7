package services

import (
	"context"
	"testing"
	"time"

	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ReconciliationServiceTestSuite struct {
	suite.Suite
	ledgerRepo  *MockLedgerRepository
	accountRepo *MockAccountRepository
	authorizer  *MockWorkspaceAuthorizer
	svc         portssvc.ReconciliationSvcFacade
}

func (s *ReconciliationServiceTestSuite) SetupTest() {
	s.ledgerRepo = new(MockLedgerRepository)
	s.accountRepo = new(MockAccountRepository)
	s.authorizer = new(MockWorkspaceAuthorizer)
	s.svc = NewReconciliationService(s.ledgerRepo, s.accountRepo, s.authorizer)
}

func (s *ReconciliationServiceTestSuite) storedAccount(balance, initial decimal.Decimal) *domain.Account {
	account := testAccount(testAccountID)
	account.Balance = balance
	account.InitialBalance = initial
	return account
}

func historyTxn(txnType domain.TransactionType, amount decimal.Decimal) domain.Transaction {
	return domain.Transaction{
		TransactionID:   "txn-" + string(txnType),
		WorkspaceID:     testWorkspaceID,
		AccountID:       testAccountID,
		Type:            txnType,
		Amount:          amount,
		TransactionDate: time.Now(),
		Version:         1,
	}
}

func (s *ReconciliationServiceTestSuite) TestRecomputeSumsInitialBalanceAndDeltas() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleReadOnly).Return(nil)
	s.accountRepo.On("FindAccountByID", mock.Anything, testAccountID).
		Return(s.storedAccount(dec(999), dec(100)), nil)
	s.ledgerRepo.On("FindAllTransactionsByAccountID", mock.Anything, testAccountID).
		Return([]domain.Transaction{
			historyTxn(domain.TypeIncome, dec(250)),
			historyTxn(domain.TypeExpense, dec(80)),
		}, nil)

	recomputed, err := s.svc.RecomputeBalance(context.Background(), testWorkspaceID, testAccountID, testUserID)

	s.Require().NoError(err)
	s.True(recomputed.Equal(dec(270)), "got %s", recomputed)
}

func (s *ReconciliationServiceTestSuite) TestRecomputeHidesForeignAccount() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleReadOnly).Return(nil)
	foreign := s.storedAccount(dec(10), dec(10))
	foreign.WorkspaceID = "ws-other"
	s.accountRepo.On("FindAccountByID", mock.Anything, testAccountID).Return(foreign, nil)

	_, err := s.svc.RecomputeBalance(context.Background(), testWorkspaceID, testAccountID, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrNotFound)
	s.ledgerRepo.AssertNotCalled(s.T(), "FindAllTransactionsByAccountID", mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestReconcileRequiresAdmin() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleAdmin).
		Return(apperrors.ErrForbidden)

	_, err := s.svc.Reconcile(context.Background(), testWorkspaceID, testAccountID, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrForbidden)
	s.accountRepo.AssertNotCalled(s.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestReconcileWithoutDriftWritesNothing() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleAdmin).Return(nil)
	s.accountRepo.On("FindAccountByID", mock.Anything, testAccountID).
		Return(s.storedAccount(dec(170), dec(100)), nil)
	s.ledgerRepo.On("FindAllTransactionsByAccountID", mock.Anything, testAccountID).
		Return([]domain.Transaction{historyTxn(domain.TypeIncome, dec(70))}, nil)

	result, err := s.svc.Reconcile(context.Background(), testWorkspaceID, testAccountID, testUserID)

	s.Require().NoError(err)
	s.False(result.Corrected)
	s.True(result.Previous.Equal(dec(170)))
	s.True(result.Recomputed.Equal(dec(170)))
	s.ledgerRepo.AssertNotCalled(s.T(), "ReplaceAccountBalance",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestReconcileRepairsDriftedBalance() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleAdmin).Return(nil)
	s.accountRepo.On("FindAccountByID", mock.Anything, testAccountID).
		Return(s.storedAccount(dec(155), dec(100)), nil)
	s.ledgerRepo.On("FindAllTransactionsByAccountID", mock.Anything, testAccountID).
		Return([]domain.Transaction{historyTxn(domain.TypeIncome, dec(70))}, nil)
	s.ledgerRepo.On("ReplaceAccountBalance",
		mock.Anything, testAccountID, decEq(dec(155)), decEq(dec(170)), testUserID, mock.Anything).
		Return(nil)

	result, err := s.svc.Reconcile(context.Background(), testWorkspaceID, testAccountID, testUserID)

	s.Require().NoError(err)
	s.True(result.Corrected)
	s.True(result.Previous.Equal(dec(155)))
	s.True(result.Recomputed.Equal(dec(170)))
	s.ledgerRepo.AssertExpectations(s.T())
}

func (s *ReconciliationServiceTestSuite) TestReconcileSurfacesRacingMutation() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleAdmin).Return(nil)
	s.accountRepo.On("FindAccountByID", mock.Anything, testAccountID).
		Return(s.storedAccount(dec(155), dec(100)), nil)
	s.ledgerRepo.On("FindAllTransactionsByAccountID", mock.Anything, testAccountID).
		Return([]domain.Transaction{historyTxn(domain.TypeIncome, dec(70))}, nil)
	s.ledgerRepo.On("ReplaceAccountBalance",
		mock.Anything, testAccountID, mock.Anything, mock.Anything, testUserID, mock.Anything).
		Return(apperrors.ErrConflict)

	_, err := s.svc.Reconcile(context.Background(), testWorkspaceID, testAccountID, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrConflict)
}

func (s *ReconciliationServiceTestSuite) TestCorruptedHistoryReportsConsistencyFailure() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleAdmin).Return(nil)
	s.accountRepo.On("FindAccountByID", mock.Anything, testAccountID).
		Return(s.storedAccount(dec(100), dec(100)), nil)
	s.ledgerRepo.On("FindAllTransactionsByAccountID", mock.Anything, testAccountID).
		Return([]domain.Transaction{historyTxn(domain.TypeTransfer, dec(10))}, nil)

	_, err := s.svc.Reconcile(context.Background(), testWorkspaceID, testAccountID, testUserID)

	s.Require().ErrorIs(err, apperrors.ErrConsistency)
	s.ledgerRepo.AssertNotCalled(s.T(), "ReplaceAccountBalance",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *ReconciliationServiceTestSuite) TestReconcileAfterRepairIsIdempotent() {
	store := newMemoryLedgerStore(*testAccount(testAccountID))
	authorizer := new(MockWorkspaceAuthorizer)
	authorizer.On("AuthorizeUserAction", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
	svc := NewReconciliationService(store, store, authorizer)
	ctx := context.Background()

	// Seed history and then corrupt the cached balance behind the service's back.
	s.Require().NoError(store.InsertTransaction(ctx, historyTxn(domain.TypeIncome, dec(300))))
	_, err := store.AdjustAccountBalance(ctx, testAccountID, dec(123), testUserID, time.Now())
	s.Require().NoError(err)

	first, err := svc.Reconcile(ctx, testWorkspaceID, testAccountID, testUserID)
	s.Require().NoError(err)
	s.True(first.Corrected)
	s.True(first.Recomputed.Equal(dec(300)))

	second, err := svc.Reconcile(ctx, testWorkspaceID, testAccountID, testUserID)
	s.Require().NoError(err)
	s.False(second.Corrected)
	s.True(second.Previous.Equal(dec(300)))
}

func TestReconciliationServiceSuite(t *testing.T) {
	suite.Run(t, new(ReconciliationServiceTestSuite))
}
