package services

import (
	"context"
	"testing"

	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockBudgetRepository implements the budget repository facade.
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	args := m.Called(ctx, budgetID)
	budget, _ := args.Get(0).(*domain.Budget)
	return budget, args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByWorkspace(ctx context.Context, workspaceID string, month *string) ([]domain.Budget, error) {
	args := m.Called(ctx, workspaceID, month)
	budgets, _ := args.Get(0).([]domain.Budget)
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	return m.Called(ctx, budget).Error(0)
}

func (m *MockBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	return m.Called(ctx, budget).Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	return m.Called(ctx, budgetID).Error(0)
}

type BudgetServiceTestSuite struct {
	suite.Suite
	budgetRepo *MockBudgetRepository
	authorizer *MockWorkspaceAuthorizer
	svc        *budgetService
}

func (s *BudgetServiceTestSuite) SetupTest() {
	s.budgetRepo = new(MockBudgetRepository)
	s.authorizer = new(MockWorkspaceAuthorizer)
	s.svc = NewBudgetService(s.budgetRepo, s.authorizer).(*budgetService)
}

func (s *BudgetServiceTestSuite) storedBudget() *domain.Budget {
	return &domain.Budget{
		BudgetID:     "budget-1",
		WorkspaceID:  testWorkspaceID,
		Category:     "groceries",
		AmountLimit:  dec(400),
		CurrencyCode: "EUR",
		Month:        "2026-08",
	}
}

func (s *BudgetServiceTestSuite) TestCreateStampsIDAndAudit() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleMember).Return(nil)
	s.budgetRepo.On("SaveBudget", mock.Anything, mock.MatchedBy(func(b domain.Budget) bool {
		return b.BudgetID != "" && b.WorkspaceID == testWorkspaceID &&
			b.Month == "2026-08" && b.CreatedBy == testUserID
	})).Return(nil)

	budget, err := s.svc.CreateBudget(context.Background(), testWorkspaceID, dto.CreateBudgetRequest{
		Category:     "groceries",
		AmountLimit:  dec(400),
		CurrencyCode: "EUR",
		Month:        "2026-08",
	}, testUserID)

	s.Require().NoError(err)
	s.NotEmpty(budget.BudgetID)
	s.budgetRepo.AssertExpectations(s.T())
}

func (s *BudgetServiceTestSuite) TestCreateRejectsMalformedMonth() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleMember).Return(nil)

	_, err := s.svc.CreateBudget(context.Background(), testWorkspaceID, dto.CreateBudgetRequest{
		Category:     "groceries",
		AmountLimit:  dec(400),
		CurrencyCode: "EUR",
		Month:        "August 2026",
	}, testUserID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.budgetRepo.AssertNotCalled(s.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (s *BudgetServiceTestSuite) TestCreateTranslatesDuplicateMonthCategory() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleMember).Return(nil)
	s.budgetRepo.On("SaveBudget", mock.Anything, mock.Anything).Return(apperrors.ErrDuplicate)

	_, err := s.svc.CreateBudget(context.Background(), testWorkspaceID, dto.CreateBudgetRequest{
		Category:     "groceries",
		AmountLimit:  dec(400),
		CurrencyCode: "EUR",
		Month:        "2026-08",
	}, testUserID)

	s.ErrorIs(err, apperrors.ErrDuplicate)
}

func (s *BudgetServiceTestSuite) TestGetHidesBudgetFromOtherWorkspace() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleReadOnly).Return(nil)
	foreign := s.storedBudget()
	foreign.WorkspaceID = "ws-other"
	s.budgetRepo.On("FindBudgetByID", mock.Anything, "budget-1").Return(foreign, nil)

	_, err := s.svc.GetBudgetByID(context.Background(), testWorkspaceID, "budget-1", testUserID)

	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *BudgetServiceTestSuite) TestUpdateRejectsNonPositiveLimit() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleMember).Return(nil)
	s.budgetRepo.On("FindBudgetByID", mock.Anything, "budget-1").Return(s.storedBudget(), nil)

	zero := decimal.Zero
	_, err := s.svc.UpdateBudget(context.Background(), testWorkspaceID, "budget-1",
		dto.UpdateBudgetRequest{AmountLimit: &zero}, testUserID)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.budgetRepo.AssertNotCalled(s.T(), "UpdateBudget", mock.Anything, mock.Anything)
}

func (s *BudgetServiceTestSuite) TestDeleteChecksOwnershipBeforeDeleting() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleMember).Return(nil)
	s.budgetRepo.On("FindBudgetByID", mock.Anything, "budget-1").Return(s.storedBudget(), nil)
	s.budgetRepo.On("DeleteBudget", mock.Anything, "budget-1").Return(nil)

	err := s.svc.DeleteBudget(context.Background(), testWorkspaceID, "budget-1", testUserID)

	s.Require().NoError(err)
	s.budgetRepo.AssertExpectations(s.T())
}

func (s *BudgetServiceTestSuite) TestReadOnlyMemberCannotCreate() {
	s.authorizer.On("AuthorizeUserAction", mock.Anything, testUserID, testWorkspaceID, domain.RoleMember).
		Return(apperrors.ErrForbidden)

	_, err := s.svc.CreateBudget(context.Background(), testWorkspaceID, dto.CreateBudgetRequest{
		Category:     "groceries",
		AmountLimit:  dec(400),
		CurrencyCode: "EUR",
		Month:        "2026-08",
	}, testUserID)

	s.ErrorIs(err, apperrors.ErrForbidden)
	s.budgetRepo.AssertNotCalled(s.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
