package services

import (
	portsrepo "github.com/pennywise-app/pennywise_backend/internal/core/ports/repositories"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/pkg/config"
)

// NewServiceContainer wires every service over the repository provider.
func NewServiceContainer(repos *portsrepo.RepositoryProvider, cfg *config.Config) *portssvc.ServiceContainer {
	workspaceSvc := NewWorkspaceService(repos.WorkspaceRepository, repos.UserRepository)
	accountSvc := NewAccountService(repos.AccountRepository, workspaceSvc)
	ledgerSvc := NewLedgerService(repos.LedgerRepository, repos.AccountRepository, workspaceSvc, cfg.DBOpTimeout)
	reconciliationSvc := NewReconciliationService(repos.LedgerRepository, repos.AccountRepository, workspaceSvc)
	userSvc := NewUserService(repos.UserRepository)
	authSvc := NewAuthService(userSvc, cfg)
	budgetSvc := NewBudgetService(repos.BudgetRepository, workspaceSvc)
	savingsGoalSvc := NewSavingsGoalService(repos.SavingsGoalRepository, accountSvc, workspaceSvc)

	return &portssvc.ServiceContainer{
		WorkspaceSvc:      workspaceSvc,
		AccountSvc:        accountSvc,
		LedgerSvc:         ledgerSvc,
		ReconciliationSvc: reconciliationSvc,
		UserSvc:           userSvc,
		AuthSvc:           authSvc,
		BudgetSvc:         budgetSvc,
		SavingsGoalSvc:    savingsGoalSvc,
	}
}
