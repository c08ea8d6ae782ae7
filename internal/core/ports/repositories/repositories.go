package repositories

// RepositoryProvider holds concrete implementations of every repository facade.
// Wired once at startup and handed to the service container.
type RepositoryProvider struct {
	LedgerRepository      LedgerRepositoryFacade
	AccountRepository     AccountRepositoryFacade
	WorkspaceRepository   WorkspaceRepositoryFacade
	UserRepository        UserRepositoryFacade
	BudgetRepository      BudgetRepositoryFacade
	SavingsGoalRepository SavingsGoalRepositoryFacade
}
