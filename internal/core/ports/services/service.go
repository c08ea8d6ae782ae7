package services

// ServiceContainer holds concrete implementations of every service facade,
// wired once at startup and injected into the handlers.
type ServiceContainer struct {
	WorkspaceSvc      WorkspaceSvcFacade
	AccountSvc        AccountSvcFacade
	LedgerSvc         LedgerSvcFacade
	ReconciliationSvc ReconciliationSvcFacade
	UserSvc           UserSvcFacade
	AuthSvc           AuthSvcFacade
	BudgetSvc         BudgetSvcFacade
	SavingsGoalSvc    SavingsGoalSvcFacade
}
