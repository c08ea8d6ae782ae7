package handlers

import (
	"github.com/gin-gonic/gin"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/middleware"
	"github.com/pennywise-app/pennywise_backend/pkg/config"
)

// RegisterHandlers wires every route group onto the router.
func RegisterHandlers(router *gin.Engine, services *portssvc.ServiceContainer, cfg *config.Config) {
	registerValidations()

	authHandler := NewAuthHandler(services.AuthSvc)
	userHandler := NewUserHandler(services.UserSvc)
	workspaceHandler := NewWorkspaceHandler(services.WorkspaceSvc)
	accountHandler := NewAccountHandler(services.AccountSvc)
	transactionHandler := NewTransactionHandler(services.LedgerSvc)
	budgetHandler := NewBudgetHandler(services.BudgetSvc)
	goalHandler := NewSavingsGoalHandler(services.SavingsGoalSvc)
	reconciliationHandler := NewReconciliationHandler(services.ReconciliationSvc, services.AccountSvc)

	router.GET("/health", HealthHandler)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimitMiddleware(cfg.AuthRateLimit))
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/users/me", userHandler.GetMe)
		authed.PATCH("/users/me", userHandler.UpdateMe)

		authed.POST("/workspaces", workspaceHandler.CreateWorkspace)
		authed.GET("/workspaces", workspaceHandler.ListWorkspaces)

		ws := authed.Group("/workspaces/:workspaceID")
		{
			ws.GET("", workspaceHandler.GetWorkspace)
			ws.DELETE("", workspaceHandler.DeactivateWorkspace)
			ws.POST("/users", workspaceHandler.AddUser)
			ws.DELETE("/users/:userID", workspaceHandler.RemoveUser)

			ws.POST("/accounts", accountHandler.CreateAccount)
			ws.GET("/accounts", accountHandler.ListAccounts)
			ws.GET("/accounts/:accountID", accountHandler.GetAccount)
			ws.PATCH("/accounts/:accountID", accountHandler.UpdateAccount)
			ws.DELETE("/accounts/:accountID", accountHandler.DeactivateAccount)

			ws.POST("/transactions", transactionHandler.CreateTransaction)
			ws.POST("/transactions/bulk", transactionHandler.BulkCreateTransactions)
			ws.POST("/transfers", transactionHandler.CreateTransfer)
			ws.GET("/transactions/:transactionID", transactionHandler.GetTransaction)
			ws.PATCH("/transactions/:transactionID", transactionHandler.UpdateTransaction)
			ws.DELETE("/transactions/:transactionID", transactionHandler.DeleteTransaction)
			ws.GET("/accounts/:accountID/transactions", transactionHandler.ListTransactions)

			ws.GET("/accounts/:accountID/balance-check", reconciliationHandler.CheckBalance)
			ws.POST("/accounts/:accountID/reconcile", reconciliationHandler.Reconcile)

			ws.POST("/budgets", budgetHandler.CreateBudget)
			ws.GET("/budgets", budgetHandler.ListBudgets)
			ws.GET("/budgets/:budgetID", budgetHandler.GetBudget)
			ws.PATCH("/budgets/:budgetID", budgetHandler.UpdateBudget)
			ws.DELETE("/budgets/:budgetID", budgetHandler.DeleteBudget)

			ws.POST("/goals", goalHandler.CreateGoal)
			ws.GET("/goals", goalHandler.ListGoals)
			ws.GET("/goals/:goalID", goalHandler.GetGoal)
			ws.PATCH("/goals/:goalID", goalHandler.UpdateGoal)
			ws.DELETE("/goals/:goalID", goalHandler.DeleteGoal)
		}
	}
}
