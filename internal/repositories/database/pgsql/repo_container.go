package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/pennywise-app/pennywise_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all Postgres repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) *portsrepo.RepositoryProvider {
	return &portsrepo.RepositoryProvider{
		LedgerRepository:      NewPgxLedgerRepository(pool),
		AccountRepository:     NewPgxAccountRepository(pool),
		WorkspaceRepository:   NewPgxWorkspaceRepository(pool),
		UserRepository:        NewPgxUserRepository(pool),
		BudgetRepository:      NewPgxBudgetRepository(pool),
		SavingsGoalRepository: NewPgxSavingsGoalRepository(pool),
	}
}
