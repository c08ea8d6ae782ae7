package repositories

import (
	"context"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
)

// UserReader defines read operations for user data.
type UserReader interface {
	// FindUserByID retrieves a user by their unique identifier.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email. Used by login.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriter defines write operations for user data.
type UserWriter interface {
	// SaveUser persists a new user. Returns ErrDuplicate when the email is taken.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser persists changes to user profile fields.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserRepositoryFacade combines reader and writer interfaces.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
}
