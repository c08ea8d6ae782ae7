package services

import (
	"context"

	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
)

// AuthSvcFacade defines registration and password login.
type AuthSvcFacade interface {
	// Register creates a user account. Returns ErrDuplicate when the email is
	// already registered.
	Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// Login verifies credentials and issues a signed JWT. Returns
	// ErrUnauthorized for a bad email or password without distinguishing which.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
