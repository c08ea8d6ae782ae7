package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/pennywise-app/pennywise_backend/internal/apperrors"
	"github.com/pennywise-app/pennywise_backend/internal/core/domain"
	portssvc "github.com/pennywise-app/pennywise_backend/internal/core/ports/services"
	"github.com/pennywise-app/pennywise_backend/internal/dto"
	"github.com/pennywise-app/pennywise_backend/internal/middleware"
	"github.com/pennywise-app/pennywise_backend/internal/utils"
	"github.com/pennywise-app/pennywise_backend/pkg/config"
)

type authService struct {
	userSvc portssvc.UserSvcFacade
	cfg     *config.Config
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

// NewAuthService creates the auth service.
func NewAuthService(userSvc portssvc.UserSvcFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{userSvc: userSvc, cfg: cfg}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	user, err := s.userSvc.CreateUser(ctx, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email is already registered", apperrors.ErrDuplicate)
		}
		return nil, err
	}
	logger.Info("user registered", "userID", user.UserID)
	return user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	user, err := s.userSvc.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a wrong password so the response does not reveal
			// which emails are registered.
			return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		logger.Warn("failed login attempt", "userID", user.UserID)
		return nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)
	}

	token, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiry, s.cfg.JWTIssuer)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to sign token", err)
	}

	return &dto.LoginResponse{Token: token, User: dto.ToUserResponse(user)}, nil
}
