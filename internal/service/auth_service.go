package service

import (
	"context"
	"time"

	"github.com/telecel/helpdesk/internal/auth"
	"github.com/telecel/helpdesk/internal/config"
	"github.com/telecel/helpdesk/internal/domain"
	"github.com/telecel/helpdesk/internal/repository"
	apperrors "github.com/telecel/helpdesk/pkg/util"
)

// AuthService handles the login flow.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository) *AuthService {
	return &AuthService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// Login authenticates by username and password and issues a session
// token. Unknown users and wrong passwords are indistinguishable to the
// caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid username or password")
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid username or password")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
