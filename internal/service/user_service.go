package service

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/telecel/helpdesk/internal/auth"
	"github.com/telecel/helpdesk/internal/domain"
	"github.com/telecel/helpdesk/internal/repository"
	apperrors "github.com/telecel/helpdesk/pkg/util"
)

// UserService coordinates employee account management.
type UserService struct {
	users      repository.UserRepository
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(users repository.UserRepository, bcryptCost int) *UserService {
	return &UserService{users: users, bcryptCost: bcryptCost}
}

// CreateUserInput describes a new account.
type CreateUserInput struct {
	Username   string
	FullName   string
	Department string
	Email      string
	Role       domain.UserRole
	Password   string
}

// ListUsers returns all accounts. Credential material is never loaded by
// the repository's list query.
func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

// CreateUser registers a new account with a generated 6-digit ID and
// badge code. A username collision fails without mutating state.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || strings.TrimSpace(input.FullName) == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("username, fullName, password required", nil)
	}
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": string(input.Role)})
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, apperrors.NewDuplicate("username already taken", map[string]any{"username": username})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	id := newAccountID()
	code := companyCode(id)
	user := &domain.User{
		ID:           id,
		Username:     username,
		FullName:     strings.TrimSpace(input.FullName),
		Department:   strings.TrimSpace(input.Department),
		Email:        strings.TrimSpace(input.Email),
		Role:         role,
		CompanyID:    &code,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) {
			return nil, apperrors.NewDuplicate("username already taken", map[string]any{"username": username})
		}
		return nil, err
	}
	return user, nil
}

// ResetPassword overwrites the stored credential with a random temporary
// one and returns the plaintext. It cannot be retrieved again.
func (s *UserService) ResetPassword(ctx context.Context, userID string) (string, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return "", err
	}

	temp := newTempPassword()
	hash, err := auth.HashPassword(temp, s.bcryptCost)
	if err != nil {
		return "", err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		return "", err
	}
	return temp, nil
}

// ChangePassword overwrites the stored credential. Confirmation matching
// and length rules are the consuming client's responsibility.
func (s *UserService) ChangePassword(ctx context.Context, userID, newPassword string) error {
	if newPassword == "" {
		return apperrors.NewValidationError("newPassword required", nil)
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, userID, hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return err
	}
	return nil
}

// DeleteUser removes the account. Tickets filed by the user are left in
// place with a dangling owner reference.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": userID})
		}
		return err
	}
	return nil
}
