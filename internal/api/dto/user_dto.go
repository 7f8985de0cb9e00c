package dto

import (
	"time"

	"github.com/telecel/helpdesk/internal/domain"
)

// The wire uses browser-native camelCase names mapped from the storage
// layer's snake_case columns (user_id -> userId and so on). The browser
// client depends on these exact shapes.

// LoginRequest payload for POST /api/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned on successful login.
type LoginResponse struct {
	Success   bool         `json:"success"`
	User      UserResponse `json:"user"`
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
}

// LoginFailure is returned with a 401.
type LoginFailure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateUserRequest payload for POST /api/users.
type CreateUserRequest struct {
	Username   string          `json:"username"`
	FullName   string          `json:"fullName"`
	Department string          `json:"department"`
	Email      string          `json:"email"`
	Role       domain.UserRole `json:"role"`
	Password   string          `json:"password"`
}

// ChangePasswordRequest payload for PUT /api/users/:id/password.
type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// ResetPasswordResponse carries the one-time temporary credential.
type ResetPasswordResponse struct {
	TempPassword string `json:"tempPassword"`
}

// UserResponse is the public account shape; credential fields excluded.
type UserResponse struct {
	ID         string          `json:"id"`
	Username   string          `json:"username"`
	FullName   string          `json:"fullName"`
	Department string          `json:"department"`
	Email      string          `json:"email"`
	Role       domain.UserRole `json:"role"`
	CompanyID  *string         `json:"companyId,omitempty"`
}

// NewUserResponse maps a domain user onto the wire.
func NewUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Username:   user.Username,
		FullName:   user.FullName,
		Department: user.Department,
		Email:      user.Email,
		Role:       user.Role,
		CompanyID:  user.CompanyID,
	}
}
