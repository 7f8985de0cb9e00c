package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/telecel/helpdesk/internal/api/dto"
	"github.com/telecel/helpdesk/internal/service"
	apperrors "github.com/telecel/helpdesk/pkg/util"
)

// AuthHandler exposes the login endpoint.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /api/login. Failures keep the browser client's
// {success:false, message} body rather than the generic error envelope.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username and password required", nil)
	}

	user, token, exp, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		var domainErr *apperrors.DomainError
		if errors.As(err, &domainErr) && domainErr.HTTPStatus == http.StatusUnauthorized {
			return c.Status(http.StatusUnauthorized).JSON(dto.LoginFailure{
				Success: false,
				Message: domainErr.Message,
			})
		}
		return err
	}

	return c.JSON(dto.LoginResponse{
		Success:   true,
		User:      dto.NewUserResponse(user),
		Token:     token,
		ExpiresAt: exp,
	})
}
