package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/telecel/helpdesk/internal/api/dto"
	"github.com/telecel/helpdesk/internal/service"
	apperrors "github.com/telecel/helpdesk/pkg/util"
)

// UsersHandler exposes employee account endpoints.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// List handles GET /api/users. Credential fields are never present.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users, err := h.users.ListUsers(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		items = append(items, dto.NewUserResponse(&users[i]))
	}
	return c.JSON(items)
}

// Create handles POST /api/users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.users.CreateUser(c.Context(), service.CreateUserInput{
		Username:   req.Username,
		FullName:   req.FullName,
		Department: req.Department,
		Email:      req.Email,
		Role:       req.Role,
		Password:   req.Password,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewUserResponse(user))
}

// Delete handles DELETE /api/users/:id. The user's tickets are left
// untouched.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.DeleteUser(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ResetPassword handles POST /api/users/:id/password/reset. The
// temporary credential in the response is the only copy.
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	temp, err := h.users.ResetPassword(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.ResetPasswordResponse{TempPassword: temp})
}

// ChangePassword handles PUT /api/users/:id/password. Confirmation
// matching happens in the client before the round trip.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.users.ChangePassword(c.Context(), c.Params("id"), req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
