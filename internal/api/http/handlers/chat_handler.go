package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/telecel/helpdesk/internal/api/dto"
	"github.com/telecel/helpdesk/internal/service"
	apperrors "github.com/telecel/helpdesk/pkg/util"
)

// ChatHandler exposes the per-ticket conversation endpoints.
type ChatHandler struct {
	chat *service.ChatService
}

// NewChatHandler constructs handler.
func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chat: chatService}
}

// ListMessages handles GET /api/tickets/:id/messages. Always a full
// snapshot, ascending by timestamp.
func (h *ChatHandler) ListMessages(c *fiber.Ctx) error {
	msgs, err := h.chat.GetMessages(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	items := make([]dto.ChatMessageResponse, 0, len(msgs))
	for i := range msgs {
		items = append(items, dto.NewChatMessageResponse(&msgs[i]))
	}
	return c.JSON(items)
}

// SendMessage handles POST /api/tickets/:id/messages.
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	var req dto.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	msg, err := h.chat.SendMessage(c.Context(), c.Params("id"), req.SenderID, req.SenderName, req.Text)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewChatMessageResponse(msg))
}

// LatestActivity handles GET /api/tickets/:id/chat/latest, a cheap probe
// for polling clients.
func (h *ChatHandler) LatestActivity(c *fiber.Ctx) error {
	ts, err := h.chat.LatestActivity(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.ChatActivityResponse{Timestamp: ts})
}
