package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/telecel/helpdesk/internal/api/dto"
	"github.com/telecel/helpdesk/internal/service"
	apperrors "github.com/telecel/helpdesk/pkg/util"
)

// TicketsHandler exposes ticket lifecycle endpoints.
type TicketsHandler struct {
	tickets *service.TicketService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService}
}

// List handles GET /api/tickets: all tickets newest-first, each with its
// creator's minimal identity.
func (h *TicketsHandler) List(c *fiber.Ctx) error {
	tickets, err := h.tickets.ListTickets(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketListItem(&tickets[i]))
	}
	return c.JSON(items)
}

// Create handles POST /api/tickets.
func (h *TicketsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	ticket, err := h.tickets.CreateTicket(c.Context(), service.TicketCreateInput{
		UserID:        req.UserID,
		Title:         req.Title,
		Description:   req.Description,
		Department:    req.Department,
		ScreenshotURL: req.ScreenshotURL,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTicketResponse(ticket))
}

// UpdateStatus handles PUT /api/tickets/:id/status.
func (h *TicketsHandler) UpdateStatus(c *fiber.Ctx) error {
	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := h.tickets.SetStatus(c.Context(), c.Params("id"), req.Status); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}
