package dto

import (
	"time"

	"github.com/telecel/helpdesk/internal/domain"
)

// CreateTicketRequest payload for POST /api/tickets.
type CreateTicketRequest struct {
	UserID        string  `json:"userId"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Department    string  `json:"department"`
	ScreenshotURL *string `json:"screenshotUrl,omitempty"`
}

// UpdateStatusRequest payload for PUT /api/tickets/:id/status.
type UpdateStatusRequest struct {
	Status domain.TicketStatus `json:"status"`
}

// RequesterResponse is the minimal creator identity joined onto listings.
type RequesterResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// TicketResponse is the wire shape of a ticket.
type TicketResponse struct {
	ID            string              `json:"id"`
	UserID        string              `json:"userId"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Department    string              `json:"department"`
	Status        domain.TicketStatus `json:"status"`
	ScreenshotURL *string             `json:"screenshotUrl,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	Requester     *RequesterResponse  `json:"requester,omitempty"`
}

// NewTicketResponse maps a domain ticket onto the wire.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	return TicketResponse{
		ID:            ticket.ID,
		UserID:        ticket.UserID,
		Title:         ticket.Title,
		Description:   ticket.Description,
		Department:    ticket.Department,
		Status:        ticket.Status,
		ScreenshotURL: ticket.ScreenshotURL,
		CreatedAt:     ticket.CreatedAt,
		UpdatedAt:     ticket.UpdatedAt,
	}
}

// NewTicketListItem maps a joined listing row onto the wire.
func NewTicketListItem(item *domain.TicketWithRequester) TicketResponse {
	resp := NewTicketResponse(&item.Ticket)
	if item.Requester != nil {
		resp.Requester = &RequesterResponse{
			ID:       item.Requester.ID,
			Username: item.Requester.Username,
			FullName: item.Requester.FullName,
		}
	}
	return resp
}
