package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/telecel/helpdesk/internal/domain"
	"github.com/telecel/helpdesk/internal/events"
	"github.com/telecel/helpdesk/internal/repository"
	apperrors "github.com/telecel/helpdesk/pkg/util"
)

// TicketService coordinates the ticket lifecycle.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(tickets repository.TicketRepository, users repository.UserRepository, dispatcher events.Dispatcher) *TicketService {
	return &TicketService{
		tickets:    tickets,
		users:      users,
		dispatcher: dispatcher,
		now:        time.Now,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	UserID        string
	Title         string
	Description   string
	Department    string
	ScreenshotURL *string
}

// ListTickets returns all tickets newest-first, joined with creator
// identity. No pagination.
func (s *TicketService) ListTickets(ctx context.Context) ([]domain.TicketWithRequester, error) {
	return s.tickets.List(ctx)
}

// CreateTicket files a new ticket with status PENDING and identical
// creation/update timestamps.
func (s *TicketService) CreateTicket(ctx context.Context, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	if input.UserID == "" || title == "" || strings.TrimSpace(input.Description) == "" {
		return nil, apperrors.NewValidationError("userId, title, description required", nil)
	}

	// The owner must resolve to an existing account. Surfaced as a
	// generic failure, matching the original's constraint handling.
	if _, err := s.users.GetByID(ctx, input.UserID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInternalError(errors.New("ticket owner does not exist"))
		}
		return nil, err
	}

	now := s.now()
	ticket := &domain.Ticket{
		ID:            newTicketID(),
		UserID:        input.UserID,
		Title:         title,
		Description:   strings.TrimSpace(input.Description),
		Department:    strings.TrimSpace(input.Department),
		Status:        domain.TicketStatusPending,
		ScreenshotURL: input.ScreenshotURL,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		ActorID:  ticket.UserID,
		Payload: events.TicketCreatedPayload{
			UserID:     ticket.UserID,
			Title:      ticket.Title,
			Department: ticket.Department,
		},
	})
	return ticket, nil
}

// SetStatus updates a ticket's status and bumps its update timestamp.
// Transitions are unconstrained: any status may follow any other.
func (s *TicketService) SetStatus(ctx context.Context, ticketID string, status domain.TicketStatus) error {
	if !status.Valid() {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": string(status)})
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return err
	}

	if err := s.tickets.UpdateStatus(ctx, ticketID, status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticketID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: ticket.Status,
			NewStatus: status,
		},
	})
	return nil
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
