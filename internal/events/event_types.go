package events

import (
	"time"

	"github.com/telecel/helpdesk/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventChatMessageSent     EventType = "chat_message_sent"
)

// Event represents a domain event emitted by services. Consumers never
// write back to the store: a status change does not produce a chat
// message, only notification side effects.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticketId"`
	ActorID   string      `json:"actorId,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	UserID     string `json:"userId"`
	Title      string `json:"title"`
	Department string `json:"department"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"oldStatus"`
	NewStatus domain.TicketStatus `json:"newStatus"`
}

// ChatMessageSentPayload payload.
type ChatMessageSentPayload struct {
	MessageID   string `json:"messageId"`
	SenderID    string `json:"senderId"`
	SenderName  string `json:"senderName"`
	TextPreview string `json:"textPreview"`
}
