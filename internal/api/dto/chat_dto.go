package dto

import "github.com/telecel/helpdesk/internal/domain"

// SendMessageRequest payload for POST /api/tickets/:id/messages.
type SendMessageRequest struct {
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
}

// ChatMessageResponse is the wire shape of a chat message. Timestamp is
// epoch milliseconds.
type ChatMessageResponse struct {
	ID         string `json:"id"`
	TicketID   string `json:"ticketId"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
}

// ChatActivityResponse is the lightweight poll probe.
type ChatActivityResponse struct {
	Timestamp int64 `json:"timestamp"`
}

// NewChatMessageResponse maps a domain message onto the wire.
func NewChatMessageResponse(msg *domain.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:         msg.ID,
		TicketID:   msg.TicketID,
		SenderID:   msg.SenderID,
		SenderName: msg.SenderName,
		Text:       msg.Text,
		Timestamp:  msg.Timestamp,
	}
}
