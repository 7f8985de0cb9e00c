package domain

// ChatMessage is one append-only entry in a ticket's conversation.
// Timestamp is epoch milliseconds; messages for a ticket are ordered by
// it ascending and are never mutated or removed.
type ChatMessage struct {
	ID         string
	TicketID   string
	SenderID   string
	SenderName string
	Text       string
	Timestamp  int64
}
