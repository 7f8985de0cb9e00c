package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets. Any state is
// reachable from any other; only enum membership is validated.
type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "PENDING"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusResolved   TicketStatus = "RESOLVED"
)

// Valid reports whether the status is a known value.
func (s TicketStatus) Valid() bool {
	switch s {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusResolved:
		return true
	}
	return false
}

// Ticket is a user-filed support request. Tickets are never deleted;
// status is mutated only by administrators.
type Ticket struct {
	ID            string
	UserID        string
	Title         string
	Description   string
	Department    string
	Status        TicketStatus
	ScreenshotURL *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Requester is the minimal creator identity joined onto ticket listings.
type Requester struct {
	ID       string
	Username string
	FullName string
}

// TicketWithRequester pairs a ticket with its creator, when the creator
// still exists. Deleting a user leaves their tickets dangling.
type TicketWithRequester struct {
	Ticket
	Requester *Requester
}
