// Package client is the data-sync layer for helpdesk frontends: a typed
// HTTP client over the JSON API, a polling chat synchronizer, and an
// explicit application state store.
package client

import "time"

// Roles and ticket statuses as they appear on the wire.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusResolved   = "RESOLVED"
)

// User mirrors the API's account shape. Credential fields never appear.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	CompanyID  string `json:"companyId,omitempty"`
}

// Requester is the minimal creator identity attached to ticket listings.
type Requester struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// Ticket mirrors the API's ticket shape.
type Ticket struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Department    string     `json:"department"`
	Status        string     `json:"status"`
	ScreenshotURL string     `json:"screenshotUrl,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
	Requester     *Requester `json:"requester,omitempty"`
}

// ChatMessage mirrors the API's message shape. Timestamp is epoch millis.
type ChatMessage struct {
	ID         string `json:"id"`
	TicketID   string `json:"ticketId"`
	SenderID   string `json:"senderId"`
	SenderName string `json:"senderName"`
	Text       string `json:"text"`
	Timestamp  int64  `json:"timestamp"`
}
