package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Sentinel errors. Password checks are enforced locally so the form can
// report them without a server round trip.
var (
	ErrUnauthorized     = errors.New("invalid username or password")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// APIError carries the server's error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d %s: %s", e.StatusCode, e.Code, e.Message)
}

// Client talks to the helpdesk API.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying transport.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a client for the given base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken attaches a bearer token to subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// LoginResult bundles the authenticated user and session token.
type LoginResult struct {
	User      User      `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Login authenticates and remembers the session token on success.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	body := map[string]string{"username": username, "password": password}

	var result struct {
		Success bool `json:"success"`
		LoginResult
		Message string `json:"message"`
	}
	err := c.do(ctx, http.MethodPost, "/api/login", body, &result)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	if !result.Success {
		return nil, ErrUnauthorized
	}
	c.token = result.Token
	return &result.LoginResult, nil
}

// Users fetches all accounts.
func (c *Client) Users(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CreateUserParams describes a new account.
type CreateUserParams struct {
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Department string `json:"department"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Password   string `json:"password"`
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, params CreateUserParams) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPost, "/api/users", params, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser removes an account. The user's tickets remain.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/api/users/"+userID, nil, nil)
}

// ResetPassword asks the server for a fresh temporary credential. The
// returned plaintext is shown once and cannot be fetched again.
func (c *Client) ResetPassword(ctx context.Context, userID string) (string, error) {
	var resp struct {
		TempPassword string `json:"tempPassword"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/users/"+userID+"/password/reset", nil, &resp); err != nil {
		return "", err
	}
	return resp.TempPassword, nil
}

// ChangePassword validates locally, then overwrites the credential.
// Length and confirmation failures never reach the server.
func (c *Client) ChangePassword(ctx context.Context, userID, newPassword, confirmPassword string) error {
	if len(newPassword) < 6 {
		return ErrPasswordTooShort
	}
	if newPassword != confirmPassword {
		return ErrPasswordMismatch
	}
	body := map[string]string{"newPassword": newPassword}
	return c.do(ctx, http.MethodPut, "/api/users/"+userID+"/password", body, nil)
}

// Tickets fetches all tickets, newest first.
func (c *Client) Tickets(ctx context.Context) ([]Ticket, error) {
	var tickets []Ticket
	if err := c.do(ctx, http.MethodGet, "/api/tickets", nil, &tickets); err != nil {
		return nil, err
	}
	return tickets, nil
}

// CreateTicketParams describes a new ticket.
type CreateTicketParams struct {
	UserID        string `json:"userId"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Department    string `json:"department"`
	ScreenshotURL string `json:"screenshotUrl,omitempty"`
}

// CreateTicket files a new ticket.
func (c *Client) CreateTicket(ctx context.Context, params CreateTicketParams) (*Ticket, error) {
	var ticket Ticket
	if err := c.do(ctx, http.MethodPost, "/api/tickets", params, &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// UpdateTicketStatus moves a ticket to the given status.
func (c *Client) UpdateTicketStatus(ctx context.Context, ticketID, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, http.MethodPut, "/api/tickets/"+ticketID+"/status", body, nil)
}

// Messages fetches the full conversation snapshot for a ticket.
func (c *Client) Messages(ctx context.Context, ticketID string) ([]ChatMessage, error) {
	var msgs []ChatMessage
	if err := c.do(ctx, http.MethodGet, "/api/tickets/"+ticketID+"/messages", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

// SendMessage appends a message to a ticket's conversation.
func (c *Client) SendMessage(ctx context.Context, ticketID, senderID, senderName, text string) (*ChatMessage, error) {
	body := map[string]string{
		"senderId":   senderID,
		"senderName": senderName,
		"text":       text,
	}
	var msg ChatMessage
	if err := c.do(ctx, http.MethodPost, "/api/tickets/"+ticketID+"/messages", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// LatestActivity probes the server for the newest message timestamp.
func (c *Client) LatestActivity(ctx context.Context, ticketID string) (int64, error) {
	var resp struct {
		Timestamp int64 `json:"timestamp"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/tickets/"+ticketID+"/chat/latest", nil, &resp); err != nil {
		return 0, err
	}
	return resp.Timestamp, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("server unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
		if apiErr.Message == "" {
			apiErr.Message = envelope.Message
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
