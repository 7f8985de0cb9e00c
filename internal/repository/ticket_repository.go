package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/telecel/helpdesk/internal/domain"
)

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	List(ctx context.Context) ([]domain.TicketWithRequester, error)
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	const query = `
        INSERT INTO tickets (id, user_id, title, description, department, status, screenshot_url, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`

	_, err := r.pool.Exec(ctx, query,
		ticket.ID,
		ticket.UserID,
		ticket.Title,
		ticket.Description,
		ticket.Department,
		ticket.Status,
		ticket.ScreenshotURL,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)
	return err
}

// List returns all tickets newest-first, each joined with the minimal
// identity of its creator. Orphaned tickets come back with a nil
// requester.
func (r *ticketRepository) List(ctx context.Context) ([]domain.TicketWithRequester, error) {
	const query = `
        SELECT t.id, t.user_id, t.title, t.description, t.department, t.status, t.screenshot_url,
               t.created_at, t.updated_at, u.id, u.username, u.full_name
        FROM tickets t
        LEFT JOIN users u ON u.id = t.user_id
        ORDER BY t.created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TicketWithRequester
	for rows.Next() {
		var item domain.TicketWithRequester
		var reqID, reqUsername, reqFullName *string
		if err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.Title,
			&item.Description,
			&item.Department,
			&item.Status,
			&item.ScreenshotURL,
			&item.CreatedAt,
			&item.UpdatedAt,
			&reqID,
			&reqUsername,
			&reqFullName,
		); err != nil {
			return nil, err
		}
		if reqID != nil {
			item.Requester = &domain.Requester{
				ID:       *reqID,
				Username: *reqUsername,
				FullName: *reqFullName,
			}
		}
		result = append(result, item)
	}
	return result, rows.Err()
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	const query = `
        SELECT id, user_id, title, description, department, status, screenshot_url, created_at, updated_at
        FROM tickets WHERE id=$1`

	var ticket domain.Ticket
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&ticket.ID,
		&ticket.UserID,
		&ticket.Title,
		&ticket.Description,
		&ticket.Department,
		&ticket.Status,
		&ticket.ScreenshotURL,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func (r *ticketRepository) UpdateStatus(ctx context.Context, id string, status domain.TicketStatus) error {
	const query = `UPDATE tickets SET status=$1, updated_at=NOW() WHERE id=$2`

	cmd, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
