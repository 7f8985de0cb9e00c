package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/telecel/helpdesk/internal/domain"
)

// ChatRepository manages the append-only message list per ticket.
type ChatRepository interface {
	Append(ctx context.Context, msg *domain.ChatMessage) error
	ListByTicket(ctx context.Context, ticketID string) ([]domain.ChatMessage, error)
}

type chatRepository struct {
	pool *pgxpool.Pool
}

// NewChatRepository builds repository.
func NewChatRepository(pool *pgxpool.Pool) ChatRepository {
	return &chatRepository{pool: pool}
}

func (r *chatRepository) Append(ctx context.Context, msg *domain.ChatMessage) error {
	const query = `
        INSERT INTO chat_messages (id, ticket_id, sender_id, sender_name, body, sent_at)
        VALUES ($1,$2,$3,$4,$5,$6)`

	_, err := r.pool.Exec(ctx, query,
		msg.ID,
		msg.TicketID,
		msg.SenderID,
		msg.SenderName,
		msg.Text,
		msg.Timestamp,
	)
	return err
}

func (r *chatRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.ChatMessage, error) {
	const query = `
        SELECT id, ticket_id, sender_id, sender_name, body, sent_at
        FROM chat_messages WHERE ticket_id=$1 ORDER BY sent_at ASC`

	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ChatMessage
	for rows.Next() {
		var msg domain.ChatMessage
		if err := rows.Scan(
			&msg.ID,
			&msg.TicketID,
			&msg.SenderID,
			&msg.SenderName,
			&msg.Text,
			&msg.Timestamp,
		); err != nil {
			return nil, err
		}
		result = append(result, msg)
	}
	return result, rows.Err()
}
