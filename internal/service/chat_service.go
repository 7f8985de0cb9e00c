package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/telecel/helpdesk/internal/domain"
	"github.com/telecel/helpdesk/internal/events"
	"github.com/telecel/helpdesk/internal/repository"
	apperrors "github.com/telecel/helpdesk/pkg/util"
)

const chatActivityKeyPrefix = "chat:latest:"

// ChatService manages the append-only conversation per ticket. Redis
// keeps a per-ticket last-activity timestamp so polling clients can
// probe for news without refetching the message list.
type ChatService struct {
	messages   repository.ChatRepository
	tickets    repository.TicketRepository
	cache      *redis.Client
	dispatcher events.Dispatcher
	logger     *zap.Logger
	now        func() time.Time
}

// NewChatService constructs the service. cache may be nil; the activity
// probe then always reports zero.
func NewChatService(messages repository.ChatRepository, tickets repository.TicketRepository, cache *redis.Client, dispatcher events.Dispatcher, logger *zap.Logger) *ChatService {
	return &ChatService{
		messages:   messages,
		tickets:    tickets,
		cache:      cache,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// GetMessages returns the full message snapshot for a ticket, ascending
// by timestamp. Each call is an independent, restartable snapshot.
func (s *ChatService) GetMessages(ctx context.Context, ticketID string) ([]domain.ChatMessage, error) {
	return s.messages.ListByTicket(ctx, ticketID)
}

// SendMessage appends a message with a fresh ID and the current
// epoch-millis timestamp, and returns it.
func (s *ChatService) SendMessage(ctx context.Context, ticketID, senderID, senderName, text string) (*domain.ChatMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("text required", nil)
	}
	if senderID == "" || senderName == "" {
		return nil, apperrors.NewValidationError("senderId, senderName required", nil)
	}

	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"id": ticketID})
		}
		return nil, err
	}

	msg := &domain.ChatMessage{
		ID:         uuid.NewString(),
		TicketID:   ticketID,
		SenderID:   senderID,
		SenderName: senderName,
		Text:       text,
		Timestamp:  s.now().UnixMilli(),
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return nil, err
	}

	s.touchActivity(ctx, ticketID, msg.Timestamp)

	s.publish(ctx, events.Event{
		Type:     events.EventChatMessageSent,
		TicketID: ticketID,
		ActorID:  senderID,
		Payload: events.ChatMessageSentPayload{
			MessageID:   msg.ID,
			SenderID:    msg.SenderID,
			SenderName:  msg.SenderName,
			TextPreview: textPreview(msg.Text, 120),
		},
	})
	return msg, nil
}

// LatestActivity reports the timestamp of the newest message for a
// ticket as recorded in the cache. Zero means no recorded activity; a
// cold cache is indistinguishable from a silent ticket, and callers fall
// back to a full fetch either way.
func (s *ChatService) LatestActivity(ctx context.Context, ticketID string) (int64, error) {
	if s.cache == nil {
		return 0, nil
	}
	val, err := s.cache.Get(ctx, chatActivityKeyPrefix+ticketID).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return val, nil
}

func (s *ChatService) touchActivity(ctx context.Context, ticketID string, ts int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, chatActivityKeyPrefix+ticketID, ts, 0).Err(); err != nil && s.logger != nil {
		s.logger.Warn("failed to record chat activity", zap.String("ticket_id", ticketID), zap.Error(err))
	}
}

func (s *ChatService) publish(ctx context.Context, event events.Event) {
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

func textPreview(text string, max int) string {
	text = strings.TrimSpace(text)
	if len(text) <= max {
		return text
	}
	if max <= 3 {
		return text[:max]
	}
	return text[:max-3] + "..."
}
