package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/telecel/helpdesk/internal/domain"
	"github.com/telecel/helpdesk/internal/events"
	apperrors "github.com/telecel/helpdesk/pkg/util"
)

func chatFixture(t *testing.T) (*ChatService, *fakeChatRepo, *capturingDispatcher, string) {
	t.Helper()
	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	owner := seedUser(t, users, "john.doe", domain.RoleUser)

	ticket, err := NewTicketService(tickets, users, nil).CreateTicket(context.Background(), TicketCreateInput{
		UserID:      owner.ID,
		Title:       "Cannot access CRM",
		Description: "Login page spins forever",
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	messages := newFakeChatRepo()
	dispatcher := &capturingDispatcher{}
	svc := NewChatService(messages, tickets, nil, dispatcher, zap.NewNop())
	return svc, messages, dispatcher, ticket.ID
}

func TestSendMessageAppendsInOrder(t *testing.T) {
	svc, _, dispatcher, ticketID := chatFixture(t)
	ctx := context.Background()

	base := time.Now()
	svc.now = func() time.Time { return base }
	first, err := svc.SendMessage(ctx, ticketID, "123456", "John Doe", "Hello, my CRM is down")
	if err != nil {
		t.Fatalf("first SendMessage: %v", err)
	}

	svc.now = func() time.Time { return base.Add(time.Second) }
	second, err := svc.SendMessage(ctx, ticketID, "ADMIN", "Support", "Looking into it now")
	if err != nil {
		t.Fatalf("second SendMessage: %v", err)
	}

	if first.ID == second.ID {
		t.Errorf("message IDs collide: %q", first.ID)
	}
	if second.Timestamp <= first.Timestamp {
		t.Errorf("timestamps not increasing: %d then %d", first.Timestamp, second.Timestamp)
	}

	got, err := svc.GetMessages(ctx, ticketID)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Text != "Hello, my CRM is down" || got[1].Text != "Looking into it now" {
		t.Errorf("order = [%q %q]", got[0].Text, got[1].Text)
	}

	captured := dispatcher.captured()
	if len(captured) != 2 || captured[0].Type != events.EventChatMessageSent {
		t.Errorf("events = %+v", captured)
	}
}

func TestSendMessageValidation(t *testing.T) {
	svc, _, _, ticketID := chatFixture(t)
	ctx := context.Background()

	cases := []struct {
		name                       string
		senderID, senderName, text string
	}{
		{"blank text", "123456", "John", "   "},
		{"missing sender id", "", "John", "hi"},
		{"missing sender name", "123456", "", "hi"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SendMessage(ctx, ticketID, tc.senderID, tc.senderName, tc.text)
			var domainErr *apperrors.DomainError
			if !errors.As(err, &domainErr) || domainErr.Code != "VALIDATION_FAILED" {
				t.Errorf("err = %v, want VALIDATION_FAILED", err)
			}
		})
	}
}

func TestSendMessageUnknownTicket(t *testing.T) {
	svc, _, _, _ := chatFixture(t)
	_, err := svc.SendMessage(context.Background(), "T-MISSING", "123456", "John", "hello?")
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) || domainErr.Code != "NOT_FOUND" {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestGetMessagesEmptyTicket(t *testing.T) {
	svc, _, _, ticketID := chatFixture(t)
	got, err := svc.GetMessages(context.Background(), ticketID)
	if err != nil {
		t.Fatalf("GetMessages: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("len = %d, want 0", len(got))
	}
}

func TestLatestActivityTracksNewestMessage(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = cache.Close() })

	users := newFakeUserRepo()
	tickets := newFakeTicketRepo(users)
	owner := seedUser(t, users, "john.doe", domain.RoleUser)
	ticket, err := NewTicketService(tickets, users, nil).CreateTicket(context.Background(), TicketCreateInput{
		UserID:      owner.ID,
		Title:       "t",
		Description: "d",
	})
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}

	svc := NewChatService(newFakeChatRepo(), tickets, cache, nil, zap.NewNop())
	ctx := context.Background()

	// Nothing sent yet: cold cache reads as zero.
	ts, err := svc.LatestActivity(ctx, ticket.ID)
	if err != nil || ts != 0 {
		t.Fatalf("cold LatestActivity = %d, %v; want 0, nil", ts, err)
	}

	msg, err := svc.SendMessage(ctx, ticket.ID, owner.ID, "John Doe", "anyone there?")
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}

	ts, err = svc.LatestActivity(ctx, ticket.ID)
	if err != nil {
		t.Fatalf("LatestActivity: %v", err)
	}
	if ts != msg.Timestamp {
		t.Errorf("LatestActivity = %d, want %d", ts, msg.Timestamp)
	}

	stored, err := mr.Get(chatActivityKeyPrefix + ticket.ID)
	if err != nil {
		t.Fatalf("miniredis Get: %v", err)
	}
	if stored != strconv.FormatInt(msg.Timestamp, 10) {
		t.Errorf("cached value = %q, want %d", stored, msg.Timestamp)
	}
}

func TestLatestActivityWithoutCache(t *testing.T) {
	svc, _, _, ticketID := chatFixture(t)
	if _, err := svc.SendMessage(context.Background(), ticketID, "123456", "John", "hi"); err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	ts, err := svc.LatestActivity(context.Background(), ticketID)
	if err != nil || ts != 0 {
		t.Errorf("LatestActivity = %d, %v; want 0, nil when cache disabled", ts, err)
	}
}

func TestTextPreview(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "abcde"
	}
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 120, "short"},
		{"  padded  ", 120, "padded"},
		{long, 10, long[:7] + "..."},
	}
	for _, tc := range cases {
		if got := textPreview(tc.in, tc.max); got != tc.want {
			t.Errorf("textPreview(%q, %d) = %q, want %q", tc.in, tc.max, got, tc.want)
		}
	}
}
