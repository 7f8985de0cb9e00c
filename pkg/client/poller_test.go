package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeSource struct {
	mu   sync.Mutex
	msgs []ChatMessage
	err  error
}

func (s *fakeSource) Messages(_ context.Context, _ string) ([]ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]ChatMessage(nil), s.msgs...), nil
}

func (s *fakeSource) push(senderID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.msgs = append(s.msgs, ChatMessage{
		ID:        text,
		SenderID:  senderID,
		Text:      text,
		Timestamp: time.Now().UnixMilli(),
	})
}

func TestPollFirstFetchDoesNotNotify(t *testing.T) {
	source := &fakeSource{}
	source.push("ADMIN", "backlog message")

	var notified []ChatMessage
	p := NewChatPoller(source, "T-1", "123456", func(m ChatMessage) { notified = append(notified, m) }, PollerOptions{})

	if err := p.Poll(context.Background()); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(notified) != 0 {
		t.Errorf("notified on initial load: %+v", notified)
	}
	if got := p.Messages(); len(got) != 1 || got[0].Text != "backlog message" {
		t.Errorf("snapshot = %+v", got)
	}
}

func TestPollNotifiesOnIncomingGrowth(t *testing.T) {
	source := &fakeSource{}
	source.push("123456", "hello")

	var notified []ChatMessage
	p := NewChatPoller(source, "T-1", "123456", func(m ChatMessage) { notified = append(notified, m) }, PollerOptions{})
	ctx := context.Background()

	if err := p.Poll(ctx); err != nil {
		t.Fatalf("first Poll: %v", err)
	}

	source.push("ADMIN", "we are on it")
	if err := p.Poll(ctx); err != nil {
		t.Fatalf("second Poll: %v", err)
	}

	if len(notified) != 1 || notified[0].Text != "we are on it" {
		t.Fatalf("notified = %+v, want the admin reply", notified)
	}
	if len(p.Messages()) != 2 {
		t.Errorf("snapshot len = %d, want 2", len(p.Messages()))
	}
}

func TestPollIgnoresOwnMessages(t *testing.T) {
	source := &fakeSource{}
	source.push("ADMIN", "how can I help")

	var notified []ChatMessage
	p := NewChatPoller(source, "T-1", "123456", func(m ChatMessage) { notified = append(notified, m) }, PollerOptions{})
	ctx := context.Background()

	if err := p.Poll(ctx); err != nil {
		t.Fatalf("first Poll: %v", err)
	}

	// The viewer's own send comes back on the next fetch. The list grew
	// but the newest sender is the viewer, so no notification.
	source.push("123456", "CRM is down")
	if err := p.Poll(ctx); err != nil {
		t.Fatalf("second Poll: %v", err)
	}
	if len(notified) != 0 {
		t.Errorf("notified for own message: %+v", notified)
	}
}

func TestPollClearsTypingOnIncoming(t *testing.T) {
	source := &fakeSource{}
	source.push("123456", "anyone?")

	p := NewChatPoller(source, "T-1", "123456", nil, PollerOptions{
		TypingChance:   func() bool { return true },
		TypingDuration: func() time.Duration { return time.Hour },
	})
	ctx := context.Background()

	if err := p.Poll(ctx); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if err := p.CheckTyping(ctx); err != nil {
		t.Fatalf("CheckTyping: %v", err)
	}
	if !p.Typing() {
		t.Fatal("typing indicator not set")
	}

	source.push("ADMIN", "yes, checking")
	if err := p.Poll(ctx); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if p.Typing() {
		t.Error("typing indicator survived the incoming message")
	}
}

func TestPollLastFetchWins(t *testing.T) {
	source := &fakeSource{}
	source.push("123456", "one")
	source.push("ADMIN", "two")

	p := NewChatPoller(source, "T-1", "123456", nil, PollerOptions{})
	ctx := context.Background()
	if err := p.Poll(ctx); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	// The backend state is authoritative even when it shrinks.
	source.mu.Lock()
	source.msgs = source.msgs[:1]
	source.mu.Unlock()

	if err := p.Poll(ctx); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if got := p.Messages(); len(got) != 1 || got[0].Text != "one" {
		t.Errorf("snapshot = %+v, want the refetched list", got)
	}
}

func TestPollKeepsSnapshotOnError(t *testing.T) {
	source := &fakeSource{}
	source.push("ADMIN", "kept")

	p := NewChatPoller(source, "T-1", "123456", nil, PollerOptions{})
	ctx := context.Background()
	if err := p.Poll(ctx); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	source.mu.Lock()
	source.err = errors.New("connection refused")
	source.mu.Unlock()

	if err := p.Poll(ctx); err == nil {
		t.Fatal("expected poll error")
	}
	if got := p.Messages(); len(got) != 1 || got[0].Text != "kept" {
		t.Errorf("snapshot lost on failed poll: %+v", got)
	}
}

func TestCheckTypingOnlyAfterViewerMessage(t *testing.T) {
	source := &fakeSource{}
	p := NewChatPoller(source, "T-1", "123456", nil, PollerOptions{
		TypingChance:   func() bool { return true },
		TypingDuration: func() time.Duration { return time.Hour },
	})
	ctx := context.Background()

	// Empty conversation: nothing to react to.
	if err := p.CheckTyping(ctx); err != nil {
		t.Fatalf("CheckTyping: %v", err)
	}
	if p.Typing() {
		t.Fatal("typing on empty conversation")
	}

	// Newest message from the other party: they are not "typing" a reply
	// to themselves.
	source.push("ADMIN", "resolved, closing")
	if err := p.CheckTyping(ctx); err != nil {
		t.Fatalf("CheckTyping: %v", err)
	}
	if p.Typing() {
		t.Fatal("typing after the other party spoke last")
	}

	source.push("123456", "thanks!")
	if err := p.CheckTyping(ctx); err != nil {
		t.Fatalf("CheckTyping: %v", err)
	}
	if !p.Typing() {
		t.Fatal("no typing after viewer spoke last")
	}
}

func TestCheckTypingExpires(t *testing.T) {
	source := &fakeSource{}
	source.push("123456", "hello")

	p := NewChatPoller(source, "T-1", "123456", nil, PollerOptions{
		TypingChance:   func() bool { return true },
		TypingDuration: func() time.Duration { return 10 * time.Millisecond },
	})
	if err := p.CheckTyping(context.Background()); err != nil {
		t.Fatalf("CheckTyping: %v", err)
	}
	if !p.Typing() {
		t.Fatal("typing not set")
	}

	deadline := time.Now().Add(time.Second)
	for p.Typing() {
		if time.Now().After(deadline) {
			t.Fatal("typing indicator never expired")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestRunPollsUntilCancelled(t *testing.T) {
	source := &fakeSource{}
	source.push("123456", "first")

	var mu sync.Mutex
	var notified []ChatMessage
	p := NewChatPoller(source, "T-1", "123456", func(m ChatMessage) {
		mu.Lock()
		notified = append(notified, m)
		mu.Unlock()
	}, PollerOptions{
		PollInterval:   10 * time.Millisecond,
		TypingInterval: time.Hour,
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	source.push("ADMIN", "reply")

	deadline := time.Now().Add(time.Second)
	for {
		mu.Lock()
		n := len(notified)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("reply never surfaced through Run")
		}
		time.Sleep(5 * time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop on cancel")
	}
}
