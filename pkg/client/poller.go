package client

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// MessageSource supplies full conversation snapshots. *Client satisfies
// it; tests substitute a fake.
type MessageSource interface {
	Messages(ctx context.Context, ticketID string) ([]ChatMessage, error)
}

// Notifier is invoked for each detected incoming message (a message
// authored by someone other than the viewer).
type Notifier func(ChatMessage)

// PollerOptions tunes the synchronizer. Zero values select the defaults
// the browser client used: a 2s message poll and a 4s typing check.
type PollerOptions struct {
	PollInterval   time.Duration
	TypingInterval time.Duration
	// TypingChance decides whether a typing indicator appears on a
	// given check. TypingDuration decides how long it lingers. Both are
	// cosmetic and swappable for a real presence channel.
	TypingChance   func() bool
	TypingDuration func() time.Duration
}

func (o *PollerOptions) withDefaults() {
	if o.PollInterval <= 0 {
		o.PollInterval = 2 * time.Second
	}
	if o.TypingInterval <= 0 {
		o.TypingInterval = 4 * time.Second
	}
	if o.TypingChance == nil {
		o.TypingChance = func() bool { return rand.Float64() > 0.6 }
	}
	if o.TypingDuration == nil {
		o.TypingDuration = func() time.Duration {
			return 2*time.Second + time.Duration(rand.Int63n(int64(2*time.Second)))
		}
	}
}

// ChatPoller approximates real-time chat with fixed-interval polling.
// Each poll refetches the full message list; a later fetch simply
// supersedes an earlier one, so a missed cycle catches up on the next.
type ChatPoller struct {
	source     MessageSource
	ticketID   string
	viewerID   string
	onIncoming Notifier
	opts       PollerOptions

	mu          sync.Mutex
	messages    []ChatMessage
	typing      bool
	typingTimer *time.Timer
}

// NewChatPoller builds a poller for one ticket viewed by one user.
func NewChatPoller(source MessageSource, ticketID, viewerID string, onIncoming Notifier, opts PollerOptions) *ChatPoller {
	opts.withDefaults()
	return &ChatPoller{
		source:     source,
		ticketID:   ticketID,
		viewerID:   viewerID,
		onIncoming: onIncoming,
		opts:       opts,
	}
}

// Run polls until ctx is cancelled. The two timers are independent; an
// overlapping or failed fetch only delays the next visible update.
func (p *ChatPoller) Run(ctx context.Context) {
	pollTicker := time.NewTicker(p.opts.PollInterval)
	typingTicker := time.NewTicker(p.opts.TypingInterval)
	defer pollTicker.Stop()
	defer typingTicker.Stop()
	defer p.stopTypingTimer()

	_ = p.Poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-pollTicker.C:
			_ = p.Poll(ctx)
		case <-typingTicker.C:
			_ = p.CheckTyping(ctx)
		}
	}
}

// Poll fetches the current snapshot and reconciles it against the held
// list. An incoming message is recognized only when the list grew, the
// previous list was non-empty, and the newest message is not the
// viewer's; it triggers the notifier and clears the typing indicator.
// The held list is replaced unconditionally (last-fetch-wins).
func (p *ChatPoller) Poll(ctx context.Context) error {
	msgs, err := p.source.Messages(ctx, p.ticketID)
	if err != nil {
		return err
	}

	var incoming *ChatMessage
	p.mu.Lock()
	if len(msgs) > len(p.messages) && len(p.messages) > 0 {
		last := msgs[len(msgs)-1]
		if last.SenderID != p.viewerID {
			incoming = &last
			p.typing = false
			if p.typingTimer != nil {
				p.typingTimer.Stop()
			}
		}
	}
	p.messages = msgs
	p.mu.Unlock()

	if incoming != nil && p.onIncoming != nil {
		p.onIncoming(*incoming)
	}
	return nil
}

// CheckTyping runs one pass of the simulated presence affordance: when
// the newest message is the viewer's own, the other party "types" with
// randomized probability and clears after a randomized delay.
func (p *ChatPoller) CheckTyping(ctx context.Context) error {
	msgs, err := p.source.Messages(ctx, p.ticketID)
	if err != nil {
		return err
	}
	if len(msgs) == 0 || msgs[len(msgs)-1].SenderID != p.viewerID {
		return nil
	}
	if !p.opts.TypingChance() {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.typing = true
	if p.typingTimer != nil {
		p.typingTimer.Stop()
	}
	p.typingTimer = time.AfterFunc(p.opts.TypingDuration(), func() {
		p.mu.Lock()
		p.typing = false
		p.mu.Unlock()
	})
	return nil
}

// Messages returns a copy of the last fetched snapshot.
func (p *ChatPoller) Messages() []ChatMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]ChatMessage, len(p.messages))
	copy(out, p.messages)
	return out
}

// Typing reports whether the typing indicator is currently shown.
func (p *ChatPoller) Typing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.typing
}

func (p *ChatPoller) stopTypingTimer() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.typingTimer != nil {
		p.typingTimer.Stop()
	}
}
