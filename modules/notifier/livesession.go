package notifier

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/pkg/broadcast"
)

const defaultSessionBuffer = 16

// SessionHub is the live-session channel: it pushes events to the
// recipient's open sessions (SSE or websocket handlers hold a
// Subscriber each). A user with no active session is simply skipped;
// the durable inbox record covers them.
type SessionHub struct {
	mu         sync.Mutex
	feeds      map[uuid.UUID]*broadcast.MemoryBroadcaster[Event]
	bufferSize int
}

// NewSessionHub creates a hub with the given per-session buffer size.
// Slow sessions drop messages instead of blocking delivery.
func NewSessionHub(bufferSize int) *SessionHub {
	return &SessionHub{
		feeds:      make(map[uuid.UUID]*broadcast.MemoryBroadcaster[Event]),
		bufferSize: max(bufferSize, defaultSessionBuffer),
	}
}

// Subscribe opens a live feed for the user. The subscription closes
// when ctx is cancelled, which is how a session ends.
func (h *SessionHub) Subscribe(ctx context.Context, userID uuid.UUID) broadcast.Subscriber[Event] {
	h.mu.Lock()
	feed, ok := h.feeds[userID]
	if !ok {
		feed = broadcast.NewMemoryBroadcaster[Event](h.bufferSize)
		h.feeds[userID] = feed
	}
	h.mu.Unlock()

	return feed.Subscribe(ctx)
}

// Name implements the Channel interface.
func (h *SessionHub) Name() string { return "live_session" }

// Deliver implements the Channel interface. Skipped when the recipient
// has no active session.
func (h *SessionHub) Deliver(ctx context.Context, event Event) (Outcome, error) {
	feed := h.activeFeed(event.Recipient.ID)
	if feed == nil {
		return OutcomeSkipped, nil
	}
	if err := feed.Broadcast(ctx, broadcast.Message[Event]{Data: event}); err != nil {
		return OutcomeFailed, err
	}
	return OutcomeDelivered, nil
}

// activeFeed returns the user's feed when at least one session is
// attached, pruning feeds whose last session has gone away.
func (h *SessionHub) activeFeed(userID uuid.UUID) *broadcast.MemoryBroadcaster[Event] {
	h.mu.Lock()
	defer h.mu.Unlock()

	feed, ok := h.feeds[userID]
	if !ok {
		return nil
	}
	if feed.Len() == 0 {
		delete(h.feeds, userID)
		_ = feed.Close()
		return nil
	}
	return feed
}

// Close shuts down every feed.
func (h *SessionHub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for userID, feed := range h.feeds {
		_ = feed.Close()
		delete(h.feeds, userID)
	}
	return nil
}
