package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/schoolkit/pkg/logger"
)

// PushChannel delivers notifications to the recipient's browser push
// subscription. Users without a subscription, and deployments without
// VAPID keys, are skipped. An endpoint the push service reports gone is
// pruned, so the next event for that user is a clean skip instead of a
// repeat failure.
type PushChannel struct {
	store  SubscriptionStore
	sender PushSender
	logger *slog.Logger
}

// PushOption configures a PushChannel.
type PushOption func(*PushChannel)

// WithPushLogger sets the logger for the PushChannel.
func WithPushLogger(log *slog.Logger) PushOption {
	return func(c *PushChannel) {
		if log != nil {
			c.logger = log
		}
	}
}

// NewPushChannel creates a push channel. A nil sender disables
// delivery; every event is then skipped.
func NewPushChannel(store SubscriptionStore, sender PushSender, opts ...PushOption) *PushChannel {
	c := &PushChannel{
		store:  store,
		sender: sender,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Subscribe stores the user's push subscription, replacing any
// previous one.
func (c *PushChannel) Subscribe(ctx context.Context, sub Subscription) error {
	return c.store.Put(ctx, sub)
}

// Unsubscribe removes the user's push subscription.
func (c *PushChannel) Unsubscribe(ctx context.Context, userID uuid.UUID) error {
	return c.store.Delete(ctx, userID)
}

// Name implements the Channel interface.
func (c *PushChannel) Name() string { return "web_push" }

// Deliver implements the Channel interface.
func (c *PushChannel) Deliver(ctx context.Context, event Event) (Outcome, error) {
	if c.sender == nil {
		return OutcomeSkipped, nil
	}

	sub, err := c.store.Get(ctx, event.Recipient.ID)
	if err != nil {
		if errors.Is(err, ErrNoSubscription) {
			return OutcomeSkipped, nil
		}
		return OutcomeFailed, err
	}

	payload, err := json.Marshal(map[string]any{
		"title":   event.Title,
		"message": event.Body,
		"entity":  event.Entity,
	})
	if err != nil {
		return OutcomeFailed, fmt.Errorf("encode push payload: %w", err)
	}

	if err := c.sender.Send(ctx, sub, payload); err != nil {
		if errors.Is(err, ErrEndpointGone) {
			if delErr := c.store.Delete(ctx, event.Recipient.ID); delErr != nil {
				c.logger.LogAttrs(ctx, slog.LevelError, "failed to prune gone push subscription",
					logger.UserID(event.Recipient.ID),
					logger.Error(delErr),
				)
			}
		}
		return OutcomeFailed, err
	}
	return OutcomeDelivered, nil
}
