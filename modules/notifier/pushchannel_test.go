package notifier_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/modules/directory"
	"github.com/dmitrymomot/schoolkit/modules/notifier"
)

type fakePushSender struct {
	mu    sync.Mutex
	err   error
	sends int
}

func (s *fakePushSender) Send(ctx context.Context, sub notifier.Subscription, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sends++
	return s.err
}

func (s *fakePushSender) sent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sends
}

func pushEvent(userID uuid.UUID) notifier.Event {
	return notifier.Event{
		Kind:      notifier.KindInvoiceCreated,
		Recipient: directory.Person{ID: userID},
		Title:     "New invoice 000001",
		Body:      "Invoice 000001 has been issued.",
		Entity:    notifier.EntityRef{Type: "invoice", ID: "1"},
	}
}

func subscription(userID uuid.UUID) notifier.Subscription {
	return notifier.Subscription{
		UserID:    userID,
		Endpoint:  "https://push.example.com/endpoint",
		P256dh:    "p256dh-key",
		Auth:      "auth-secret",
		CreatedAt: time.Now(),
	}
}

func TestPushChannel_Deliver(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("nil sender skips", func(t *testing.T) {
		t.Parallel()

		ch := notifier.NewPushChannel(notifier.NewMemorySubscriptionStore(), nil)
		outcome, err := ch.Deliver(ctx, pushEvent(uuid.New()))
		require.NoError(t, err)
		assert.Equal(t, notifier.OutcomeSkipped, outcome)
	})

	t.Run("no subscription skips", func(t *testing.T) {
		t.Parallel()

		sender := &fakePushSender{}
		ch := notifier.NewPushChannel(notifier.NewMemorySubscriptionStore(), sender)

		outcome, err := ch.Deliver(ctx, pushEvent(uuid.New()))
		require.NoError(t, err)
		assert.Equal(t, notifier.OutcomeSkipped, outcome)
		assert.Zero(t, sender.sent())
	})

	t.Run("delivers to subscribed user", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		sender := &fakePushSender{}
		ch := notifier.NewPushChannel(notifier.NewMemorySubscriptionStore(), sender)
		require.NoError(t, ch.Subscribe(ctx, subscription(userID)))

		outcome, err := ch.Deliver(ctx, pushEvent(userID))
		require.NoError(t, err)
		assert.Equal(t, notifier.OutcomeDelivered, outcome)
		assert.Equal(t, 1, sender.sent())
	})

	t.Run("gone endpoint prunes the subscription", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		sender := &fakePushSender{err: fmt.Errorf("%w: status 410", notifier.ErrEndpointGone)}
		ch := notifier.NewPushChannel(notifier.NewMemorySubscriptionStore(), sender)
		require.NoError(t, ch.Subscribe(ctx, subscription(userID)))

		outcome, err := ch.Deliver(ctx, pushEvent(userID))
		assert.Equal(t, notifier.OutcomeFailed, outcome)
		assert.ErrorIs(t, err, notifier.ErrEndpointGone)

		// The next event is a clean skip: the dead subscription is gone.
		outcome, err = ch.Deliver(ctx, pushEvent(userID))
		require.NoError(t, err)
		assert.Equal(t, notifier.OutcomeSkipped, outcome)
		assert.Equal(t, 1, sender.sent())
	})

	t.Run("transient failure keeps the subscription", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		sender := &fakePushSender{err: errors.New("push service unavailable")}
		ch := notifier.NewPushChannel(notifier.NewMemorySubscriptionStore(), sender)
		require.NoError(t, ch.Subscribe(ctx, subscription(userID)))

		outcome, err := ch.Deliver(ctx, pushEvent(userID))
		assert.Equal(t, notifier.OutcomeFailed, outcome)
		assert.Error(t, err)

		sender.mu.Lock()
		sender.err = nil
		sender.mu.Unlock()

		outcome, err = ch.Deliver(ctx, pushEvent(userID))
		require.NoError(t, err)
		assert.Equal(t, notifier.OutcomeDelivered, outcome)
	})
}

func TestPushChannel_Subscribe(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("rejects incomplete subscription", func(t *testing.T) {
		t.Parallel()

		ch := notifier.NewPushChannel(notifier.NewMemorySubscriptionStore(), &fakePushSender{})
		err := ch.Subscribe(ctx, notifier.Subscription{UserID: uuid.New()})
		assert.ErrorIs(t, err, notifier.ErrInvalidSubscription)
	})

	t.Run("new subscription replaces the previous one", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		store := notifier.NewMemorySubscriptionStore()
		ch := notifier.NewPushChannel(store, &fakePushSender{})

		first := subscription(userID)
		require.NoError(t, ch.Subscribe(ctx, first))

		second := subscription(userID)
		second.Endpoint = "https://push.example.com/replaced"
		require.NoError(t, ch.Subscribe(ctx, second))

		stored, err := store.Get(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, second.Endpoint, stored.Endpoint)
	})

	t.Run("unsubscribe removes the subscription", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		store := notifier.NewMemorySubscriptionStore()
		ch := notifier.NewPushChannel(store, &fakePushSender{})
		require.NoError(t, ch.Subscribe(ctx, subscription(userID)))

		require.NoError(t, ch.Unsubscribe(ctx, userID))
		_, err := store.Get(ctx, userID)
		assert.ErrorIs(t, err, notifier.ErrNoSubscription)
	})
}
