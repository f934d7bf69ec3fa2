package notifier_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/modules/directory"
	"github.com/dmitrymomot/schoolkit/modules/notifier"
)

type stubChannel struct {
	name    string
	outcome notifier.Outcome
	err     error
	delay   time.Duration
	panics  bool
}

func (c *stubChannel) Name() string { return c.name }

func (c *stubChannel) Deliver(ctx context.Context, event notifier.Event) (notifier.Outcome, error) {
	if c.panics {
		panic("boom")
	}
	if c.delay > 0 {
		select {
		case <-time.After(c.delay):
		case <-ctx.Done():
			return notifier.OutcomeFailed, ctx.Err()
		}
	}
	return c.outcome, c.err
}

func testEvent() notifier.Event {
	return notifier.Event{
		Kind:      notifier.KindInvoiceCreated,
		Recipient: directory.Person{ID: uuid.New(), Name: "Moussa Diop"},
		Title:     "New invoice 000001",
		Body:      "Invoice 000001 has been issued.",
	}
}

func TestDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	t.Run("one failing channel does not affect the others", func(t *testing.T) {
		t.Parallel()

		d := notifier.NewDispatcher([]notifier.Channel{
			&stubChannel{name: "a", outcome: notifier.OutcomeDelivered},
			&stubChannel{name: "b", err: errors.New("smtp down")},
			&stubChannel{name: "c", outcome: notifier.OutcomeSkipped},
		})

		results := d.Dispatch(context.Background(), testEvent()).Wait()
		require.Len(t, results, 3)
		assert.Equal(t, notifier.OutcomeDelivered, results[0].Outcome)
		assert.Equal(t, notifier.OutcomeFailed, results[1].Outcome)
		assert.Error(t, results[1].Err)
		assert.Equal(t, notifier.OutcomeSkipped, results[2].Outcome)
	})

	t.Run("panicking channel is contained", func(t *testing.T) {
		t.Parallel()

		d := notifier.NewDispatcher([]notifier.Channel{
			&stubChannel{name: "wild", panics: true},
			&stubChannel{name: "tame", outcome: notifier.OutcomeDelivered},
		})

		results := d.Dispatch(context.Background(), testEvent()).Wait()
		require.Len(t, results, 2)
		assert.Equal(t, notifier.OutcomeFailed, results[0].Outcome)
		assert.ErrorContains(t, results[0].Err, "panicked")
		assert.Equal(t, notifier.OutcomeDelivered, results[1].Outcome)
	})

	t.Run("slow channel hits the per-channel timeout", func(t *testing.T) {
		t.Parallel()

		d := notifier.NewDispatcher([]notifier.Channel{
			&stubChannel{name: "slow", outcome: notifier.OutcomeDelivered, delay: time.Second},
			&stubChannel{name: "fast", outcome: notifier.OutcomeDelivered},
		}, notifier.WithChannelTimeout(20*time.Millisecond))

		results := d.Dispatch(context.Background(), testEvent()).Wait()
		require.Len(t, results, 2)
		assert.Equal(t, notifier.OutcomeFailed, results[0].Outcome)
		assert.ErrorIs(t, results[0].Err, context.DeadlineExceeded)
		assert.Equal(t, notifier.OutcomeDelivered, results[1].Outcome)
	})

	t.Run("delivery survives the caller's context ending", func(t *testing.T) {
		t.Parallel()

		d := notifier.NewDispatcher([]notifier.Channel{
			&stubChannel{name: "slow", outcome: notifier.OutcomeDelivered, delay: 30 * time.Millisecond},
		})

		ctx, cancel := context.WithCancel(context.Background())
		dispatch := d.Dispatch(ctx, testEvent())
		cancel() // the triggering request ends immediately

		results := dispatch.Wait()
		require.Len(t, results, 1)
		assert.Equal(t, notifier.OutcomeDelivered, results[0].Outcome)
		assert.NoError(t, results[0].Err)
	})

	t.Run("results keep registration order", func(t *testing.T) {
		t.Parallel()

		d := notifier.NewDispatcher([]notifier.Channel{
			&stubChannel{name: "first", outcome: notifier.OutcomeSkipped, delay: 10 * time.Millisecond},
			&stubChannel{name: "second", outcome: notifier.OutcomeDelivered},
		})

		results := d.Dispatch(context.Background(), testEvent()).Wait()
		require.Len(t, results, 2)
		assert.Equal(t, "first", results[0].Channel)
		assert.Equal(t, "second", results[1].Channel)
	})
}
