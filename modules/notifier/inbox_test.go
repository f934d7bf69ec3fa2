package notifier_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/schoolkit/modules/directory"
	"github.com/dmitrymomot/schoolkit/modules/notifier"
)

func deliverTo(t *testing.T, inbox *notifier.Inbox, userID uuid.UUID, title string) {
	t.Helper()
	event := notifier.Event{
		Kind:      notifier.KindInvoiceCreated,
		Recipient: directory.Person{ID: userID},
		Title:     title,
		Body:      "body of " + title,
		Entity:    notifier.EntityRef{Type: "invoice", ID: "1"},
	}
	outcome, err := inbox.Deliver(context.Background(), event)
	require.NoError(t, err)
	require.Equal(t, notifier.OutcomeDelivered, outcome)
}

func TestInbox_DeliverAndList(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	inbox := notifier.NewInbox(notifier.NewMemoryStorage())
	guardian := uuid.New()

	deliverTo(t, inbox, guardian, "first")
	deliverTo(t, inbox, guardian, "second")
	deliverTo(t, inbox, uuid.New(), "someone else's")

	records, err := inbox.List(ctx, guardian)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, guardian, r.UserID)
		assert.False(t, r.Read)
		assert.Nil(t, r.ReadAt)
		assert.Equal(t, "invoice", r.Entity.Type)
	}

	count, err := inbox.UnreadCount(ctx, guardian)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestInbox_MarkRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	inbox := notifier.NewInbox(notifier.NewMemoryStorage())
	guardian := uuid.New()
	deliverTo(t, inbox, guardian, "invoice issued")

	records, err := inbox.List(ctx, guardian)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, inbox.MarkRead(ctx, guardian, records[0].ID))

	records, err = inbox.List(ctx, guardian)
	require.NoError(t, err)
	assert.True(t, records[0].Read)
	assert.NotNil(t, records[0].ReadAt)

	count, err := inbox.UnreadCount(ctx, guardian)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInbox_Ownership(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	inbox := notifier.NewInbox(notifier.NewMemoryStorage())
	owner := uuid.New()
	intruder := uuid.New()
	deliverTo(t, inbox, owner, "private")

	records, err := inbox.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	recordID := records[0].ID

	assert.ErrorIs(t, inbox.MarkRead(ctx, intruder, recordID), notifier.ErrForbidden)
	assert.ErrorIs(t, inbox.Delete(ctx, intruder, recordID), notifier.ErrForbidden)

	// The record is untouched.
	records, err = inbox.List(ctx, owner)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Read)

	assert.ErrorIs(t, inbox.MarkRead(ctx, owner, uuid.New()), notifier.ErrRecordNotFound)
}

func TestInbox_MarkAllRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	inbox := notifier.NewInbox(notifier.NewMemoryStorage())
	guardian := uuid.New()
	other := uuid.New()

	deliverTo(t, inbox, guardian, "one")
	deliverTo(t, inbox, guardian, "two")
	deliverTo(t, inbox, other, "theirs")

	require.NoError(t, inbox.MarkAllRead(ctx, guardian))

	count, err := inbox.UnreadCount(ctx, guardian)
	require.NoError(t, err)
	assert.Zero(t, count)

	// Other users' unread notifications are untouched.
	count, err = inbox.UnreadCount(ctx, other)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestInbox_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	inbox := notifier.NewInbox(notifier.NewMemoryStorage())
	guardian := uuid.New()
	deliverTo(t, inbox, guardian, "ephemeral")

	records, err := inbox.List(ctx, guardian)
	require.NoError(t, err)
	require.Len(t, records, 1)

	require.NoError(t, inbox.Delete(ctx, guardian, records[0].ID))

	records, err = inbox.List(ctx, guardian)
	require.NoError(t, err)
	assert.Empty(t, records)
}
