package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Inbox is the durable notification channel and the user-facing inbox
// service over the same records. Delivery writes a record; the read
// side enforces ownership, so one user can never touch another user's
// records.
type Inbox struct {
	storage Storage
}

// NewInbox creates an inbox over the given storage.
func NewInbox(storage Storage) *Inbox {
	return &Inbox{storage: storage}
}

// Name implements the Channel interface.
func (i *Inbox) Name() string { return "inbox" }

// Deliver implements the Channel interface by persisting the event as
// an unread record for the recipient.
func (i *Inbox) Deliver(ctx context.Context, event Event) (Outcome, error) {
	r := Record{
		ID:        uuid.New(),
		UserID:    event.Recipient.ID,
		Title:     event.Title,
		Message:   event.Body,
		Entity:    event.Entity,
		CreatedAt: time.Now(),
	}
	if err := i.storage.Create(ctx, r); err != nil {
		return OutcomeFailed, fmt.Errorf("persist notification: %w", err)
	}
	return OutcomeDelivered, nil
}

// List returns the user's notifications, newest first.
func (i *Inbox) List(ctx context.Context, userID uuid.UUID) ([]Record, error) {
	return i.storage.ListByUser(ctx, userID)
}

// UnreadCount returns the user's number of unread notifications.
func (i *Inbox) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return i.storage.CountUnread(ctx, userID)
}

// MarkRead marks one of the user's notifications as read. Returns
// ErrForbidden when the record belongs to someone else.
func (i *Inbox) MarkRead(ctx context.Context, userID, recordID uuid.UUID) error {
	if err := i.authorize(ctx, userID, recordID); err != nil {
		return err
	}
	return i.storage.MarkRead(ctx, recordID)
}

// MarkAllRead marks every unread notification of the user as read.
func (i *Inbox) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	return i.storage.MarkAllRead(ctx, userID)
}

// Delete removes one of the user's notifications. Returns ErrForbidden
// when the record belongs to someone else.
func (i *Inbox) Delete(ctx context.Context, userID, recordID uuid.UUID) error {
	if err := i.authorize(ctx, userID, recordID); err != nil {
		return err
	}
	return i.storage.Delete(ctx, recordID)
}

func (i *Inbox) authorize(ctx context.Context, userID, recordID uuid.UUID) error {
	r, err := i.storage.ByID(ctx, recordID)
	if err != nil {
		return err
	}
	if r.UserID != userID {
		return ErrForbidden
	}
	return nil
}
