package notifier

import (
	"context"

	"github.com/google/uuid"
)

// Storage persists inbox records.
type Storage interface {
	// Create stores a new record.
	Create(ctx context.Context, r Record) error
	// ByID returns a record or ErrRecordNotFound.
	ByID(ctx context.Context, id uuid.UUID) (Record, error)
	// ListByUser returns the user's records, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Record, error)
	// MarkRead marks the given records as read. Already-read records
	// keep their original read timestamp.
	MarkRead(ctx context.Context, ids ...uuid.UUID) error
	// MarkAllRead marks every unread record of the user as read.
	MarkAllRead(ctx context.Context, userID uuid.UUID) error
	// Delete removes a record. Missing records are not an error.
	Delete(ctx context.Context, id uuid.UUID) error
	// CountUnread returns the number of unread records for the user.
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
}
