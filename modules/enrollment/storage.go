package enrollment

import (
	"context"

	"github.com/google/uuid"
)

// Storage handles enrollment persistence. ClaimPending is the
// concurrency boundary of the whole approval flow: it must flip
// pending -> approved atomically and report whether this caller won.
type Storage interface {
	Create(ctx context.Context, e Enrollment) error
	ByID(ctx context.Context, id uuid.UUID) (Enrollment, error)

	// HasPending reports whether a pending enrollment exists for the
	// (student, class) pair.
	HasPending(ctx context.Context, studentID, classID uuid.UUID) (bool, error)

	// ClaimPending atomically transitions the enrollment from pending to
	// approved. It returns true when this call performed the transition
	// and false when the enrollment was not pending (already claimed).
	ClaimPending(ctx context.Context, id uuid.UUID) (bool, error)

	// SetStatus overwrites the status unconditionally. Used only by the
	// approval rollback path.
	SetStatus(ctx context.Context, id uuid.UUID, status Status) error
}
