package enrollment

import (
	"time"

	"github.com/google/uuid"
)

// Status represents the enrollment lifecycle state.
type Status string

const (
	// StatusPending is the initial state of a submitted enrollment.
	StatusPending Status = "pending"
	// StatusApproved is terminal: the student is a member of the class
	// and the attached fees have been invoiced exactly once.
	StatusApproved Status = "approved"
)

// Enrollment is one student's request to join one class, requiring
// admin approval before billing occurs.
type Enrollment struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	ClassID   uuid.UUID `json:"class_id"`
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
