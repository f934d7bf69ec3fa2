package notifier

import (
	"time"

	"github.com/google/uuid"
)

// Record is a durable per-user notification, the inbox row a user sees
// after their live session is gone.
type Record struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Title     string     `json:"title"`
	Message   string     `json:"message"`
	Entity    EntityRef  `json:"entity"`
	Read      bool       `json:"read"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// MarkAsRead flips the record to read and stamps the time.
// Idempotent; the first read timestamp wins.
func (r *Record) MarkAsRead() {
	if r.Read {
		return
	}
	r.Read = true
	now := time.Now()
	r.ReadAt = &now
}
