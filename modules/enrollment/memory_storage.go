package enrollment

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing. ClaimPending holds the write
// lock across the read-check-write, giving the same atomicity a
// conditional UPDATE provides in SQL.
type MemoryStorage struct {
	enrollments map[uuid.UUID]Enrollment
	mu          sync.RWMutex
}

// NewMemoryStorage creates a new in-memory enrollment storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		enrollments: make(map[uuid.UUID]Enrollment),
	}
}

func (s *MemoryStorage) Create(ctx context.Context, e Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.enrollments[e.ID] = e
	return nil
}

func (s *MemoryStorage) ByID(ctx context.Context, id uuid.UUID) (Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.enrollments[id]
	if !ok {
		return Enrollment{}, ErrNotFound
	}
	return e, nil
}

func (s *MemoryStorage) HasPending(ctx context.Context, studentID, classID uuid.UUID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, e := range s.enrollments {
		if e.StudentID == studentID && e.ClassID == classID && e.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStorage) ClaimPending(ctx context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.enrollments[id]
	if !ok {
		return false, ErrNotFound
	}
	if e.Status != StatusPending {
		return false, nil
	}

	e.Status = StatusApproved
	s.enrollments[id] = e
	return true, nil
}

func (s *MemoryStorage) SetStatus(ctx context.Context, id uuid.UUID, status Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.enrollments[id]
	if !ok {
		return ErrNotFound
	}
	e.Status = status
	s.enrollments[id] = e
	return nil
}
