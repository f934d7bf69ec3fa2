package notifier

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory implementation of the Storage
// interface, safe for concurrent use. Intended for tests and local
// development.
type MemoryStorage struct {
	mu      sync.RWMutex
	records map[uuid.UUID]Record
}

// NewMemoryStorage creates an empty in-memory inbox storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{records: make(map[uuid.UUID]Record)}
}

func (s *MemoryStorage) Create(ctx context.Context, r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.ID] = r
	return nil
}

func (s *MemoryStorage) ByID(ctx context.Context, id uuid.UUID) (Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return Record{}, ErrRecordNotFound
	}
	return r, nil
}

func (s *MemoryStorage) ListByUser(ctx context.Context, userID uuid.UUID) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var list []Record
	for _, r := range s.records {
		if r.UserID == userID {
			list = append(list, r)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	return list, nil
}

func (s *MemoryStorage) MarkRead(ctx context.Context, ids ...uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for _, id := range ids {
		r, ok := s.records[id]
		if !ok || r.Read {
			continue
		}
		r.Read = true
		readAt := now
		r.ReadAt = &readAt
		s.records[id] = r
	}
	return nil
}

func (s *MemoryStorage) MarkAllRead(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for id, r := range s.records {
		if r.UserID != userID || r.Read {
			continue
		}
		r.Read = true
		readAt := now
		r.ReadAt = &readAt
		s.records[id] = r
	}
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

func (s *MemoryStorage) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, r := range s.records {
		if r.UserID == userID && !r.Read {
			count++
		}
	}
	return count, nil
}
