package billing

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing.
type MemoryStorage struct {
	invoices map[int64]Invoice
	nextID   int64
	mu       sync.RWMutex
}

// NewMemoryStorage creates a new in-memory invoice storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		invoices: make(map[int64]Invoice),
		nextID:   1,
	}
}

func (s *MemoryStorage) Create(ctx context.Context, inv *Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	inv.ID = s.nextID
	s.nextID++
	s.invoices[inv.ID] = *inv
	return nil
}

func (s *MemoryStorage) ByID(ctx context.Context, id int64) (Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[id]
	if !ok {
		return Invoice{}, ErrInvoiceNotFound
	}
	return inv, nil
}

func (s *MemoryStorage) Update(ctx context.Context, inv Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.invoices[inv.ID]; !ok {
		return ErrInvoiceNotFound
	}
	s.invoices[inv.ID] = inv
	return nil
}

func (s *MemoryStorage) Delete(ctx context.Context, ids ...int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		delete(s.invoices, id)
	}
	return nil
}

func (s *MemoryStorage) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var invoices []Invoice
	for _, inv := range s.invoices {
		if inv.StudentID == studentID {
			invoices = append(invoices, inv)
		}
	}
	sort.Slice(invoices, func(i, j int) bool {
		return invoices[i].ID < invoices[j].ID
	})
	return invoices, nil
}
