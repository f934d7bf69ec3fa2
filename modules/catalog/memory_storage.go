package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryStorage is an in-memory implementation of the Storage interface.
// Suitable for development and testing.
type MemoryStorage struct {
	fees    map[uuid.UUID]FeeDefinition
	classes map[uuid.UUID]ClassOffering
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory catalog storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		fees:    make(map[uuid.UUID]FeeDefinition),
		classes: make(map[uuid.UUID]ClassOffering),
	}
}

func (s *MemoryStorage) CreateFee(ctx context.Context, fee FeeDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fees[fee.ID] = fee
	return nil
}

func (s *MemoryStorage) FeeByID(ctx context.Context, id uuid.UUID) (FeeDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fee, ok := s.fees[id]
	if !ok {
		return FeeDefinition{}, ErrFeeNotFound
	}
	return fee, nil
}

func (s *MemoryStorage) UpdateFee(ctx context.Context, fee FeeDefinition) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.fees[fee.ID]; !ok {
		return ErrFeeNotFound
	}
	s.fees[fee.ID] = fee
	return nil
}

func (s *MemoryStorage) ListFees(ctx context.Context) ([]FeeDefinition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fees := make([]FeeDefinition, 0, len(s.fees))
	for _, fee := range s.fees {
		fees = append(fees, fee)
	}
	sort.Slice(fees, func(i, j int) bool {
		return fees[i].CreatedAt.Before(fees[j].CreatedAt)
	})
	return fees, nil
}

func (s *MemoryStorage) CreateClass(ctx context.Context, class ClassOffering) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.classes[class.ID] = class
	return nil
}

func (s *MemoryStorage) ClassByID(ctx context.Context, id uuid.UUID) (ClassOffering, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	class, ok := s.classes[id]
	if !ok {
		return ClassOffering{}, ErrClassNotFound
	}
	return class, nil
}
