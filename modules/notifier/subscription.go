package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Subscription is a browser push subscription, one per user. A new
// subscription replaces the previous one.
type Subscription struct {
	UserID    uuid.UUID `json:"user_id"`
	Endpoint  string    `json:"endpoint"`
	P256dh    string    `json:"p256dh"`
	Auth      string    `json:"auth"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks that the subscription carries everything the push
// protocol needs.
func (s Subscription) Validate() error {
	if s.UserID == uuid.Nil || s.Endpoint == "" || s.P256dh == "" || s.Auth == "" {
		return ErrInvalidSubscription
	}
	return nil
}

// SubscriptionStore persists push subscriptions keyed by user.
type SubscriptionStore interface {
	// Get returns the user's subscription or ErrNoSubscription.
	Get(ctx context.Context, userID uuid.UUID) (Subscription, error)
	// Put stores the subscription, replacing any previous one.
	Put(ctx context.Context, sub Subscription) error
	// Delete removes the user's subscription. Missing subscriptions are
	// not an error.
	Delete(ctx context.Context, userID uuid.UUID) error
}

// MemorySubscriptionStore is an in-memory SubscriptionStore, safe for
// concurrent use.
type MemorySubscriptionStore struct {
	mu   sync.RWMutex
	subs map[uuid.UUID]Subscription
}

// NewMemorySubscriptionStore creates an empty in-memory store.
func NewMemorySubscriptionStore() *MemorySubscriptionStore {
	return &MemorySubscriptionStore{subs: make(map[uuid.UUID]Subscription)}
}

func (s *MemorySubscriptionStore) Get(ctx context.Context, userID uuid.UUID) (Subscription, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sub, ok := s.subs[userID]
	if !ok {
		return Subscription{}, ErrNoSubscription
	}
	return sub, nil
}

func (s *MemorySubscriptionStore) Put(ctx context.Context, sub Subscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[sub.UserID] = sub
	return nil
}

func (s *MemorySubscriptionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, userID)
	return nil
}

// RedisSubscriptionStore keeps push subscriptions in Redis as JSON
// values, one key per user.
type RedisSubscriptionStore struct {
	client *redis.Client
}

// NewRedisSubscriptionStore creates a Redis-backed store.
func NewRedisSubscriptionStore(client *redis.Client) *RedisSubscriptionStore {
	return &RedisSubscriptionStore{client: client}
}

func subscriptionKey(userID uuid.UUID) string {
	return "push:subscription:" + userID.String()
}

func (s *RedisSubscriptionStore) Get(ctx context.Context, userID uuid.UUID) (Subscription, error) {
	data, err := s.client.Get(ctx, subscriptionKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Subscription{}, ErrNoSubscription
		}
		return Subscription{}, fmt.Errorf("get push subscription: %w", err)
	}

	var sub Subscription
	if err := json.Unmarshal(data, &sub); err != nil {
		return Subscription{}, fmt.Errorf("decode push subscription: %w", err)
	}
	return sub, nil
}

func (s *RedisSubscriptionStore) Put(ctx context.Context, sub Subscription) error {
	if err := sub.Validate(); err != nil {
		return err
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encode push subscription: %w", err)
	}
	if err := s.client.Set(ctx, subscriptionKey(sub.UserID), data, 0).Err(); err != nil {
		return fmt.Errorf("store push subscription: %w", err)
	}
	return nil
}

func (s *RedisSubscriptionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, subscriptionKey(userID)).Err(); err != nil {
		return fmt.Errorf("delete push subscription: %w", err)
	}
	return nil
}
