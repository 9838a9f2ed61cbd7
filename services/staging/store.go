package staging

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	keyPrefix = "pendingBooking:"
	recordTTL = 24 * time.Hour
)

// Store keeps at most one staged booking per key.
type Store interface {
	Save(ctx context.Context, key string, rec Record) error
	Load(ctx context.Context, key string) (*Record, error)
	Clear(ctx context.Context, key string) error
}

// RedisStore stages bookings in Redis with a 24h TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, key string, rec Record) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, keyPrefix+key, data, recordTTL).Err(); err != nil {
		return fmt.Errorf("failed to stage booking: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context, key string) (*Record, error) {
	data, err := s.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotStaged
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load staged booking: %w", err)
	}
	return Decode(data)
}

func (s *RedisStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, keyPrefix+key).Err()
}

// MemoryStore is an in-process Store used by tests and local tooling.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Save(ctx context.Context, key string, rec Record) error {
	data, err := Encode(rec)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = data
	return nil
}

func (s *MemoryStore) Load(ctx context.Context, key string) (*Record, error) {
	s.mu.Lock()
	data, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotStaged
	}
	return Decode(data)
}

func (s *MemoryStore) Clear(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
