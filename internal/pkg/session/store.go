package session

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusflow/enroll/internal/pkg/apperrors"
)

const redisKeyTpl = "session:%s"

// Store persists session records keyed by session id. Records expire after
// the TTL passed to Save; an expired or unknown id resolves to
// apperrors.ErrSessionNotFound.
type Store interface {
	Save(ctx context.Context, id string, userID int64, ttl time.Duration) error
	Get(ctx context.Context, id string) (int64, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// NewStore opens a Redis-backed store when a URL is configured, falling back
// to the in-process store otherwise.
func NewStore(redisURL string) (Store, error) {
	if redisURL == "" {
		return NewMemoryStore(), nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// RedisStore keeps sessions in Redis with a key-level TTL
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Save stores the session record
func (s *RedisStore) Save(ctx context.Context, id string, userID int64, ttl time.Duration) error {
	key := fmt.Sprintf(redisKeyTpl, id)
	if err := s.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get resolves a session id to its user id
func (s *RedisStore) Get(ctx context.Context, id string) (int64, error) {
	key := fmt.Sprintf(redisKeyTpl, id)
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, apperrors.ErrSessionNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read session: %w", err)
	}

	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, apperrors.ErrSessionNotFound
	}
	return userID, nil
}

// Delete destroys a session record
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	key := fmt.Sprintf(redisKeyTpl, id)
	return s.client.Del(ctx, key).Err()
}

// Close closes the underlying client
func (s *RedisStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

type memoryEntry struct {
	userID    int64
	expiresAt time.Time
}

// MemoryStore is the in-process fallback used when no Redis is configured.
// Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
}

// NewMemoryStore creates an empty in-process store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryEntry)}
}

// Save stores the session record
func (s *MemoryStore) Save(_ context.Context, id string, userID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

// Get resolves a session id to its user id
func (s *MemoryStore) Get(_ context.Context, id string) (int64, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return 0, apperrors.ErrSessionNotFound
	}
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		delete(s.sessions, id)
		s.mu.Unlock()
		return 0, apperrors.ErrSessionNotFound
	}
	return entry.userID, nil
}

// Delete destroys a session record
func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// Close is a no-op for the in-process store
func (s *MemoryStore) Close() error {
	return nil
}
