package auth

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrTokenNotFound is returned when a refresh token is absent or revoked
var ErrTokenNotFound = errors.New("refresh token not found")

// RefreshStore persists refresh tokens between issuance and rotation
type RefreshStore interface {
	Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	Get(ctx context.Context, tokenHash string) (string, error)
	Revoke(ctx context.Context, tokenHash string) error
}

type redisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed refresh token store. A nil
// client falls back to an in-process store so login keeps working
// when Redis is not configured, the same way the chat hub stays local.
func NewRedisStore(client *redis.Client) RefreshStore {
	if client == nil {
		log.Warn().Msg("Redis not configured, refresh tokens held in memory")
		return NewMemoryStore()
	}
	return &redisStore{client: client}
}

func (s *redisStore) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	return s.client.Set(ctx, refreshKeyPrefix+tokenHash, userID, ttl).Err()
}

func (s *redisStore) Get(ctx context.Context, tokenHash string) (string, error) {
	val, err := s.client.Get(ctx, refreshKeyPrefix+tokenHash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", err
	}
	return val, nil
}

func (s *redisStore) Revoke(ctx context.Context, tokenHash string) error {
	return s.client.Del(ctx, refreshKeyPrefix+tokenHash).Err()
}

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

type memoryStore struct {
	mu     sync.Mutex
	tokens map[string]memoryEntry
}

// NewMemoryStore creates an in-process refresh token store. Tokens do
// not survive a restart; every session re-authenticates after deploy.
func NewMemoryStore() RefreshStore {
	return &memoryStore{tokens: make(map[string]memoryEntry)}
}

func (s *memoryStore) Save(_ context.Context, tokenHash, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[tokenHash] = memoryEntry{userID: userID, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (s *memoryStore) Get(_ context.Context, tokenHash string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.tokens[tokenHash]
	if !ok {
		return "", ErrTokenNotFound
	}
	if time.Now().After(entry.expiresAt) {
		delete(s.tokens, tokenHash)
		return "", ErrTokenNotFound
	}
	return entry.userID, nil
}

func (s *memoryStore) Revoke(_ context.Context, tokenHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, tokenHash)
	return nil
}
