package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/ledgerline/ledgerline/internal/domain"
)

// SessionStore keeps opaque session tokens mapped to the identity they were
// issued for. Tokens expire server-side via the redis TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func sessionKey(token string) string {
	return "sessions:" + token
}

// Create issues a fresh token for identity and stores it with the
// configured TTL.
func (s *SessionStore) Create(ctx context.Context, identity domain.Identity) (string, error) {
	payload, err := json.Marshal(identity)
	if err != nil {
		return "", fmt.Errorf("marshal identity: %w", err)
	}

	token := uuid.New().String()
	if err := s.client.Set(ctx, sessionKey(token), payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Get resolves a token back to its identity. Unknown or expired tokens
// return ErrSessionNotFound.
func (s *SessionStore) Get(ctx context.Context, token string) (*domain.Identity, error) {
	data, err := s.client.Get(ctx, sessionKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	var identity domain.Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("unmarshal identity: %w", err)
	}
	return &identity, nil
}

// Destroy removes a token. Destroying an unknown token is a no-op.
func (s *SessionStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
