package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

const defaultSessionTTL = 30 * 24 * time.Hour

// SessionStore persists gateway sessions per client.
// Key format: gateway:session:<client_id>
type SessionStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore creates a SessionStore wrapping the given Redis client.
// Entries expire after ttl, which should cover the refresh token lifetime.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{client: client, prefix: "gateway:session:", ttl: ttl}
}

func (s *SessionStore) key(clientID string) string {
	return s.prefix + clientID
}

// Load returns the stored session for clientID, or nil when there is none.
func (s *SessionStore) Load(ctx context.Context, clientID string) (*domain.Session, error) {
	val, err := s.client.Get(ctx, s.key(clientID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("session load: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(val, &sess); err != nil {
		return nil, fmt.Errorf("session load: unmarshal: %w", err)
	}
	return &sess, nil
}

// Save stores sess for clientID, replacing any previous one.
func (s *SessionStore) Save(ctx context.Context, clientID string, sess *domain.Session) error {
	if sess == nil {
		return s.Delete(ctx, clientID)
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("session save: marshal: %w", err)
	}
	if err := s.client.Set(ctx, s.key(clientID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("session save: %w", err)
	}
	return nil
}

// Delete removes the stored session for clientID.
func (s *SessionStore) Delete(ctx context.Context, clientID string) error {
	if err := s.client.Del(ctx, s.key(clientID)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}
