package ports

import (
	"context"

	"github.com/chartflow/portal/internal/core/domain"
)

// SessionStore persists gateway sessions per client so they survive restarts.
// Load returns (nil, nil) when nothing is stored.
type SessionStore interface {
	Load(ctx context.Context, clientID string) (*domain.Session, error)
	Save(ctx context.Context, clientID string, s *domain.Session) error
	Delete(ctx context.Context, clientID string) error
}

// SessionPublisher fans session changes out to subscribed listeners.
// Publish returns once every listener of change.ClientID has run.
type SessionPublisher interface {
	Subscribe(clientID string, fn SessionListener) Unsubscribe
	Publish(ctx context.Context, change domain.SessionChange) error
}
