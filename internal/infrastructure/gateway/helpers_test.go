package gateway

import (
	"context"
	"sync"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

type mapStore struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMapStore() *mapStore {
	return &mapStore{sessions: make(map[string]*domain.Session)}
}

func (s *mapStore) Load(_ context.Context, clientID string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[clientID], nil
}

func (s *mapStore) Save(_ context.Context, clientID string, sess *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[clientID] = sess
	return nil
}

func (s *mapStore) Delete(_ context.Context, clientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, clientID)
	return nil
}

// recordingPublisher delivers synchronously and remembers every change.
type recordingPublisher struct {
	mu        sync.Mutex
	changes   []domain.SessionChange
	listeners map[string][]ports.SessionListener
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{listeners: make(map[string][]ports.SessionListener)}
}

func (p *recordingPublisher) Subscribe(clientID string, fn ports.SessionListener) ports.Unsubscribe {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners[clientID] = append(p.listeners[clientID], fn)
	return func() {}
}

func (p *recordingPublisher) Publish(_ context.Context, change domain.SessionChange) error {
	p.mu.Lock()
	p.changes = append(p.changes, change)
	fns := append([]ports.SessionListener(nil), p.listeners[change.ClientID]...)
	p.mu.Unlock()
	for _, fn := range fns {
		fn(change)
	}
	return nil
}

func (p *recordingPublisher) events() []domain.AuthEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.AuthEvent, 0, len(p.changes))
	for _, c := range p.changes {
		out = append(out, c.Event)
	}
	return out
}
