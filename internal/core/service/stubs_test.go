package service

import (
	"context"
	"sync"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

// ---------------------------------------------------------------------------
// fakeGateway: an in-memory gateway whose session feed the test drives.
// ---------------------------------------------------------------------------

type fakeGateway struct {
	mu        sync.Mutex
	listeners map[int]ports.SessionListener
	nextID    int

	session    *domain.Session
	sessionErr error
	// sessionGate, when set, blocks Session until it is closed.
	sessionGate chan struct{}

	signInErr    error
	signInCalls  int
	signOutCalls int
	unsubscribed int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{listeners: make(map[int]ports.SessionListener)}
}

func (g *fakeGateway) SignUp(context.Context, string, string, string) error { return nil }

func (g *fakeGateway) SignIn(_ context.Context, email, _ string) error {
	g.mu.Lock()
	g.signInCalls++
	err := g.signInErr
	g.mu.Unlock()
	if err != nil {
		return err
	}
	g.emit(domain.SessionChange{Event: domain.EventSignedIn, Session: sessionFor(email)})
	return nil
}

func (g *fakeGateway) SignOut(context.Context) error {
	g.mu.Lock()
	g.signOutCalls++
	g.mu.Unlock()
	g.emit(domain.SessionChange{Event: domain.EventSignedOut})
	return nil
}

func (g *fakeGateway) ResetPassword(context.Context, string) error { return nil }

func (g *fakeGateway) Session(ctx context.Context) (*domain.Session, error) {
	if g.sessionGate != nil {
		select {
		case <-g.sessionGate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.session, g.sessionErr
}

func (g *fakeGateway) Subscribe(fn ports.SessionListener) ports.Unsubscribe {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := g.nextID
	g.nextID++
	g.listeners[id] = fn
	var once sync.Once
	return func() {
		once.Do(func() {
			g.mu.Lock()
			delete(g.listeners, id)
			g.unsubscribed++
			g.mu.Unlock()
		})
	}
}

func (g *fakeGateway) emit(change domain.SessionChange) {
	g.mu.Lock()
	fns := make([]ports.SessionListener, 0, len(g.listeners))
	for _, fn := range g.listeners {
		fns = append(fns, fn)
	}
	g.mu.Unlock()
	for _, fn := range fns {
		fn(change)
	}
}

func (g *fakeGateway) listenerCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.listeners)
}

type fakeFactory struct {
	mu       sync.Mutex
	gateways map[string]*fakeGateway
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{gateways: make(map[string]*fakeGateway)}
}

func (f *fakeFactory) Name() string { return "fake" }

func (f *fakeFactory) New(clientID string) ports.Gateway {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := newFakeGateway()
	f.gateways[clientID] = g
	return g
}

func (f *fakeFactory) gateway(clientID string) *fakeGateway {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gateways[clientID]
}

func sessionFor(email string) *domain.Session {
	return &domain.Session{
		User:        &domain.User{ID: "user-" + email, Email: email},
		AccessToken: "token",
	}
}
