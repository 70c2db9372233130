package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

const initialLoadTimeout = 10 * time.Second

// SessionProvider holds one client's current user and loading flag.
//
// The gateway subscription callback (apply) is the only writer of the user.
// Everything else reads through CurrentUser and IsLoading.
type SessionProvider struct {
	gateway ports.Gateway
	log     zerolog.Logger

	mu          sync.RWMutex
	user        *domain.User
	loading     bool
	started     bool
	closed      bool
	unsubscribe ports.Unsubscribe

	ready     chan struct{}
	readyOnce sync.Once
}

func NewSessionProvider(gateway ports.Gateway, log zerolog.Logger) *SessionProvider {
	return &SessionProvider{
		gateway: gateway,
		log:     log,
		loading: true,
		ready:   make(chan struct{}),
	}
}

// Start subscribes to the gateway's session feed and loads the persisted
// session in the background. Only the first call has any effect.
func (p *SessionProvider) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started || p.closed {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	unsubscribe := p.gateway.Subscribe(p.apply)

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		unsubscribe()
		return
	}
	p.unsubscribe = unsubscribe
	p.mu.Unlock()

	go p.loadInitial(context.WithoutCancel(ctx))
}

func (p *SessionProvider) loadInitial(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, initialLoadTimeout)
	defer cancel()

	sess, err := p.gateway.Session(ctx)
	if err != nil {
		p.log.Warn().Err(err).Msg("initial session lookup failed, treating client as signed out")
		sess = nil
	}
	p.apply(domain.SessionChange{Event: domain.EventInitialSession, Session: sess})
}

// apply is the subscription callback and the single writer of session state.
func (p *SessionProvider) apply(change domain.SessionChange) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	// A late initial lookup must not clobber a newer sign-in or sign-out.
	if change.Event == domain.EventInitialSession && !p.loading {
		p.mu.Unlock()
		return
	}
	p.user = change.UserOrNil()
	p.loading = false
	p.mu.Unlock()

	p.markReady()

	p.log.Debug().
		Str("event", string(change.Event)).
		Bool("signed_in", change.UserOrNil() != nil).
		Msg("session changed")
}

func (p *SessionProvider) markReady() {
	p.readyOnce.Do(func() { close(p.ready) })
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (p *SessionProvider) CurrentUser() *domain.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

// IsLoading reports whether the initial session is still being resolved.
func (p *SessionProvider) IsLoading() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// State returns the user and loading flag as one consistent snapshot.
func (p *SessionProvider) State() (*domain.User, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.user == nil {
		return nil, p.loading
	}
	u := *p.user
	return &u, p.loading
}

// Ready is closed once loading has finished or the provider was closed.
func (p *SessionProvider) Ready() <-chan struct{} {
	return p.ready
}

// WaitReady blocks until Ready or ctx is done, and reports whether the
// provider resolved in time.
func (p *SessionProvider) WaitReady(ctx context.Context) bool {
	select {
	case <-p.ready:
		return true
	case <-ctx.Done():
		return false
	}
}

func (p *SessionProvider) SignUp(ctx context.Context, email, password, fullName string) error {
	return p.gateway.SignUp(ctx, email, password, fullName)
}

func (p *SessionProvider) SignIn(ctx context.Context, email, password string) error {
	return p.gateway.SignIn(ctx, email, password)
}

func (p *SessionProvider) ResetPassword(ctx context.Context, email string) error {
	return p.gateway.ResetPassword(ctx, email)
}

func (p *SessionProvider) SignOut(ctx context.Context) error {
	return p.gateway.SignOut(ctx)
}

// Close tears down the subscription. Session changes arriving afterwards are
// ignored.
func (p *SessionProvider) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	unsubscribe := p.unsubscribe
	p.unsubscribe = nil
	p.mu.Unlock()

	if unsubscribe != nil {
		unsubscribe()
	}
	p.markReady()
}
