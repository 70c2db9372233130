package service

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

// Client bundles the per-browser auth state.
type Client struct {
	ID      string
	Gateway ports.Gateway
	Session *SessionProvider
	Modal   *AuthModal

	mu       sync.Mutex
	lastSeen time.Time
}

func (c *Client) touch(now time.Time) {
	c.mu.Lock()
	c.lastSeen = now
	c.mu.Unlock()
}

func (c *Client) idleSince() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastSeen
}

func (c *Client) close() {
	c.Modal.Teardown()
	c.Session.Close()
}

// RegistryConfig tunes client eviction.
type RegistryConfig struct {
	IdleTTL       time.Duration
	SweepInterval time.Duration
	// OnSizeChange is called with the number of live clients after every
	// insert or eviction.
	OnSizeChange func(n int)
}

// ClientRegistry creates clients lazily and evicts idle ones.
type ClientRegistry struct {
	factory ports.GatewayFactory
	cfg     RegistryConfig
	log     zerolog.Logger
	now     func() time.Time

	mu      sync.Mutex
	clients map[string]*Client
	closed  bool
}

func NewClientRegistry(factory ports.GatewayFactory, cfg RegistryConfig, log zerolog.Logger) *ClientRegistry {
	if cfg.IdleTTL <= 0 {
		cfg.IdleTTL = 30 * time.Minute
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Minute
	}
	return &ClientRegistry{
		factory: factory,
		cfg:     cfg,
		log:     log,
		now:     time.Now,
		clients: make(map[string]*Client),
	}
}

// Get returns the client for id, creating and starting it on first use.
func (r *ClientRegistry) Get(ctx context.Context, id string) (*Client, error) {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil, domain.ErrClientClosed
	}
	now := r.now()
	c, ok := r.clients[id]
	if ok {
		c.touch(now)
	} else {
		gw := r.factory.New(id)
		clog := r.log.With().Str("client_id", id).Logger()
		provider := NewSessionProvider(gw, clog)
		c = &Client{
			ID:       id,
			Gateway:  gw,
			Session:  provider,
			Modal:    NewAuthModal(provider, clog),
			lastSeen: now,
		}
		r.clients[id] = c
	}
	size := len(r.clients)
	r.mu.Unlock()

	if !ok {
		c.Session.Start(ctx)
		r.log.Debug().Str("client_id", id).Str("gateway", r.factory.Name()).Msg("client created")
		r.reportSize(size)
	}
	return c, nil
}

// Len returns the number of live clients.
func (r *ClientRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Evict closes and forgets the client with id, if present.
func (r *ClientRegistry) Evict(id string) {
	r.mu.Lock()
	c, ok := r.clients[id]
	delete(r.clients, id)
	size := len(r.clients)
	r.mu.Unlock()

	if ok {
		c.close()
		r.reportSize(size)
	}
}

// Sweep evicts every client idle for longer than the configured TTL and
// returns how many were removed.
func (r *ClientRegistry) Sweep() int {
	cutoff := r.now().Add(-r.cfg.IdleTTL)

	r.mu.Lock()
	var stale []*Client
	for id, c := range r.clients {
		if c.idleSince().Before(cutoff) {
			stale = append(stale, c)
			delete(r.clients, id)
		}
	}
	size := len(r.clients)
	r.mu.Unlock()

	for _, c := range stale {
		c.close()
	}
	if len(stale) > 0 {
		r.log.Info().Int("evicted", len(stale)).Int("remaining", size).Msg("idle clients evicted")
		r.reportSize(size)
	}
	return len(stale)
}

// Run sweeps idle clients until ctx is cancelled, then closes all clients.
func (r *ClientRegistry) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.CloseAll()
			return nil
		case <-ticker.C:
			r.Sweep()
		}
	}
}

// CloseAll tears every client down. Later Get calls fail with ErrClientClosed.
func (r *ClientRegistry) CloseAll() {
	r.mu.Lock()
	r.closed = true
	clients := r.clients
	r.clients = make(map[string]*Client)
	r.mu.Unlock()

	for _, c := range clients {
		c.close()
	}
	r.reportSize(0)
}

func (r *ClientRegistry) reportSize(n int) {
	if r.cfg.OnSizeChange != nil {
		r.cfg.OnSizeChange(n)
	}
}
