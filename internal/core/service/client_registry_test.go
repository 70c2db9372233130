package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartflow/portal/internal/core/domain"
)

type sizeRecorder struct {
	mu    sync.Mutex
	sizes []int
}

func (r *sizeRecorder) record(n int) {
	r.mu.Lock()
	r.sizes = append(r.sizes, n)
	r.mu.Unlock()
}

func (r *sizeRecorder) last() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.sizes) == 0 {
		return -1
	}
	return r.sizes[len(r.sizes)-1]
}

func newTestRegistry(ttl time.Duration) (*ClientRegistry, *fakeFactory, *sizeRecorder) {
	factory := newFakeFactory()
	sizes := &sizeRecorder{}
	reg := NewClientRegistry(factory, RegistryConfig{IdleTTL: ttl, OnSizeChange: sizes.record}, zerolog.Nop())
	return reg, factory, sizes
}

func TestClientRegistry_GetCreatesOncePerID(t *testing.T) {
	reg, factory, sizes := newTestRegistry(time.Hour)

	a, err := reg.Get(context.Background(), "a")
	require.NoError(t, err)
	again, err := reg.Get(context.Background(), "a")
	require.NoError(t, err)
	_, err = reg.Get(context.Background(), "b")
	require.NoError(t, err)

	assert.Same(t, a, again)
	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, 2, sizes.last())
	assert.Equal(t, 1, factory.gateway("a").listenerCount())
}

func TestClientRegistry_ClientsAreIsolated(t *testing.T) {
	reg, factory, _ := newTestRegistry(time.Hour)
	ctx := context.Background()

	a, _ := reg.Get(ctx, "a")
	b, _ := reg.Get(ctx, "b")
	waitReady(t, a.Session)
	waitReady(t, b.Session)

	require.NoError(t, a.Session.SignIn(ctx, "ada@example.com", "password123"))

	assert.NotNil(t, a.Session.CurrentUser())
	assert.Nil(t, b.Session.CurrentUser())
	assert.Equal(t, 0, factory.gateway("b").signInCalls)
}

func TestClientRegistry_SweepEvictsIdleClients(t *testing.T) {
	reg, factory, sizes := newTestRegistry(time.Minute)
	now := time.Now()
	reg.now = func() time.Time { return now }

	stale, _ := reg.Get(context.Background(), "stale")
	_, err := stale.Modal.Open(domain.ModeLogin)
	require.NoError(t, err)

	now = now.Add(45 * time.Second)
	_, _ = reg.Get(context.Background(), "fresh")

	now = now.Add(30 * time.Second)
	assert.Equal(t, 1, reg.Sweep())

	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, sizes.last())
	assert.Equal(t, 0, factory.gateway("stale").listenerCount())

	_, err = stale.Modal.Open(domain.ModeLogin)
	assert.ErrorIs(t, err, domain.ErrClientClosed)
}

func TestClientRegistry_EvictedClientIsRecreated(t *testing.T) {
	reg, _, _ := newTestRegistry(time.Hour)

	first, _ := reg.Get(context.Background(), "a")
	reg.Evict("a")
	second, _ := reg.Get(context.Background(), "a")

	assert.NotSame(t, first, second)
}

func TestClientRegistry_RunClosesEverythingOnCancel(t *testing.T) {
	reg, factory, sizes := newTestRegistry(time.Hour)
	_, _ = reg.Get(context.Background(), "a")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- reg.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0, sizes.last())
	assert.Equal(t, 0, factory.gateway("a").listenerCount())

	_, err := reg.Get(context.Background(), "b")
	assert.ErrorIs(t, err, domain.ErrClientClosed)
}

// A sweep that runs whenever Get reads the clock outside the registry lock
// must never tear down the client Get is about to return.
func TestClientRegistry_SweepDuringGetKeepsClient(t *testing.T) {
	reg, _, _ := newTestRegistry(time.Minute)
	base := time.Now()
	now := base
	sweeping := false
	reg.now = func() time.Time {
		if !sweeping && reg.mu.TryLock() {
			reg.mu.Unlock()
			sweeping = true
			reg.Sweep()
			sweeping = false
		}
		return now
	}

	fresh, err := reg.Get(context.Background(), "fresh")
	require.NoError(t, err)
	_, err = fresh.Modal.Open(domain.ModeLogin)
	require.NoError(t, err)

	// Revive a client that has gone idle past the TTL.
	now = base.Add(2 * time.Minute)
	revived, err := reg.Get(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Same(t, fresh, revived)
	_, err = revived.Modal.Open(domain.ModeLogin)
	require.NoError(t, err)
	assert.Equal(t, 1, reg.Len())
}
