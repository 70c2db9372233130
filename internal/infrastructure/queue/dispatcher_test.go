package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartflow/portal/internal/core/domain"
)

func startDispatcher(t *testing.T, workers int) *Dispatcher {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	d := NewDispatcher(workers, zerolog.Nop())
	d.Start(ctx)
	return d
}

func TestDispatcher_PublishWaitsForDelivery(t *testing.T) {
	d := startDispatcher(t, 4)

	var got domain.AuthEvent
	d.Subscribe("c1", func(change domain.SessionChange) { got = change.Event })

	err := d.Publish(context.Background(), domain.SessionChange{ClientID: "c1", Event: domain.EventSignedIn})
	require.NoError(t, err)
	assert.Equal(t, domain.EventSignedIn, got)
}

func TestDispatcher_OnlyTargetClientIsNotified(t *testing.T) {
	d := startDispatcher(t, 4)

	var mu sync.Mutex
	seen := map[string]int{}
	for _, id := range []string{"a", "b"} {
		d.Subscribe(id, func(domain.SessionChange) {
			mu.Lock()
			seen[id]++
			mu.Unlock()
		})
	}

	require.NoError(t, d.Publish(context.Background(), domain.SessionChange{ClientID: "a", Event: domain.EventSignedOut}))

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, seen["a"])
	assert.Equal(t, 0, seen["b"])
}

func TestDispatcher_PreservesPerClientOrder(t *testing.T) {
	d := startDispatcher(t, 3)

	var mu sync.Mutex
	var order []string
	d.Subscribe("c1", func(change domain.SessionChange) {
		mu.Lock()
		order = append(order, change.Session.AccessToken)
		mu.Unlock()
	})

	want := make([]string, 0, 20)
	for i := range 20 {
		token := fmt.Sprintf("t%d", i)
		want = append(want, token)
		require.NoError(t, d.Publish(context.Background(), domain.SessionChange{
			ClientID: "c1",
			Event:    domain.EventTokenRefreshed,
			Session:  &domain.Session{AccessToken: token},
		}))
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, want, order)
}

func TestDispatcher_UnsubscribeStopsDelivery(t *testing.T) {
	d := startDispatcher(t, 2)

	calls := 0
	unsubscribe := d.Subscribe("c1", func(domain.SessionChange) { calls++ })
	unsubscribe()
	unsubscribe()

	require.NoError(t, d.Publish(context.Background(), domain.SessionChange{ClientID: "c1", Event: domain.EventSignedIn}))
	assert.Equal(t, 0, calls)
}

func TestDispatcher_ListenerPanicDoesNotStopWorker(t *testing.T) {
	d := startDispatcher(t, 1)

	d.Subscribe("c1", func(domain.SessionChange) { panic("boom") })
	delivered := false
	d.Subscribe("c2", func(domain.SessionChange) { delivered = true })

	require.NoError(t, d.Publish(context.Background(), domain.SessionChange{ClientID: "c1", Event: domain.EventSignedIn}))
	require.NoError(t, d.Publish(context.Background(), domain.SessionChange{ClientID: "c2", Event: domain.EventSignedIn}))
	assert.True(t, delivered)
}

func TestDispatcher_PublishAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	d := NewDispatcher(2, zerolog.Nop())
	d.Start(ctx)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case <-d.stopped:
			return true
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	err := d.Publish(context.Background(), domain.SessionChange{ClientID: "c1"})
	assert.ErrorIs(t, err, ErrStopped)
}

func TestDispatcher_ShardIndexIsStable(t *testing.T) {
	d := NewDispatcher(8, zerolog.Nop())
	for _, id := range []string{"a", "client-42", "f47ac10b-58cc-4372-a567-0e02b2c3d479"} {
		first := d.shardIndex(id)
		assert.Equal(t, first, d.shardIndex(id))
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, 8)
	}
}
