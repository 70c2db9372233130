package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"sync"

	"github.com/rs/zerolog"

	"github.com/chartflow/portal/internal/api/metrics"
	"github.com/chartflow/portal/internal/core/domain"
	"github.com/chartflow/portal/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrStopped is returned by Publish once the dispatcher's workers have exited.
var ErrStopped = errors.New("session dispatcher stopped")

type envelope struct {
	change domain.SessionChange
	done   chan struct{}
}

// Dispatcher fans session changes out to per-client listeners using a fixed
// set of workers sharded by client ID, guaranteeing per-client event ordering.
type Dispatcher struct {
	workers []chan envelope
	log     zerolog.Logger

	mu        sync.RWMutex
	listeners map[string]map[uint64]ports.SessionListener
	nextID    uint64

	stopped  chan struct{}
	stopOnce sync.Once
}

var _ ports.SessionPublisher = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:   make([]chan envelope, numWorkers),
		log:       log,
		listeners: make(map[string]map[uint64]ports.SessionListener),
		stopped:   make(chan struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan envelope, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	var wg sync.WaitGroup
	for i, ch := range d.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d.runWorker(ctx, i, ch)
		}()
	}
	go func() {
		wg.Wait()
		d.stopOnce.Do(func() { close(d.stopped) })
	}()
}

// Subscribe registers fn for changes published for clientID.
func (d *Dispatcher) Subscribe(clientID string, fn ports.SessionListener) ports.Unsubscribe {
	d.mu.Lock()
	defer d.mu.Unlock()

	id := d.nextID
	d.nextID++
	if d.listeners[clientID] == nil {
		d.listeners[clientID] = make(map[uint64]ports.SessionListener)
	}
	d.listeners[clientID][id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			d.mu.Lock()
			defer d.mu.Unlock()
			delete(d.listeners[clientID], id)
			if len(d.listeners[clientID]) == 0 {
				delete(d.listeners, clientID)
			}
		})
	}
}

// Publish hands change to the worker owning its client and waits until every
// listener has seen it, so a caller that returns after Publish knows the
// client's session state is already updated.
func (d *Dispatcher) Publish(ctx context.Context, change domain.SessionChange) error {
	env := envelope{change: change, done: make(chan struct{})}
	shard := d.shardIndex(change.ClientID)

	select {
	case d.workers[shard] <- env:
		metrics.SessionQueueDepth.WithLabelValues(strconv.Itoa(shard)).Set(float64(len(d.workers[shard])))
	case <-d.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-env.done:
		return nil
	case <-d.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// shardIndex maps a client ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(clientID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(clientID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) snapshot(clientID string) []ports.SessionListener {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fns := make([]ports.SessionListener, 0, len(d.listeners[clientID]))
	for _, fn := range d.listeners[clientID] {
		fns = append(fns, fn)
	}
	return fns
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan envelope) {
	depth := metrics.SessionQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case env := <-ch:
			depth.Set(float64(len(ch)))
			d.deliver(id, env)
		}
	}
}

func (d *Dispatcher) deliver(worker int, env envelope) {
	defer close(env.done)

	metrics.SessionEventsTotal.WithLabelValues(string(env.change.Event)).Inc()
	for _, fn := range d.snapshot(env.change.ClientID) {
		func() {
			defer func() {
				if r := recover(); r != nil {
					d.log.Error().
						Interface("panic", r).
						Str("client_id", env.change.ClientID).
						Int("worker_id", worker).
						Msg("session listener panicked")
				}
			}()
			fn(env.change)
		}()
	}
}
