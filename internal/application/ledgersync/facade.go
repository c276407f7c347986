// Package ledgersync keeps a client-side copy of the ledger that updates
// immediately on every action and persists the action in the background.
//
// Each action validates against the local state, computes the next state with
// the reconciliation engine, publishes it to subscribers and only then queues
// the durable write. A single writer goroutine drains the queue, so durable
// writes happen in the order the actions were taken.
package ledgersync

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/smartspend/backend/internal/application/adapter"
	"github.com/smartspend/backend/internal/domain/entity"
)

// ErrFacadeClosed is returned by actions issued after Close.
var ErrFacadeClosed = errors.New("ledger facade is closed")

const (
	defaultQueueSize    = 256
	defaultWriteTimeout = 10 * time.Second
)

// Option configures a Facade.
type Option func(*Facade)

// WithConflictHandler registers fn to be called from the writer goroutine for
// every failed durable write. fn must not call back into the facade.
func WithConflictHandler(fn func(Conflict)) Option {
	return func(f *Facade) { f.onConflict = fn }
}

// WithClock replaces time.Now for conflict timestamps.
func WithClock(now func() time.Time) Option {
	return func(f *Facade) { f.now = now }
}

// WithQueueSize sets how many durable writes may wait before actions block.
func WithQueueSize(n int) Option {
	return func(f *Facade) {
		if n > 0 {
			f.queueSize = n
		}
	}
}

// WithWriteTimeout bounds each durable write.
func WithWriteTimeout(d time.Duration) Option {
	return func(f *Facade) {
		if d > 0 {
			f.writeTimeout = d
		}
	}
}

type write struct {
	op       Operation
	entityID string
	persist  func(context.Context) error
	done     chan struct{}
}

// Facade is the optimistic client-side ledger.
type Facade struct {
	durable      DurableLedger
	ids          adapter.IDGenerator
	now          func() time.Time
	onConflict   func(Conflict)
	queueSize    int
	writeTimeout time.Duration

	// actionMu orders actions so that local state and queued writes agree.
	actionMu sync.Mutex
	closed   bool
	queue    chan write
	stopped  chan struct{}

	stateMu sync.RWMutex
	state   entity.FinancialSnapshot

	subMu       sync.Mutex
	nextSubID   int
	subscribers map[int]func(entity.FinancialSnapshot)

	conflictMu sync.Mutex
	conflicts  []Conflict
}

// New creates a facade over durable with an empty local state and starts its
// writer. Call Refetch to load the durable state and Close to stop the writer.
func New(durable DurableLedger, ids adapter.IDGenerator, opts ...Option) *Facade {
	f := &Facade{
		durable:      durable,
		ids:          ids,
		now:          time.Now,
		queueSize:    defaultQueueSize,
		writeTimeout: defaultWriteTimeout,
		subscribers:  make(map[int]func(entity.FinancialSnapshot)),
		stopped:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.queue = make(chan write, f.queueSize)

	go f.run()
	return f
}

// State returns a copy of the current local state.
func (f *Facade) State() entity.FinancialSnapshot {
	f.stateMu.RLock()
	defer f.stateMu.RUnlock()
	return f.state.Clone()
}

// Subscribe registers fn to receive every new local state. fn runs while the
// action that produced the state is still in progress and must not call back
// into the facade. The returned function removes the subscription.
func (f *Facade) Subscribe(fn func(entity.FinancialSnapshot)) func() {
	f.subMu.Lock()
	defer f.subMu.Unlock()

	id := f.nextSubID
	f.nextSubID++
	f.subscribers[id] = fn

	return func() {
		f.subMu.Lock()
		defer f.subMu.Unlock()
		delete(f.subscribers, id)
	}
}

// Conflicts returns the failed durable writes recorded since the last Refetch.
func (f *Facade) Conflicts() []Conflict {
	f.conflictMu.Lock()
	defer f.conflictMu.Unlock()
	out := make([]Conflict, len(f.conflicts))
	copy(out, f.conflicts)
	return out
}

// Flush waits until every write queued before the call has been attempted.
func (f *Facade) Flush(ctx context.Context) error {
	f.actionMu.Lock()
	if f.closed {
		f.actionMu.Unlock()
		<-f.stopped
		return nil
	}
	done, err := f.enqueueMarker(ctx)
	f.actionMu.Unlock()
	if err != nil {
		return err
	}

	return waitDone(ctx, done)
}

// Refetch waits for pending writes, replaces the local state with the durable
// snapshot and clears recorded conflicts. Actions block until it returns, so
// no write can be queued between the drain and the snapshot read.
func (f *Facade) Refetch(ctx context.Context) error {
	f.actionMu.Lock()
	defer f.actionMu.Unlock()
	if f.closed {
		return ErrFacadeClosed
	}

	done, err := f.enqueueMarker(ctx)
	if err != nil {
		return err
	}
	if err := waitDone(ctx, done); err != nil {
		return err
	}

	snapshot, err := f.durable.Snapshot(ctx)
	if err != nil {
		return err
	}

	f.conflictMu.Lock()
	f.conflicts = nil
	f.conflictMu.Unlock()

	f.setState(snapshot.Clone())
	slog.Debug("Ledger state refetched",
		"planned_items", len(snapshot.PlannedItems),
		"actual_items", len(snapshot.ActualItems),
	)
	return nil
}

// enqueueMarker queues a write with no payload whose done channel closes once
// everything ahead of it has been attempted. Callers hold actionMu.
func (f *Facade) enqueueMarker(ctx context.Context) (chan struct{}, error) {
	done := make(chan struct{})
	select {
	case f.queue <- write{done: done}:
		return done, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func waitDone(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains the queue and stops the writer. Later actions return ErrFacadeClosed.
func (f *Facade) Close() {
	f.actionMu.Lock()
	if !f.closed {
		f.closed = true
		close(f.queue)
	}
	f.actionMu.Unlock()
	<-f.stopped
}

// apply runs one user action: mutate works on a copy of the state and may
// reject the action, in which case nothing is published or queued.
func (f *Facade) apply(op Operation, entityID string, mutate func(*entity.FinancialSnapshot) error, persist func(context.Context) error) error {
	f.actionMu.Lock()
	defer f.actionMu.Unlock()

	if f.closed {
		return ErrFacadeClosed
	}

	next := f.State()
	if err := mutate(&next); err != nil {
		return err
	}

	f.setState(next)
	f.queue <- write{op: op, entityID: entityID, persist: persist}
	return nil
}

// setState stores and publishes next. Callers hold actionMu.
func (f *Facade) setState(next entity.FinancialSnapshot) {
	f.stateMu.Lock()
	f.state = next
	f.stateMu.Unlock()

	f.subMu.Lock()
	subscribers := make([]func(entity.FinancialSnapshot), 0, len(f.subscribers))
	for _, fn := range f.subscribers {
		subscribers = append(subscribers, fn)
	}
	f.subMu.Unlock()

	for _, fn := range subscribers {
		fn(next.Clone())
	}
}

func (f *Facade) run() {
	defer close(f.stopped)

	for w := range f.queue {
		if w.persist != nil {
			ctx, cancel := context.WithTimeout(context.Background(), f.writeTimeout)
			err := w.persist(ctx)
			cancel()
			if err != nil {
				f.recordConflict(w, err)
			}
		}
		if w.done != nil {
			close(w.done)
		}
	}
}

func (f *Facade) recordConflict(w write, err error) {
	conflict := Conflict{
		Operation: w.op,
		EntityID:  w.entityID,
		Err:       err,
		At:        f.now(),
	}

	f.conflictMu.Lock()
	f.conflicts = append(f.conflicts, conflict)
	f.conflictMu.Unlock()

	slog.Warn("Durable ledger write failed, local state may be stale",
		"operation", w.op,
		"entity_id", w.entityID,
		"error", err,
	)

	if f.onConflict != nil {
		f.onConflict(conflict)
	}
}
