package operation

import (
	"sync"

	"github.com/jeanmarcjones/bookshelf/pkg/async"
)

// Controller tracks a single asynchronous task and owns its reported State.
// Methods are safe for concurrent use. The method set is fixed for the lifetime of the
// controller, so method values such as c.Run can be stored and compared freely.
// Zero value is not usable; use New to create instances.
type Controller[T any] struct {
	// notifyMu serializes mutate-then-notify so listeners observe snapshots in mutation order
	notifyMu sync.Mutex

	mu        sync.Mutex
	initial   State[T]
	state     State[T]
	version   uint64
	listeners map[uint64]func(State[T])
	nextID    uint64

	self  *ActiveToken
	owner *ActiveToken
}

// New creates a controller in its initial state (idle unless configured otherwise).
func New[T any](opts ...Option[T]) *Controller[T] {
	o := &options[T]{}
	for _, opt := range opts {
		opt(o)
	}

	return &Controller[T]{
		initial:   o.initial,
		state:     o.initial,
		listeners: make(map[uint64]func(State[T])),
		self:      NewActiveToken(),
		owner:     o.owner,
	}
}

// State returns the current snapshot.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Run moves the controller to pending and tracks f until it settles.
//
// The pending transition happens before Run returns. The returned future settles with the
// same outcome as f once the controller has recorded it, so awaiting it observes the final
// state. The outcome is recorded only if the controller is still active and no other
// mutation (Run, SetData, SetError, Reset) happened after this call; otherwise it is
// dropped silently.
//
// A nil f returns ErrInvalidArgument without touching the state.
func (c *Controller[T]) Run(f *async.Future[T]) (*async.Future[T], error) {
	if f == nil {
		return nil, ErrInvalidArgument
	}

	version := c.mutate(pending[T]())

	return async.Then(f, func(v T, err error) (T, error) {
		if err != nil {
			c.settle(version, rejected[T](err))
		} else {
			c.settle(version, resolved(v))
		}
		return v, err
	}), nil
}

// SetData resolves the operation with v.
func (c *Controller[T]) SetData(v T) {
	c.mutate(resolved(v))
}

// SetError rejects the operation with err.
func (c *Controller[T]) SetError(err error) {
	c.mutate(rejected[T](err))
}

// Reset restores the snapshot the controller was created with.
func (c *Controller[T]) Reset() {
	c.mutate(c.initial)
}

// Subscribe registers fn to receive every new snapshot. Listeners run synchronously on the
// goroutine that caused the change and must not call mutators of the same controller.
// The returned function removes the listener.
func (c *Controller[T]) Subscribe(fn func(State[T])) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

// Close tears the controller down. Pending runs keep going but their outcomes are dropped,
// every later mutation is ignored and listeners hear nothing more. Close is idempotent.
func (c *Controller[T]) Close() {
	c.self.End()
}

// Active reports whether the controller and its owner token, if any, are still alive.
func (c *Controller[T]) Active() bool {
	if !c.self.Active() {
		return false
	}
	return c.owner == nil || c.owner.Active()
}

// mutate replaces the state unconditionally (while active) and returns the new version.
func (c *Controller[T]) mutate(next State[T]) uint64 {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	c.version++
	version := c.version
	if !c.Active() {
		c.mu.Unlock()
		return version
	}
	c.state = next
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, next)
	return version
}

// settle applies a run outcome only if the run is still the latest mutation.
func (c *Controller[T]) settle(version uint64, next State[T]) {
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()

	c.mu.Lock()
	if version != c.version || !c.Active() {
		c.mu.Unlock()
		return
	}
	c.state = next
	listeners := c.snapshotListeners()
	c.mu.Unlock()

	notify(listeners, next)
}

func (c *Controller[T]) snapshotListeners() []func(State[T]) {
	if len(c.listeners) == 0 {
		return nil
	}
	out := make([]func(State[T]), 0, len(c.listeners))
	for _, fn := range c.listeners {
		out = append(out, fn)
	}
	return out
}

func notify[T any](listeners []func(State[T]), s State[T]) {
	for _, fn := range listeners {
		fn(s)
	}
}
