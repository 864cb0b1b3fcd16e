package async

import (
	"context"
	"sync"
	"time"
)

// Future represents the eventual result of an asynchronous computation.
// A Future settles exactly once, either with a value or with an error.
type Future[T any] struct {
	result T
	err    error
	once   sync.Once
	done   chan struct{}
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// settle records the outcome. Only the first call has any effect.
func (f *Future[T]) settle(result T, err error) bool {
	settled := false
	f.once.Do(func() {
		f.result = result
		f.err = err
		close(f.done)
		settled = true
	})
	return settled
}

// Await blocks until the future settles and returns its result and error.
func (f *Future[T]) Await() (T, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext waits for the future to settle or for ctx to be done, whichever comes first.
// The future itself keeps running when ctx is done.
func (f *Future[T]) AwaitContext(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// AwaitWithTimeout waits for the future to settle with a timeout.
// If the timeout occurs before settlement, returns ErrTimeout.
func (f *Future[T]) AwaitWithTimeout(timeout time.Duration) (T, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-f.done:
		return f.result, f.err
	case <-timer.C:
		var zero T
		return zero, ErrTimeout
	}
}

// Done returns a channel that is closed once the future has settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// IsComplete reports whether the future has settled without blocking.
func (f *Future[T]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Promise is the write side of a Future. It lets the caller settle the future
// imperatively, which is how tests and callback-based sources hand results over.
type Promise[T any] struct {
	future *Future[T]
}

// NewPromise creates an unsettled promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{future: newFuture[T]()}
}

// Future returns the read side of the promise.
func (p *Promise[T]) Future() *Future[T] {
	return p.future
}

// Resolve settles the future with v. Returns false if it was already settled.
func (p *Promise[T]) Resolve(v T) bool {
	return p.future.settle(v, nil)
}

// Reject settles the future with err. Returns false if it was already settled.
func (p *Promise[T]) Reject(err error) bool {
	var zero T
	return p.future.settle(zero, err)
}

// Resolved returns a future already settled with v.
func Resolved[T any](v T) *Future[T] {
	f := newFuture[T]()
	f.settle(v, nil)
	return f
}

// Rejected returns a future already settled with err.
func Rejected[T any](err error) *Future[T] {
	f := newFuture[T]()
	var zero T
	f.settle(zero, err)
	return f
}

// Async executes a function asynchronously and returns a Future.
// The function accepts a context.Context and a parameter of any type P, and returns (T, error).
func Async[P any, T any](ctx context.Context, param P, fn func(context.Context, P) (T, error)) *Future[T] {
	f := newFuture[T]()

	go func() {
		// Early exit prevents running work for an already canceled context
		select {
		case <-ctx.Done():
			var zero T
			f.settle(zero, ctx.Err())
			return
		default:
		}

		res, err := fn(ctx, param)
		f.settle(res, err)
	}()

	return f
}

// Then returns a future that settles with fn applied to the outcome of f,
// once f has settled.
func Then[T any, U any](f *Future[T], fn func(T, error) (U, error)) *Future[U] {
	next := newFuture[U]()

	go func() {
		<-f.done
		next.settle(fn(f.result, f.err))
	}()

	return next
}

// WaitAll waits for all futures to complete and returns a slice of their results and the
// first error encountered, in argument order.
func WaitAll[T any](futures ...*Future[T]) ([]T, error) {
	results := make([]T, len(futures))

	for i, future := range futures {
		result, err := future.Await()
		results[i] = result
		if err != nil {
			return results, err
		}
	}

	return results, nil
}

// WaitAny waits for any of the futures to complete and returns the index of the completed future,
// its result, and any error it might have returned.
func WaitAny[T any](futures ...*Future[T]) (int, T, error) {
	if len(futures) == 0 {
		var zero T
		return -1, zero, ErrNoFutures
	}

	type outcome struct {
		index  int
		result T
		err    error
	}

	// Buffered so late finishers never block
	done := make(chan outcome, len(futures))

	for i, future := range futures {
		go func(index int, f *Future[T]) {
			result, err := f.Await()
			done <- outcome{index, result, err}
		}(i, future)
	}

	res := <-done
	return res.index, res.result, res.err
}
