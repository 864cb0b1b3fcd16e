package operation

import (
	"context"
	"sync"
)

// ActiveToken marks the lifetime of the owner of one or more controllers.
// It starts active and is ended exactly once; after End, controllers bound to it
// drop every deferred state change.
type ActiveToken struct {
	once sync.Once
	done chan struct{}
}

// NewActiveToken returns an active token.
func NewActiveToken() *ActiveToken {
	return &ActiveToken{done: make(chan struct{})}
}

// ActiveTokenFromContext returns a token that ends when ctx is done.
func ActiveTokenFromContext(ctx context.Context) *ActiveToken {
	t := NewActiveToken()
	context.AfterFunc(ctx, t.End)
	return t
}

// End invalidates the token. Calling End more than once is a no-op.
func (t *ActiveToken) End() {
	t.once.Do(func() { close(t.done) })
}

// Active reports whether End has not been called yet.
func (t *ActiveToken) Active() bool {
	select {
	case <-t.done:
		return false
	default:
		return true
	}
}

// Done returns a channel closed when the token ends.
func (t *ActiveToken) Done() <-chan struct{} {
	return t.done
}
