package operation

type options[T any] struct {
	initial State[T]
	owner   *ActiveToken
}

// Option configures a Controller.
type Option[T any] func(*options[T])

// WithInitialData seeds the controller as resolved with v.
func WithInitialData[T any](v T) Option[T] {
	return func(o *options[T]) {
		o.initial = resolved(v)
	}
}

// WithInitialError seeds the controller as rejected with err.
// A nil err is ignored.
func WithInitialError[T any](err error) Option[T] {
	return func(o *options[T]) {
		if err != nil {
			o.initial = rejected[T](err)
		}
	}
}

// WithInitialStatus sets the initial status, keeping only the payload that belongs to it.
// Combined with WithInitialData or WithInitialError, options apply in order.
func WithInitialStatus[T any](s Status) Option[T] {
	return func(o *options[T]) {
		o.initial = withStatus(o.initial, s)
	}
}

// WithActiveToken binds the controller to an owner token shared with other controllers.
// Settlements are dropped once either the owner token or the controller itself is closed.
func WithActiveToken[T any](t *ActiveToken) Option[T] {
	return func(o *options[T]) {
		if t != nil {
			o.owner = t
		}
	}
}
