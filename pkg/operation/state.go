package operation

// Status is the lifecycle stage of an asynchronous operation.
type Status int

const (
	// StatusIdle is the state before any work was started, and after Reset on a default controller.
	StatusIdle Status = iota
	// StatusPending means a Run is in flight and its outcome has not been recorded yet.
	StatusPending
	// StatusResolved means the latest outcome is a value, available as State.Data.
	StatusResolved
	// StatusRejected means the latest outcome is an error, available as State.Err.
	StatusRejected
)

// String returns the lower-case status name used in logs and tests.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusResolved:
		return "resolved"
	case StatusRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// State is an immutable snapshot of an operation.
// Data is meaningful only when Status is StatusResolved, Err only when it is StatusRejected;
// both are zero otherwise.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
}

// IsIdle reports whether no work has been started. Callers typically render nothing or a
// placeholder in this state; it is distinct from a resolved zero value.
func (s State[T]) IsIdle() bool { return s.Status == StatusIdle }

// IsLoading reports whether a Run is in flight. Data and Err are always zero while loading,
// so stale results from an earlier run are never shown next to a spinner.
func (s State[T]) IsLoading() bool { return s.Status == StatusPending }

// IsSuccess reports whether the latest outcome is a value. Data may still be the zero value,
// for example a nil user after logout.
func (s State[T]) IsSuccess() bool { return s.Status == StatusResolved }

// IsError reports whether the latest outcome is an error held in Err.
func (s State[T]) IsError() bool { return s.Status == StatusRejected }

func pending[T any]() State[T] {
	return State[T]{Status: StatusPending}
}

func resolved[T any](v T) State[T] {
	return State[T]{Status: StatusResolved, Data: v}
}

func rejected[T any](err error) State[T] {
	return State[T]{Status: StatusRejected, Err: err}
}

// withStatus moves s to status, dropping any payload that does not belong to it.
func withStatus[T any](s State[T], status Status) State[T] {
	out := State[T]{Status: status}
	switch status {
	case StatusResolved:
		out.Data = s.Data
	case StatusRejected:
		out.Err = s.Err
	}
	return out
}
