// Package operation tracks the lifecycle of a single asynchronous task for interactive callers.
//
// It answers the question every screen, command or request handler asks about background work:
// has it started, is it still running, and did it produce a value or an error? The answer is an
// immutable State snapshot owned by a Controller.
//
// # Architecture
//
// A Controller stores exactly one State at a time. The state moves through
//
//	idle -> pending -> resolved | rejected
//
// and is changed only by four mutators:
//
//   - Run takes an *async.Future, switches to pending before returning, and records the
//     future's outcome once it settles.
//   - SetData resolves the controller with a value directly.
//   - SetError rejects the controller with an error directly.
//   - Reset restores the snapshot the controller was created with.
//
// Status is the only stored flag. The IsIdle, IsLoading, IsSuccess and IsError predicates are
// computed from it, so they can never disagree with each other. Data is set only when resolved
// and Err only when rejected; moving to another status clears the payload.
//
// State changes are guarded by a mutex. Subscribers registered with Subscribe are called after
// the lock is released, on the goroutine that caused the change, in mutation order.
//
// # Usage
//
//	books := operation.New[[]Book]()
//	defer books.Close()
//
//	done, err := books.Run(apiclient.Fetch[[]Book](ctx, client, "books"))
//	if err != nil {
//	    // programming error: nil future
//	}
//
//	st := books.State()
//	if st.IsLoading() {
//	    fmt.Println("loading...")
//	}
//
//	_, _ = done.Await() // settles after the controller has recorded the outcome
//	st = books.State()
//	switch {
//	case st.IsSuccess():
//	    render(st.Data)
//	case st.IsError():
//	    showError(st.Err)
//	}
//
// # Initial State
//
// Controllers start idle unless configured otherwise:
//
//	user := operation.New(operation.WithInitialData[*User](cached))
//	retry := operation.New(
//	    operation.WithInitialError[*User](errOffline),
//	    operation.WithInitialStatus[*User](operation.StatusRejected),
//	)
//
// Options apply in order and the last one wins, so data and error are never both set.
//
// # Owner Lifetime
//
// Every controller has an ActiveToken that ends on Close. Controllers can also be bound to a
// shared owner token with WithActiveToken, one per screen, request or other logical task, or to
// a context with ActiveTokenFromContext. Once a token ends, outcomes arriving later are dropped
// without error or log output, and subscribers hear nothing more. The underlying work is not
// cancelled; futures cannot be unsubscribed.
//
//	owner := operation.ActiveTokenFromContext(r.Context())
//	books := operation.New(operation.WithActiveToken[[]Book](owner))
//
// # Overlapping Runs
//
// Only the latest mutation counts. A Run whose future settles after a newer Run, SetData,
// SetError or Reset does not touch the state. This keeps a slow first request from overwriting
// the result of a faster second one.
//
// # Error Handling
//
// Run returns ErrInvalidArgument for a nil future and leaves the state untouched. Failures of
// the work itself are not returned by the controller; they are recorded as a rejected State and
// passed through by the future Run returns.
//
// # Concurrency
//
// All methods are safe for concurrent use. Subscribers must not call mutators of the same
// controller synchronously; start a goroutine if a change has to trigger another one.
package operation
