// Package async provides a small generic promise type for asynchronous results.
//
// A Future is the read side: it settles exactly once with a value or an error and can be awaited
// with Await, AwaitContext or AwaitWithTimeout, polled with IsComplete, or selected on through Done.
// A Promise is the write side: it is created unsettled with NewPromise and settled imperatively with
// Resolve or Reject. The first settlement wins; later ones are ignored.
//
// Async starts a function in its own goroutine and returns a Future for its result. Resolved and
// Rejected return futures that are already settled. Then chains a continuation onto a Future.
//
// # Usage
//
//	p := async.NewPromise[string]()
//	go func() {
//	    p.Resolve("ready")
//	}()
//
//	v, err := p.Future().Await()
//
//	user := async.Async(ctx, id, func(ctx context.Context, id string) (*User, error) {
//	    return loadUser(ctx, id)
//	})
//
// # Combining Futures
//
// WaitAll waits for every future and returns the values in argument order, or the first error in
// argument order. WaitAny returns the index and result of whichever future settles first:
//
//	users, err := async.WaitAll(loadUser(ctx, "a"), loadUser(ctx, "b"))
//
//	i, v, err := async.WaitAny(primary, fallback)
//
// Then runs its continuation once the source settles and passes along both the value and the
// error, so the continuation decides whether to recover:
//
//	names := async.Then(users, func(u *User, err error) (string, error) {
//	    if err != nil {
//	        return "", err
//	    }
//	    return u.Name, nil
//	})
//
// # Error Handling
//
// Futures carry whatever error the producer settled them with. The package itself only returns
// ErrTimeout from AwaitWithTimeout and ErrNoFutures from WaitAny.
//
// # Cancellation
//
// Futures cannot be cancelled. A context passed to Async is checked before the function starts and
// is handed to the function; AwaitContext stops waiting but does not stop the producer.
package async
