package operation

import "errors"

// ErrInvalidArgument is returned by Run when it is not given a future.
// It signals a programming error and is never stored in the operation state.
var ErrInvalidArgument = errors.New("the argument passed to run must be a promise; maybe a function that's passed isn't returning anything")
