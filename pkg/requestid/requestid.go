package requestid

import (
	"context"
	"regexp"

	"github.com/google/uuid"
)

const (
	// Header carries the request id on outgoing requests.
	Header      = "X-Request-ID"
	maxIDLength = 128
	idPattern   = "^[a-zA-Z0-9_-]+$"
)

var validIDRegex = regexp.MustCompile(idPattern)

// New generates a fresh request id.
func New() string {
	return uuid.New().String()
}

// Ensure returns the request id stored in ctx, or stores and returns a new one when ctx has
// none or holds a value that is unsafe to put on the wire.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); IsValid(id) {
		return ctx, id
	}
	id := New()
	return WithContext(ctx, id), id
}

// IsValid reports whether id is non-empty, bounded, and limited to [a-zA-Z0-9_-].
func IsValid(id string) bool {
	if len(id) == 0 || len(id) > maxIDLength {
		return false
	}
	return validIDRegex.MatchString(id)
}
