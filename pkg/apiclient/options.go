package apiclient

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ReauthenticateFunc clears the current credential after the API answered 401.
type ReauthenticateFunc func(ctx context.Context) error

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the transport used for every call. Nil is ignored.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) {
		if d != nil {
			c.doer = d
		}
	}
}

// WithReauthenticate sets the callback invoked on a 401 response, before the reload callback.
func WithReauthenticate(fn ReauthenticateFunc) Option {
	return func(c *Client) {
		c.reauthenticate = fn
	}
}

// WithReload sets the callback that restarts the application flow after re-authentication,
// the equivalent of reloading the current page.
func WithReload(fn func()) Option {
	return func(c *Client) {
		c.reload = fn
	}
}

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUserAgent sets the User-Agent header. Empty values are ignored.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithDefaultTimeout bounds every call that does not set its own timeout.
func WithDefaultTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}
