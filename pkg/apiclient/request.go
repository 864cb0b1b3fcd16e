package apiclient

import (
	"context"
	"maps"
	"net/http"
	"slices"
	"time"
)

// RequestEditorFn edits the built request before it is sent. Editors run after the client
// has set its own headers and may change anything, including the method.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// RequestConfig describes one call. It is built fresh per call from RequestOptions and
// discarded afterwards.
type RequestConfig struct {
	// Token is sent as "Authorization: Bearer <Token>" when non-empty.
	Token string
	// Data is the body payload, encoded as JSON. Nil means no body.
	Data any
	// Headers are applied last and win over headers set by the client.
	Headers map[string]string
	// Method overrides the default: POST when Data is set, GET otherwise.
	Method string
	// Timeout bounds this call on top of the context deadline. Zero uses the client default.
	Timeout time.Duration
	// Editors are pass-through adjustments of the outgoing request.
	Editors []RequestEditorFn
}

// method resolves the HTTP method for the call.
func (c RequestConfig) method() string {
	if c.Method != "" {
		return c.Method
	}
	if c.Data != nil {
		return http.MethodPost
	}
	return http.MethodGet
}

// RequestOption configures a single call.
type RequestOption func(*RequestConfig)

// WithToken authenticates the call with a bearer token. Empty tokens are ignored.
func WithToken(token string) RequestOption {
	return func(c *RequestConfig) {
		c.Token = token
	}
}

// WithData sets the JSON body payload; the method defaults to POST.
func WithData(data any) RequestOption {
	return func(c *RequestConfig) {
		c.Data = data
	}
}

// WithHeader adds a custom header.
func WithHeader(key, value string) RequestOption {
	return func(c *RequestConfig) {
		if key == "" {
			return
		}
		if c.Headers == nil {
			c.Headers = make(map[string]string)
		}
		c.Headers[key] = value
	}
}

// WithHeaders adds multiple custom headers.
func WithHeaders(headers map[string]string) RequestOption {
	return func(c *RequestConfig) {
		for k, v := range headers {
			WithHeader(k, v)(c)
		}
	}
}

// WithMethod overrides the HTTP method.
func WithMethod(method string) RequestOption {
	return func(c *RequestConfig) {
		c.Method = method
	}
}

// WithTimeout bounds the call duration.
func WithTimeout(d time.Duration) RequestOption {
	return func(c *RequestConfig) {
		if d > 0 {
			c.Timeout = d
		}
	}
}

// WithRequestEditor appends a pass-through request editor.
func WithRequestEditor(fn RequestEditorFn) RequestOption {
	return func(c *RequestConfig) {
		if fn != nil {
			c.Editors = append(c.Editors, fn)
		}
	}
}

// WithConfig copies an explicit RequestConfig into the call. Later options still apply on top.
func WithConfig(cfg RequestConfig) RequestOption {
	return func(c *RequestConfig) {
		*c = cfg
		c.Headers = maps.Clone(cfg.Headers)
		c.Editors = slices.Clone(cfg.Editors)
	}
}

func buildRequestConfig(opts []RequestOption) RequestConfig {
	var cfg RequestConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}
