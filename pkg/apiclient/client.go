package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/jeanmarcjones/bookshelf/pkg/async"
	"github.com/jeanmarcjones/bookshelf/pkg/config"
	"github.com/jeanmarcjones/bookshelf/pkg/logger"
	"github.com/jeanmarcjones/bookshelf/pkg/requestid"
)

// maxBodySize caps how much of a response body is read into memory
const maxBodySize = 10 << 20

// Client calls the bookshelf API with bearer authentication and JSON bodies.
// It keeps no per-call state and never stores credentials; tokens are passed per call.
// Zero value is not usable; use New to create instances.
type Client struct {
	baseURL        string
	doer           Doer
	reauthenticate ReauthenticateFunc
	reload         func()
	logger         *slog.Logger
	userAgent      string
	timeout        time.Duration
}

// New creates a client for baseURL. Endpoints are appended as baseURL + "/" + endpoint.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		doer: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		logger:    logger.Discard(),
		userAgent: "bookshelf-client/1.0",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewFromConfig creates a client from process configuration.
func NewFromConfig(cfg config.API, opts ...Option) *Client {
	base := []Option{
		WithUserAgent(cfg.UserAgent),
		WithDefaultTimeout(cfg.Timeout),
	}
	return New(cfg.BaseURL, append(base, opts...)...)
}

// URL returns the address used for endpoint.
func (c *Client) URL(endpoint string) string {
	return c.baseURL + "/" + endpoint
}

// Do performs one call and decodes a 2xx JSON body into out (skipped when out is nil).
//
// Failures:
//   - 401: the reauthenticate and reload callbacks run, then a *ResponseError carrying
//     {"message":"Please re-authenticate"} is returned (matches ErrAuthenticationExpired).
//   - other non-2xx: a *ResponseError with the server body verbatim (matches ErrRequestFailed).
//   - body that is not valid JSON: an error wrapping ErrDecodingFailed. A 204 response is
//     success with nothing to decode; out is left as it was.
//   - transport failures are returned as the transport reported them.
func (c *Client) Do(ctx context.Context, endpoint string, out any, opts ...RequestOption) error {
	cfg := buildRequestConfig(opts)

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = c.timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ctx, _ = requestid.Ensure(ctx)

	req, err := c.newRequest(ctx, endpoint, cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "api request failed",
			logger.Method(req.Method),
			logger.Endpoint(endpoint),
			logger.Duration(time.Since(start)),
			logger.Error(err),
		)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	c.logger.DebugContext(ctx, "api request",
		logger.Method(req.Method),
		logger.Endpoint(endpoint),
		logger.StatusCode(resp.StatusCode),
		logger.Duration(time.Since(start)),
	)

	return c.handleResponse(ctx, endpoint, resp, out)
}

// newRequest builds the outgoing request; headers are rebuilt from scratch every call.
func (c *Client) newRequest(ctx context.Context, endpoint string, cfg RequestConfig) (*http.Request, error) {
	var body io.Reader
	if cfg.Data != nil {
		payload, err := json.Marshal(cfg.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrEncodingFailed, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, cfg.method(), c.URL(endpoint), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(requestid.Header, requestid.FromContext(ctx))
	if cfg.Data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.Token)
	}

	// Custom headers win on conflict
	for k, v := range cfg.Headers {
		req.Header.Set(k, v)
	}

	for _, edit := range cfg.Editors {
		if err := edit(ctx, req); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
		}
	}

	return req, nil
}

func (c *Client) handleResponse(ctx context.Context, endpoint string, resp *http.Response, out any) error {
	if resp.StatusCode == http.StatusUnauthorized {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
		c.onUnauthorized(ctx, endpoint)
		return newAuthExpiredError()
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if !json.Valid(body) {
			return fmt.Errorf("%w: status %d: invalid JSON error body", ErrDecodingFailed, resp.StatusCode)
		}
		return &ResponseError{StatusCode: resp.StatusCode, Body: json.RawMessage(body)}
	}

	// 204 carries no body by definition; out is left untouched
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if out == nil {
		if len(bytes.TrimSpace(body)) > 0 && !json.Valid(body) {
			return fmt.Errorf("%w: invalid JSON", ErrDecodingFailed)
		}
		return nil
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecodingFailed, err)
	}
	return nil
}

// onUnauthorized clears the session and restarts the application flow.
func (c *Client) onUnauthorized(ctx context.Context, endpoint string) {
	c.logger.WarnContext(ctx, "api rejected credentials, re-authenticating", logger.Endpoint(endpoint))

	if c.reauthenticate != nil {
		if err := c.reauthenticate(ctx); err != nil {
			c.logger.ErrorContext(ctx, "re-authentication callback failed", logger.Error(err))
		}
	}
	if c.reload != nil {
		c.reload()
	}
}

// Fetch runs Do in the background and returns a future for the decoded body.
// It is the promise-returning form used with operation.Controller.Run.
func Fetch[T any](ctx context.Context, c *Client, endpoint string, opts ...RequestOption) *async.Future[T] {
	return async.Async(ctx, endpoint, func(ctx context.Context, endpoint string) (T, error) {
		var out T
		if err := c.Do(ctx, endpoint, &out, opts...); err != nil {
			var zero T
			return zero, err
		}
		return out, nil
	})
}
