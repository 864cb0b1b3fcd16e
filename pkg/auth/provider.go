package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jeanmarcjones/bookshelf/pkg/apiclient"
	"github.com/jeanmarcjones/bookshelf/pkg/config"
	"github.com/jeanmarcjones/bookshelf/pkg/logger"
	"github.com/jeanmarcjones/bookshelf/pkg/tokenstore"
)

// DefaultTokenKey is the store key the token is saved under.
const DefaultTokenKey = "__auth_provider_token__"

// HTTPProvider implements Provider against an auth server exposing /login and /register.
// Both endpoints accept {"username","password"} and answer {"user":{...,"token"}}.
type HTTPProvider struct {
	client   Requester
	store    tokenstore.Store
	tokenKey string
	tokenTTL time.Duration
	logger   *slog.Logger
}

// ProviderOption configures an HTTPProvider.
type ProviderOption func(*HTTPProvider)

// WithTokenKey sets the store key. Empty values are ignored.
func WithTokenKey(key string) ProviderOption {
	return func(p *HTTPProvider) {
		if key != "" {
			p.tokenKey = key
		}
	}
}

// WithTokenTTL bounds how long the token is kept. Zero keeps it until logout.
func WithTokenTTL(ttl time.Duration) ProviderOption {
	return func(p *HTTPProvider) {
		p.tokenTTL = ttl
	}
}

// WithProviderLogger sets the logger. Nil is ignored.
func WithProviderLogger(l *slog.Logger) ProviderOption {
	return func(p *HTTPProvider) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewHTTPProvider creates a provider that calls the auth server through client.
// The client must not carry re-authentication callbacks: a 401 from the auth server
// means wrong credentials, not an expired session.
func NewHTTPProvider(client Requester, store tokenstore.Store, opts ...ProviderOption) *HTTPProvider {
	p := &HTTPProvider{
		client:   client,
		store:    store,
		tokenKey: DefaultTokenKey,
		logger:   logger.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewHTTPProviderFromConfig creates a provider for the auth server named in cfg.
func NewHTTPProviderFromConfig(cfg config.Auth, store tokenstore.Store, opts ...ProviderOption) *HTTPProvider {
	base := []ProviderOption{
		WithTokenKey(cfg.TokenKey),
		WithTokenTTL(cfg.TokenTTL),
	}
	return NewHTTPProvider(apiclient.New(cfg.URL), store, append(base, opts...)...)
}

// GetToken returns the persisted token, or "" when nobody has logged in on this store.
func (p *HTTPProvider) GetToken(ctx context.Context) (string, error) {
	token, err := p.store.Get(ctx, p.tokenKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return token, nil
}

// Login posts creds to <authURL>/login and persists the returned token.
// Rejections from the auth server come back as *apiclient.ResponseError with its body intact.
func (p *HTTPProvider) Login(ctx context.Context, creds Credentials) (*User, error) {
	return p.authenticate(ctx, "login", creds)
}

// Register posts creds to <authURL>/register and persists the returned token.
func (p *HTTPProvider) Register(ctx context.Context, creds Credentials) (*User, error) {
	return p.authenticate(ctx, "register", creds)
}

// Logout deletes the persisted token. The auth server is not contacted; tokens are bearer
// credentials and forgetting them locally is the whole logout.
func (p *HTTPProvider) Logout(ctx context.Context) error {
	if err := p.store.Delete(ctx, p.tokenKey); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	p.logger.DebugContext(ctx, "token removed")
	return nil
}

// authenticate posts creds to endpoint and persists the returned token.
func (p *HTTPProvider) authenticate(ctx context.Context, endpoint string, creds Credentials) (*User, error) {
	if err := creds.validate(); err != nil {
		return nil, err
	}

	var resp userResponse
	if err := p.client.Do(ctx, endpoint, &resp, apiclient.WithData(creds)); err != nil {
		return nil, err
	}
	if resp.User == nil || resp.User.Token == "" {
		return nil, ErrMissingToken
	}

	if err := p.store.Set(ctx, p.tokenKey, resp.User.Token, p.tokenTTL); err != nil {
		return nil, fmt.Errorf("store token: %w", err)
	}

	p.logger.InfoContext(ctx, "authenticated",
		logger.Endpoint(endpoint),
		logger.UserID(resp.User.ID),
	)
	return resp.User, nil
}
