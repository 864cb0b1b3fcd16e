package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/jeanmarcjones/bookshelf/pkg/apiclient"
	"github.com/jeanmarcjones/bookshelf/pkg/async"
	"github.com/jeanmarcjones/bookshelf/pkg/logger"
	"github.com/jeanmarcjones/bookshelf/pkg/operation"
)

// Session tracks who is signed in. Its state is an operation.State[*User]: idle before
// Bootstrap, pending while the current user is being resolved, then resolved with the user
// (nil when signed out) or rejected with the lookup error.
// Methods are safe for concurrent use.
type Session struct {
	provider Provider
	api      Requester
	ctrl     *operation.Controller[*User]
	logger   *slog.Logger

	mu       sync.Mutex
	onLogout []func(ctx context.Context)

	// background bounds reloads started by Reload; Close cancels it and waits for them
	background context.Context
	cancel     context.CancelFunc
	reloads    sync.WaitGroup
}

// SessionOption configures a Session.
type SessionOption func(*sessionOptions)

type sessionOptions struct {
	logger   *slog.Logger
	owner    *operation.ActiveToken
	onLogout []func(ctx context.Context)
}

// WithLogger sets the session logger. Nil is ignored.
func WithLogger(l *slog.Logger) SessionOption {
	return func(o *sessionOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithOwner binds the session state to an owner token; once it ends no update is recorded.
func WithOwner(t *operation.ActiveToken) SessionOption {
	return func(o *sessionOptions) {
		o.owner = t
	}
}

// WithOnLogout registers a hook run on every logout, before the user is cleared.
// Use it to drop caches holding data of the previous user.
func WithOnLogout(fn func(ctx context.Context)) SessionOption {
	return func(o *sessionOptions) {
		if fn != nil {
			o.onLogout = append(o.onLogout, fn)
		}
	}
}

// NewSession creates a session backed by provider. api is used to resolve the current user
// through the "me" endpoint and for calls made with Do.
func NewSession(provider Provider, api Requester, opts ...SessionOption) *Session {
	o := &sessionOptions{logger: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}

	var ctrlOpts []operation.Option[*User]
	if o.owner != nil {
		ctrlOpts = append(ctrlOpts, operation.WithActiveToken[*User](o.owner))
	}

	background, cancel := context.WithCancel(context.Background())

	return &Session{
		provider:   provider,
		api:        api,
		ctrl:       operation.New(ctrlOpts...),
		logger:     o.logger,
		onLogout:   o.onLogout,
		background: background,
		cancel:     cancel,
	}
}

// Bootstrap resolves the current user from the stored token and records the outcome.
// The state is pending until the returned future settles.
func (s *Session) Bootstrap(ctx context.Context) *async.Future[*User] {
	f, err := s.ctrl.Run(async.Async(ctx, s.provider, s.currentUser))
	if err != nil {
		return async.Rejected[*User](err)
	}
	return f
}

// currentUser returns nil without error when no token is stored.
func (s *Session) currentUser(ctx context.Context, provider Provider) (*User, error) {
	token, err := provider.GetToken(ctx)
	if err != nil {
		return nil, err
	}
	if token == "" {
		s.logger.DebugContext(ctx, "no stored token")
		return nil, nil
	}

	var resp userResponse
	if err := s.api.Do(ctx, "me", &resp, apiclient.WithToken(token)); err != nil {
		return nil, err
	}
	if resp.User != nil && resp.User.Token == "" {
		resp.User.Token = token
	}
	return resp.User, nil
}

// Login signs in and makes the returned user current. Errors leave the state untouched.
func (s *Session) Login(ctx context.Context, creds Credentials) (*User, error) {
	user, err := s.provider.Login(ctx, creds)
	if err != nil {
		return nil, err
	}
	s.ctrl.SetData(user)
	return user, nil
}

// Register creates an account and makes it current. Errors leave the state untouched.
func (s *Session) Register(ctx context.Context, creds Credentials) (*User, error) {
	user, err := s.provider.Register(ctx, creds)
	if err != nil {
		return nil, err
	}
	s.ctrl.SetData(user)
	return user, nil
}

// Logout forgets the token, runs the logout hooks and clears the user.
// The user is cleared even when the provider fails; its error is returned.
func (s *Session) Logout(ctx context.Context) error {
	err := s.provider.Logout(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "provider logout failed", logger.Error(err))
	}

	s.mu.Lock()
	hooks := s.onLogout
	s.mu.Unlock()
	for _, hook := range hooks {
		hook(ctx)
	}

	s.ctrl.SetData(nil)
	s.logger.InfoContext(ctx, "logged out")
	return err
}

// OnLogout registers a hook run on every later logout.
func (s *Session) OnLogout(fn func(ctx context.Context)) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.onLogout = append(s.onLogout, fn)
	s.mu.Unlock()
}

// Reauthenticate is the apiclient re-authentication callback: it logs the user out.
func (s *Session) Reauthenticate(ctx context.Context) error {
	return s.Logout(ctx)
}

// Reload is the apiclient reload callback: it resolves the current user again in the background.
// The lookup runs under the session's own context, so Close cancels it and waits for it to
// finish. Reload after Close does nothing.
func (s *Session) Reload() {
	s.mu.Lock()
	if s.background.Err() != nil {
		s.mu.Unlock()
		return
	}
	s.reloads.Add(1)
	s.mu.Unlock()

	f := s.Bootstrap(s.background)
	go func() {
		defer s.reloads.Done()
		<-f.Done()
	}()
}

// User returns the current user, or nil when signed out or not yet resolved.
func (s *Session) User() *User {
	return s.ctrl.State().Data
}

// State returns the current session snapshot.
func (s *Session) State() operation.State[*User] {
	return s.ctrl.State()
}

// Subscribe registers fn for every session change. Listeners must not call back into the
// session synchronously.
func (s *Session) Subscribe(fn func(operation.State[*User])) (unsubscribe func()) {
	return s.ctrl.Subscribe(fn)
}

// Do calls the API as the current user.
// Returns ErrNotAuthenticated when nobody is signed in.
func (s *Session) Do(ctx context.Context, endpoint string, out any, opts ...apiclient.RequestOption) error {
	user := s.User()
	if user == nil || user.Token == "" {
		return ErrNotAuthenticated
	}
	return s.api.Do(ctx, endpoint, out, append([]apiclient.RequestOption{apiclient.WithToken(user.Token)}, opts...)...)
}

// Close stops the session from recording further updates, including a bootstrap still in flight.
// It cancels background reloads and returns once they have stopped, so resources they use
// (the token store, the HTTP client) can be released right after. Close is idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	s.cancel()
	s.mu.Unlock()

	s.ctrl.Close()
	s.reloads.Wait()
}

// IsNotAuthenticated reports whether err means no user is signed in.
func IsNotAuthenticated(err error) bool {
	return errors.Is(err, ErrNotAuthenticated)
}
