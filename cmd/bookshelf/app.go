package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/jeanmarcjones/bookshelf/pkg/apiclient"
	"github.com/jeanmarcjones/bookshelf/pkg/auth"
	"github.com/jeanmarcjones/bookshelf/pkg/config"
	"github.com/jeanmarcjones/bookshelf/pkg/logger"
	"github.com/jeanmarcjones/bookshelf/pkg/tokenstore"
)

// app holds the wired dependencies of a single command invocation.
type app struct {
	log     *slog.Logger
	api     *apiclient.Client
	session *auth.Session

	closeStore func() error
}

// newApp wires config, logger, token store, API client and auth session in that order.
func newApp(ctx context.Context, cfg config.App, logOut io.Writer) (*app, error) {
	log, err := newLogger(cfg.Log, logOut)
	if err != nil {
		return nil, err
	}

	store, closeStore, err := tokenstore.Open(ctx, cfg.TokenStore)
	if err != nil {
		return nil, err
	}

	a := &app{log: log, closeStore: closeStore}

	a.api = apiclient.NewFromConfig(cfg.API,
		apiclient.WithLogger(log.With(logger.Component("apiclient"))),
		apiclient.WithReauthenticate(func(ctx context.Context) error {
			return a.session.Reauthenticate(ctx)
		}),
		apiclient.WithReload(func() {
			a.session.Reload()
		}),
	)

	provider := auth.NewHTTPProviderFromConfig(cfg.Auth, store,
		auth.WithProviderLogger(log.With(logger.Component("auth"))),
	)
	a.session = auth.NewSession(provider, a.api,
		auth.WithLogger(log.With(logger.Component("session"))),
	)

	return a, nil
}

func newLogger(cfg config.Log, out io.Writer) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, "bookshelf"),
		logger.WithLevel(level),
		logger.WithOutput(out),
		logger.WithRequestID(),
	}
	if cfg.Format != "" {
		format := logger.Format(cfg.Format)
		if format != logger.FormatJSON && format != logger.FormatText {
			return nil, errors.Join(errInvalidLogFormat, errors.New(cfg.Format))
		}
		opts = append(opts, logger.WithFormat(format))
	}

	return logger.New(opts...), nil
}

// bootstrap resolves the signed-in user, or nil when nobody is.
func (a *app) bootstrap(ctx context.Context) (*auth.User, error) {
	return a.session.Bootstrap(ctx).Await()
}

// Close stops the session, waiting for any background reload, then releases the token store.
func (a *app) Close() error {
	a.session.Close()
	return a.closeStore()
}
