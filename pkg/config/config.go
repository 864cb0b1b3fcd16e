package config

import (
	"time"

	"github.com/jeanmarcjones/bookshelf/pkg/tokenstore"
)

// API configures the authenticated HTTP client.
type API struct {
	// BaseURL is joined with "/" and the endpoint name, without normalization.
	BaseURL   string        `env:"API_URL,notEmpty"`
	Timeout   time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	UserAgent string        `env:"API_USER_AGENT" envDefault:"bookshelf-client/1.0"`
}

// Auth configures the auth server and where its token is kept.
type Auth struct {
	URL      string        `env:"AUTH_URL,notEmpty"`
	TokenKey string        `env:"AUTH_TOKEN_KEY" envDefault:"__auth_provider_token__"`
	TokenTTL time.Duration `env:"AUTH_TOKEN_TTL" envDefault:"0s"` // 0 keeps the token until logout
}

// Log configures the process logger.
type Log struct {
	Env    string `env:"APP_ENV" envDefault:"development"`
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT"` // empty follows Env
}

// TokenStore selects the token persistence backend: file (default), redis or memory.
type TokenStore = tokenstore.Config

// App is the complete client configuration.
type App struct {
	API        API
	Auth       Auth
	Log        Log
	TokenStore TokenStore
}
