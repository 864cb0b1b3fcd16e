// Package config provides a type-safe, generic and cached way to load the client configuration
// from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11 to deliver a small API that:
//
//   - Loads an optional .env file from the working directory once per process. Variables already
//     present in the environment take precedence over the file.
//   - Parses the environment into any Go struct using `env` and `envDefault` field tags.
//   - Caches each successfully loaded configuration type so it is only parsed once for the
//     lifetime of the process.
//   - Exposes MustLoad for entry points where missing configuration should stop the program.
//   - Offers Parse, which bypasses the cache, and Reset, which clears it, for tests and for
//     commands that must see the current environment.
//
// # Architecture
//
// The package keeps a process-wide cache keyed by the reflect.Type of the configuration
// struct. Load consults the cache first and stores the parsed copy on a miss; when two
// goroutines race on the first load, the first stored value wins and both callers receive it.
// Parsing itself is delegated to env.Parse, and nested structs without an `env` tag are parsed
// recursively, which is how App picks up the fields of every section.
//
// # Usage
//
// The App struct groups every section the client needs:
//
//	var app config.App
//	config.MustLoad(&app)
//
//	client := apiclient.NewFromConfig(app.API)
//	store, closeStore, err := tokenstore.Open(ctx, app.TokenStore)
//
// Sections can also be loaded on their own:
//
//	var api config.API
//	if err := config.Load(&api); err != nil {
//	    return err
//	}
//
// # Variables
//
//   - API: API_URL (required, non-empty), API_TIMEOUT (default 30s), API_USER_AGENT.
//   - Auth: AUTH_URL (required, non-empty), AUTH_TOKEN_KEY (default __auth_provider_token__),
//     AUTH_TOKEN_TTL (default 0, keep until logout).
//   - Log: APP_ENV (default development), LOG_LEVEL (default info), LOG_FORMAT (json or text,
//     empty follows APP_ENV).
//   - TokenStore: TOKEN_STORE (file, redis or memory; default file), TOKEN_STORE_PATH, and the
//     REDIS_* settings of tokenstore.RedisConfig.
//
// # Error Handling
//
// The package defines sentinel errors that can be compared with errors.Is:
//
//   - ErrParsingConfig: the environment could not be parsed into the struct, for example a
//     required variable is missing or a duration is malformed. The env error is joined to it.
//   - ErrNilPointer: a nil destination was passed to Load or MustLoad.
//
// # Testing Helpers
//
// Use Reset to clear the cache between tests that change the environment, or call Parse
// directly to read the current environment without touching the cache.
//
// # See Also
//
//   - https://github.com/joho/godotenv: .env file loader.
//   - https://github.com/caarlos0/env: environment parser.
package config
