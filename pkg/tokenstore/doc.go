// Package tokenstore persists the bearer token issued by the auth server.
//
// The client never stores credentials in the API client itself; the auth provider writes the
// token here after login or registration, reads it back when a session starts, and deletes it
// on logout. A missing token is not an error: Get returns "" and nil, which callers read as
// "signed out".
//
// # Implementations
//
// Three implementations of Store are provided:
//
//   - FileStore keeps tokens in a JSON file under the user's configuration directory (see
//     DefaultFilePath), created with owner-only permissions. Each call re-reads the file, so a
//     login made by one CLI invocation is visible to the next. This is the default.
//   - RedisStore keeps tokens in Redis through go-redis, namespaced with a key prefix, so
//     several machines or containers can share one login. Expiry is enforced by Redis.
//   - MemoryStore lives only as long as the process. It suits tests and long-running embeds of
//     the client, not the CLI.
//
// Open picks one from a Config, which is normally parsed from the environment:
//
//	TOKEN_STORE       file (default), redis or memory
//	TOKEN_STORE_PATH  token file for the file driver; empty uses DefaultFilePath
//	REDIS_URL         redis://:password@host:6379/0
//	REDIS_KEY_PREFIX  prefix added to every key (default "bookshelf:")
//
// # Usage
//
//	store, closeStore, err := tokenstore.Open(ctx, tokenstore.Config{
//	    Driver: tokenstore.DriverRedis,
//	    Redis: tokenstore.RedisConfig{
//	        ConnectionURL:  "redis://localhost:6379/0",
//	        RetryAttempts:  3,
//	        RetryInterval:  time.Second,
//	        ConnectTimeout: 10 * time.Second,
//	    },
//	})
//	if err != nil {
//	    return err
//	}
//	defer closeStore()
//
//	_ = store.Set(ctx, "__auth_provider_token__", token, 0)
//
// A zero ttl keeps a token until it is deleted. Expired entries behave exactly like missing
// ones in every implementation.
//
// # Connecting to Redis
//
// Connect parses the URL, then pings the server up to RetryAttempts times with RetryInterval
// between attempts, all bounded by ConnectTimeout. A server that is still starting (a
// container coming up next to the client) therefore does not fail the first command.
// Healthcheck wraps a ping for readiness checks.
//
// # Error Handling
//
// Sentinel errors can be compared with errors.Is:
//
//   - ErrEmptyKey: a store method was called with an empty key.
//   - ErrUnknownDriver: Open received a driver it does not know.
//   - ErrEmptyConnectionURL, ErrFailedToParseRedisConnString: the Redis URL is unusable.
//   - ErrRedisNotReady: every connection attempt failed; the last ping error is joined to it.
//   - ErrHealthcheckFailed: a Healthcheck ping failed.
//   - ErrCorruptTokenFile: the token file exists but is not valid JSON.
//   - ErrNoFilePath: no token file location could be determined.
package tokenstore
