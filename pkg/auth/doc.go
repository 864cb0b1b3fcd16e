// Package auth keeps track of the signed-in user of the bookshelf client.
//
// # Architecture
//
// Two layers cooperate:
//
//   - A Provider talks to the auth server and owns the persisted bearer token. HTTPProvider is
//     the production implementation: it posts {"username","password"} to /login or /register,
//     expects {"user":{...,"token"}} back, and keeps the token in a tokenstore.Store under
//     DefaultTokenKey unless configured otherwise.
//   - A Session sits on top of a Provider and the API client. Its state is an
//     operation.State[*User], so callers can tell "still resolving" (pending) from "signed out"
//     (resolved with nil) from "lookup failed" (rejected).
//
// Session operations:
//
//   - Bootstrap reads the stored token and asks the API's "me" endpoint who it belongs to. No
//     token means no call and a resolved nil user.
//   - Login and Register make the returned user current. Failures are returned to the caller and
//     leave the state untouched, so a wrong password does not sign out the current user.
//   - Logout forgets the token, runs logout hooks (drop caches holding the previous user's data)
//     and clears the user, even when the provider fails.
//   - Do calls the API with the current user's token, or returns ErrNotAuthenticated.
//
// # Wiring
//
// The API client calls back into the session when the API rejects a token. Reauthenticate logs
// the user out and Reload resolves the user again in the background:
//
//	var session *auth.Session
//	api := apiclient.New(apiURL,
//	    apiclient.WithReauthenticate(func(ctx context.Context) error { return session.Reauthenticate(ctx) }),
//	    apiclient.WithReload(func() { session.Reload() }),
//	)
//	provider := auth.NewHTTPProvider(apiclient.New(authURL), store)
//	session = auth.NewSession(provider, api, auth.WithOnLogout(cache.Clear))
//	defer session.Close()
//
//	if _, err := session.Bootstrap(ctx).Await(); err != nil {
//	    return err
//	}
//
//	var books []Book
//	err := session.Do(ctx, "books", &books)
//
// The client used by HTTPProvider must not carry these callbacks: a 401 from the auth server
// means wrong credentials, not an expired session.
//
// # Lifetime
//
// Close stops the session from recording updates, cancels reloads started by Reload and waits
// for them, so the token store and HTTP client can be released right after it returns.
// WithOwner binds the session state to an external operation.ActiveToken instead.
//
// # Error Handling
//
//   - ErrNotAuthenticated: Do was called with nobody signed in; test with IsNotAuthenticated.
//   - ErrInvalidCredentials: username or password is empty; no request is sent.
//   - ErrMissingToken: the auth server answered without a token.
//
// Errors from the auth server and the API are returned as produced by package apiclient.
package auth
