// Package apiclient provides the authenticated JSON client for the bookshelf API.
//
// Every call is addressed as baseURL + "/" + endpoint, with no slash normalization. A call carries
// an optional bearer token and an optional JSON payload. When a payload is present the method
// defaults to POST, otherwise to GET. Custom headers are applied after the client's own and win on
// conflict. The client keeps no per-call state and never stores credentials itself.
//
// # Basic Usage
//
//	client := apiclient.New("https://api.example.com")
//
//	var books []Book
//	err := client.Do(ctx, "books", &books, apiclient.WithToken(token))
//
//	err = client.Do(ctx, "books", &created,
//	    apiclient.WithToken(token),
//	    apiclient.WithData(map[string]string{"title": "Dune"}),
//	)
//
// # Re-authentication
//
// A 401 response triggers the callbacks configured with WithReauthenticate and WithReload, in that
// order, and the call then fails with a *ResponseError whose body is
// {"message":"Please re-authenticate"}:
//
//	client := apiclient.New(baseURL,
//	    apiclient.WithReauthenticate(session.Reauthenticate),
//	    apiclient.WithReload(session.Reload),
//	)
//
// # Responses
//
// A 2xx body is decoded as JSON into the out argument; pass nil to discard it, or a
// *json.RawMessage to keep it undecoded. A 204 No Content response is never decoded and leaves
// out untouched, so a PUT or DELETE that returns nothing succeeds whatever out is. An empty body
// on any other 2xx status is decoded like any other and fails when out is non-nil.
//
// Every request carries the X-Request-ID header from package requestid, generated when the
// context does not already hold one.
//
// # Error Handling
//
// Non-2xx responses other than 401 produce a *ResponseError that carries the server body as sent.
// Use errors.Is with ErrAuthenticationExpired or ErrRequestFailed to classify them, and
// AsResponseError to inspect the status and body. A body that is not valid JSON yields an error
// wrapping ErrDecodingFailed. Transport failures are returned unchanged.
//
// # Asynchronous Use
//
// Fetch returns an async.Future, which plugs straight into operation.Controller.Run:
//
//	books := operation.New[[]Book]()
//	_, _ = books.Run(apiclient.Fetch[[]Book](ctx, client, "books", apiclient.WithToken(token)))
package apiclient
