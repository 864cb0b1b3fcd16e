// Package requestid manages correlation ids for outgoing API calls.
//
// Every call made by the API client carries an X-Request-ID header. Ensure returns the id
// already stored in a context or generates a UUIDv4 and stores it, so a chain of calls made
// with the same context shares one id, and the logger adds the same id to its records as
// request_id. Server logs and client logs can then be joined on a single value.
//
// # Usage
//
//	ctx, id := requestid.Ensure(ctx)
//	req.Header.Set(requestid.Header, id)
//
// To tie several calls together, store an id once and pass the context along:
//
//	ctx := requestid.WithContext(ctx, requestid.New())
//	_ = client.Do(ctx, "me", &me)
//	_ = client.Do(ctx, "books", &books)
//
// # Validation
//
// Ids end up in HTTP headers, so Ensure replaces any stored value IsValid rejects: empty,
// longer than 128 bytes, or containing characters outside [a-zA-Z0-9_-]. This keeps values taken
// from untrusted input from injecting header lines.
package requestid
