// Package middleware exposes the navigation-time route gate as net/http
// middleware.
//
// [Gate] checks the session on every request to a protected view and
// redirects anonymous navigation to the login screen. The check is a plain
// presence test on the stored access token, re-evaluated per request and
// never cached: a logout makes the next navigation bounce, it does not
// evict a view that already rendered.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into session reads. It does NOT
// decide authentication itself — the session manager owns that state.
//
// # What this package must NOT do
//
//   - Decode or validate tokens (the token package and the server do that).
//   - Remember the originally requested destination; the redirect discards it.
package middleware
