// Package authsession manages the client-side session lifecycle for CRM
// admin API consumers: bearer token storage, expiry-driven auto-logout,
// request authorization, and navigation gating.
//
// The package is built around one process-wide [Store] holding the current
// token, refresh token, role, user id, permission list, and the email
// derived from the token's subject claim. The store mirrors its five
// durable fields synchronously into a [storage.Backend] so a restart picks
// the session back up. [Manager] is the store's only writer: it owns the
// Anonymous/Authenticated transitions and the single one-shot timer that
// logs the user out when the token's expiry instant arrives. [Transport]
// and the middleware gate are read-only observers.
//
// # Architecture boundaries
//
//   - Token introspection (token subpackage) is unverified by design. The
//     server validates signatures on every call; the client only needs the
//     subject and expiry claims for UX.
//   - Durable storage is session continuity, not a security boundary.
//   - Network failures of the login request itself are the caller's
//     problem; Login only consumes an already-successful response.
//
// # Concurrency
//
// All exported methods are safe for concurrent use after Build. The
// auto-logout timer fires on its own goroutine but serializes against
// Login/Logout/Restore through the manager's lock, and a superseded timer
// callback detects staleness and returns without touching state.
package authsession
