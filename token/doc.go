// Package token provides read-only introspection of bearer access tokens.
//
// The CRM admin API issues conventional three-segment JWTs. This package
// parses the payload segment so the client can derive the signed-in user's
// identity and schedule auto-logout at the token's expiry instant. It
// deliberately performs no signature verification: the server verifies every
// token on every API call, and nothing client-side may treat a decoded claim
// as proof of anything. Decode failures are ordinary values, never panics.
package token
