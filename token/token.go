package token

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformed is returned when a token cannot be parsed into a claim set.
var ErrMalformed = errors.New("malformed token")

// Claims is the subset of the payload the client cares about. Remaining
// claims are parsed but ignored.
type Claims struct {
	// Subject is the identity claim ("sub"), the signed-in user's email.
	Subject string
	// ExpiresAt is the expiry claim ("exp") in seconds since epoch.
	// Zero when the token carries no expiry.
	ExpiresAt int64
}

// Decode parses the payload segment of a three-segment bearer token without
// verifying its signature. It never panics; any structural problem is
// reported as an error wrapping [ErrMalformed].
func Decode(tokenStr string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())

	var registered jwt.RegisteredClaims
	if _, _, err := parser.ParseUnverified(tokenStr, &registered); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	claims := &Claims{Subject: registered.Subject}
	if registered.ExpiresAt != nil {
		claims.ExpiresAt = registered.ExpiresAt.Unix()
	}
	return claims, nil
}

// ExpirationMillis returns the token's expiry instant in milliseconds since
// epoch. The second result is false when the token does not decode or
// carries no expiry claim.
func ExpirationMillis(tokenStr string) (int64, bool) {
	claims, err := Decode(tokenStr)
	if err != nil || claims.ExpiresAt == 0 {
		return 0, false
	}
	return claims.ExpiresAt * 1000, true
}
