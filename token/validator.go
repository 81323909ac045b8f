// Package token decides whether a bearer token is still usable. The client
// holds no key material, so the token is parsed without signature
// verification; only the expiry claim matters here. The server remains the
// authority on token authenticity.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var errNoExpiry = errors.New("token has no expiry claim")

var parser = jwt.NewParser()

// ExpiresAt extracts the expiry timestamp from raw. A malformed token or a
// token without an exp claim yields an error.
func ExpiresAt(raw string) (time.Time, error) {
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(raw, claims); err != nil {
		return time.Time{}, err
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errNoExpiry
	}
	return exp.Time, nil
}

// Valid reports whether raw decodes and expires in the future. It never
// panics; any decode failure means invalid.
func Valid(raw string) bool {
	if raw == "" {
		return false
	}
	exp, err := ExpiresAt(raw)
	if err != nil {
		return false
	}
	return exp.UnixMilli() > time.Now().UnixMilli()
}
