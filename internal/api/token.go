package api

import (
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// checkToken rejects JWT bearer tokens whose exp claim has passed. The
// signature is not verified here; the server does that. Opaque tokens pass.
func (c *Client) checkToken() error {
	if c.token == "" || strings.Count(c.token, ".") != 2 {
		return nil
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(c.token, &claims); err != nil {
		// Not a JWT after all; let the server decide.
		return nil //nolint:nilerr // Opaque tokens are forwarded untouched.
	}
	if claims.ExpiresAt != nil && !claims.ExpiresAt.After(c.now()) {
		return fmt.Errorf("%w at %s", ErrTokenExpired, claims.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z"))
	}
	return nil
}
