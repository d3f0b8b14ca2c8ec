package jwt

import (
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
)

// TokenError represents JWT token related errors
type TokenError string

func (e TokenError) Error() string {
	return string(e)
}

const (
	ErrEmptyToken   = TokenError("empty token")
	ErrTokenParsing = TokenError("token parsing error")
)

// Claims is what the client can read from its own access token. The client
// never holds the signing key so nothing here is verified; the server stays
// the authority on whether the token is accepted.
type Claims struct {
	Subject   string
	UserID    string
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Raw       map[string]any
}

// Inspect decodes token without verifying its signature.
func Inspect(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrEmptyToken
	}
	claims := jwtstd.MapClaims{}
	if _, _, err := jwtstd.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, ErrTokenParsing
	}

	c := &Claims{Raw: claims}
	c.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		c.ExpiresAt = exp.Time
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		c.IssuedAt = iat.Time
	}

	payload, _ := getPayload(claims)
	c.UserID = firstString(claims, payload, "user_id", "uid", "id")
	c.Username = firstString(claims, payload, "username", "name")
	if c.Username == "" && c.UserID == "" {
		c.Username = c.Subject
	}
	return c, nil
}

// HasExpiry reports whether the token carries an exp claim.
func (c *Claims) HasExpiry() bool { return !c.ExpiresAt.IsZero() }

// IsExpired reports whether the token expired at now. Tokens without exp
// never expire client side.
func (c *Claims) IsExpired(now time.Time) bool {
	return c.HasExpiry() && !now.Before(c.ExpiresAt)
}

// ExpiresIn returns the time left before expiry, 0 once expired or when the
// token has no exp claim.
func (c *Claims) ExpiresIn(now time.Time) time.Duration {
	if !c.HasExpiry() || c.IsExpired(now) {
		return 0
	}
	return c.ExpiresAt.Sub(now)
}
