package jwt

import (
	"errors"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims are the access-token fields the host reads. The backend signs the
// tokens; the host never holds the key, so signatures are not verified here.
type Claims struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username,omitempty"`
	Role     string `json:"rol,omitempty"`
	jwtlib.RegisteredClaims
}

var parser = jwtlib.NewParser()

// Inspect decodes the claims of tokenStr without verifying its signature.
func Inspect(tokenStr string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrInvalidToken
	}
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(tokenStr, claims); err != nil {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 && claims.Subject != "" {
		if id, err := strconv.ParseInt(claims.Subject, 10, 64); err == nil {
			claims.UserID = id
		}
	}
	return claims, nil
}

// Expired reports whether the token's exp claim lies before now. Tokens
// without exp never expire client-side.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !c.ExpiresAt.Time.After(now)
}
