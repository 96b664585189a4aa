package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrOpaqueToken is returned when the access token is not a JWT.
var ErrOpaqueToken = errors.New("access token is opaque")

// TokenInfo is what can be read from a JWT access token without its key.
type TokenInfo struct {
	Algorithm string
	Subject   string
	Issuer    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the token carries an expiry that is before now.
func (t TokenInfo) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// InspectToken decodes the claims of a JWT access token. The signature is not
// verified, the result is for display only.
func InspectToken(token string) (*TokenInfo, error) {
	var claims jwt.RegisteredClaims

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &claims)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpaqueToken, err)
	}

	info := &TokenInfo{
		Algorithm: parsed.Method.Alg(),
		Subject:   claims.Subject,
		Issuer:    claims.Issuer,
	}
	if claims.IssuedAt != nil {
		info.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		info.ExpiresAt = claims.ExpiresAt.Time
	}

	return info, nil
}
