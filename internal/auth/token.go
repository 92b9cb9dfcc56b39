package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/R3E-Network/wallet_layer/internal/api"
)

// TokenExpiry reads the exp claim of a JWT without verifying its signature.
// The backends own verification; the wallet only needs to know when to stop
// sending the token. A zero time means the token carries no exp.
func TokenExpiry(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, fmt.Errorf("auth: parse token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, nil
	}
	return claims.ExpiresAt.Time, nil
}

// SessionFromToken wraps token in a session. Opaque (non-JWT) tokens never expire.
func SessionFromToken(token string) api.Session {
	s := api.Session{AccessToken: token}
	if exp, err := TokenExpiry(token); err == nil {
		s.ExpiresAt = exp
	}
	return s
}
