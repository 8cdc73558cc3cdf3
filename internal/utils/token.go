package utils

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"medibook-server/internal/config"
)

// SessionClaims are the claims we read off a session token minted by the
// hosted identity provider. The subject is the external user id; the server
// never mints tokens of its own.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// ExternalID returns the externally-verified user id carried by the token.
func (c *SessionClaims) ExternalID() string {
	return c.Subject
}

// VerifySessionToken validates a session token against the identity
// provider's shared secret and returns its claims.
func VerifySessionToken(tokenString string, cfg config.IdentityConfig) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.SessionSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
		return nil, fmt.Errorf("unexpected issuer %q", claims.Issuer)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}
