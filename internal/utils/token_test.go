package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"medibook-server/internal/config"
)

func signToken(t *testing.T, secret, subject, issuer string, expiresAt time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestVerifySessionToken(t *testing.T) {
	cfg := config.IdentityConfig{SessionSecret: "test-secret", Issuer: "https://id.example.com"}

	tokenString := signToken(t, cfg.SessionSecret, "user_abc123", cfg.Issuer, time.Now().Add(time.Hour))
	claims, err := VerifySessionToken(tokenString, cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.ExternalID() != "user_abc123" {
		t.Fatalf("expected subject user_abc123, got %q", claims.ExternalID())
	}
}

func TestVerifySessionToken_WrongSecret(t *testing.T) {
	cfg := config.IdentityConfig{SessionSecret: "right-secret"}
	tokenString := signToken(t, "wrong-secret", "user_abc123", "", time.Now().Add(time.Hour))
	if _, err := VerifySessionToken(tokenString, cfg); err == nil {
		t.Fatal("expected verification to fail with a mismatched secret")
	}
}

func TestVerifySessionToken_Expired(t *testing.T) {
	cfg := config.IdentityConfig{SessionSecret: "test-secret"}
	tokenString := signToken(t, cfg.SessionSecret, "user_abc123", "", time.Now().Add(-time.Minute))
	if _, err := VerifySessionToken(tokenString, cfg); err == nil {
		t.Fatal("expected verification to fail for an expired token")
	}
}

func TestVerifySessionToken_WrongIssuer(t *testing.T) {
	cfg := config.IdentityConfig{SessionSecret: "test-secret", Issuer: "https://id.example.com"}
	tokenString := signToken(t, cfg.SessionSecret, "user_abc123", "https://evil.example.com", time.Now().Add(time.Hour))
	if _, err := VerifySessionToken(tokenString, cfg); err == nil {
		t.Fatal("expected verification to fail for an unexpected issuer")
	}
}

func TestVerifySessionToken_MissingSubject(t *testing.T) {
	cfg := config.IdentityConfig{SessionSecret: "test-secret"}
	tokenString := signToken(t, cfg.SessionSecret, "", "", time.Now().Add(time.Hour))
	if _, err := VerifySessionToken(tokenString, cfg); err == nil {
		t.Fatal("expected verification to fail when the token has no subject")
	}
}
