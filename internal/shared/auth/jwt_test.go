package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	v, err := NewVerifier("s3cret", "dev")
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	token, err := v.Sign(Claims{Sub: "user-1", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := v.Verify(token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Sub != "user-1" || claims.Email != "a@example.com" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.Exp <= claims.Iat {
		t.Fatalf("expected exp after iat, got %d <= %d", claims.Exp, claims.Iat)
	}
}

func TestVerifyRejectsOtherSecret(t *testing.T) {
	a, _ := NewVerifier("one", "dev")
	b, _ := NewVerifier("two", "dev")
	token, err := a.Sign(Claims{Sub: "user-1"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := b.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	v, _ := NewVerifier("s3cret", "dev")
	now := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	v.now = func() time.Time { return now }
	token, err := v.Sign(Claims{Sub: "user-1"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	now = now.Add(25 * time.Hour)
	if _, err := v.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected expired token to fail, got %v", err)
	}
}

func TestNewVerifierRequiresSecretInProduction(t *testing.T) {
	if _, err := NewVerifier("", "production"); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
	if _, err := NewVerifier("", "dev"); err != nil {
		t.Fatalf("expected dev fallback, got %v", err)
	}
}
