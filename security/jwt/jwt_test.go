package jwt

import (
	"testing"
	"time"

	jwtstd "github.com/golang-jwt/jwt/v5"
)

func sign(t *testing.T, claims jwtstd.MapClaims) string {
	t.Helper()
	s, err := jwtstd.NewWithClaims(jwtstd.SigningMethodHS256, claims).SignedString([]byte("server-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestInspect(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := sign(t, jwtstd.MapClaims{
		"sub":     "ann",
		"exp":     exp.Unix(),
		"payload": map[string]any{"user_id": 7},
	})

	c, err := Inspect(token)
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if c.Subject != "ann" {
		t.Errorf("expected subject ann, got %q", c.Subject)
	}
	if c.UserID != "7" {
		t.Errorf("expected user id 7, got %q", c.UserID)
	}
	if !c.ExpiresAt.Equal(exp) {
		t.Errorf("expected expiry %v, got %v", exp, c.ExpiresAt)
	}
	if c.IsExpired(time.Now()) {
		t.Error("token should not be expired yet")
	}
	if !c.IsExpired(exp) {
		t.Error("token should be expired at exp")
	}
	if c.ExpiresIn(exp.Add(-time.Minute)) != time.Minute {
		t.Errorf("unexpected ExpiresIn %v", c.ExpiresIn(exp.Add(-time.Minute)))
	}
}

func TestInspectWithoutExpiry(t *testing.T) {
	c, err := Inspect(sign(t, jwtstd.MapClaims{"sub": "bob"}))
	if err != nil {
		t.Fatalf("Inspect: %v", err)
	}
	if c.HasExpiry() || c.IsExpired(time.Now().Add(24*time.Hour)) {
		t.Error("token without exp should never expire")
	}
	if c.Username != "bob" {
		t.Errorf("expected username to fall back to subject, got %q", c.Username)
	}
}

func TestInspectInvalid(t *testing.T) {
	if _, err := Inspect(""); err != ErrEmptyToken {
		t.Errorf("expected ErrEmptyToken, got %v", err)
	}
	if _, err := Inspect("not-a-jwt"); err != ErrTokenParsing {
		t.Errorf("expected ErrTokenParsing, got %v", err)
	}
	if _, err := Inspect("x.y.z"); err != ErrTokenParsing {
		t.Errorf("expected ErrTokenParsing for a malformed token, got %v", err)
	}
}
