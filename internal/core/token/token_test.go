package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	signed, err := Issue("user_1", "customer", "secret", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if signed == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := Verify(signed, "secret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "user_1" {
		t.Fatalf("expected user_1, got %s", claims.UserID)
	}
	if claims.Role != "customer" {
		t.Fatalf("expected customer, got %s", claims.Role)
	}
}

func TestVerify_Missing(t *testing.T) {
	if _, err := Verify("", "secret"); !errors.Is(err, ErrTokenMissing) {
		t.Fatalf("expected ErrTokenMissing, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	if _, err := Verify("not-a-token", "secret"); !errors.Is(err, ErrTokenMalformed) {
		t.Fatalf("expected ErrTokenMalformed, got %v", err)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	signed, err := Issue("user_1", "admin", "secret-a", time.Hour)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := Verify(signed, "secret-b"); !errors.Is(err, ErrTokenSignatureInvalid) {
		t.Fatalf("expected ErrTokenSignatureInvalid, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	// Build a token whose expiry is already in the past but whose signature
	// is valid for the shared secret.
	now := time.Now().UTC()
	claims := Claims{
		UserID: "user_1",
		Role:   "customer",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := Verify(signed, "secret"); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestIssue_DefaultTTL(t *testing.T) {
	signed, err := Issue("user_1", "customer", "secret", 0)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	claims, err := Verify(signed, "secret")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}

	window := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	if window != DefaultTTL {
		t.Fatalf("expected %v validity window, got %v", DefaultTTL, window)
	}
}

func TestVerify_UnexpectedAlg(t *testing.T) {
	// "none" algorithm tokens must never verify.
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user_1"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := Verify(unsigned, "secret"); err == nil {
		t.Fatalf("expected verification failure for alg=none token")
	}
}
