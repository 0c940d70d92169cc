package web

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "unit-test-secret"

// TestTokenRoundTrip verifies that an issued token validates with the same secret
func TestTokenRoundTrip(t *testing.T) {
	signed, err := generateToken(testSecret)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	claims, err := validateToken(signed, testSecret)
	if err != nil {
		t.Fatalf("validateToken: %v", err)
	}

	if claims.Subject != "dashboard" {
		t.Errorf("subject = %q, want %q", claims.Subject, "dashboard")
	}
	if claims.Issuer != "sdhsbot" {
		t.Errorf("issuer = %q, want %q", claims.Issuer, "sdhsbot")
	}
	if claims.ID == "" {
		t.Error("token must carry a unique jti")
	}

	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 23*time.Hour || remaining > tokenTTL {
		t.Errorf("token expiry %v out of the expected 24h window", remaining)
	}
}

// TestValidateTokenRejectsWrongSecret verifies signature checking
func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	signed, err := generateToken(testSecret)
	if err != nil {
		t.Fatalf("generateToken: %v", err)
	}

	if _, err := validateToken(signed, "another-secret"); err == nil {
		t.Error("a token signed with a different secret must not validate")
	}
}

// TestValidateTokenRejectsExpired verifies expiry checking
func TestValidateTokenRejectsExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	claims := &apiClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "sdhsbot",
			Subject:   "dashboard",
			IssuedAt:  jwt.NewNumericDate(past.Add(-tokenTTL)),
			ExpiresAt: jwt.NewNumericDate(past),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	if _, err := validateToken(signed, testSecret); err == nil {
		t.Error("an expired token must not validate")
	}
}

// TestValidateTokenRejectsNoneAlgorithm verifies the signing method check
func TestValidateTokenRejectsNoneAlgorithm(t *testing.T) {
	claims := &apiClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "dashboard",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing unsigned token: %v", err)
	}

	if _, err := validateToken(signed, testSecret); err == nil {
		t.Error("a token without a signature must not validate")
	}
}

// TestValidateTokenRejectsGarbage verifies malformed input handling
func TestValidateTokenRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := validateToken(input, testSecret); err == nil {
			t.Errorf("validateToken(%q) must fail", input)
		}
	}
}
