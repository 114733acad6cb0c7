package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "secreto-de-prueba"

func TestAccessTokenRoundTrip(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "jlopez", 30)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if tok.Token == "" {
		t.Fatal("empty token string")
	}
	if !tok.Exp.After(time.Now().UTC()) {
		t.Fatalf("expiry %v is not in the future", tok.Exp)
	}

	sub, err := VerifyAccessToken(testSecret, tok.Token)
	if err != nil {
		t.Fatalf("VerifyAccessToken: %v", err)
	}
	if sub != "jlopez" {
		t.Fatalf("subject = %q, want %q", sub, "jlopez")
	}
}

func TestVerifyAccessTokenWrongSecret(t *testing.T) {
	tok, err := NewAccessToken(testSecret, "jlopez", 30)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if _, err := VerifyAccessToken("otro-secreto", tok.Token); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyAccessTokenExpired(t *testing.T) {
	claims := jwt.MapClaims{
		"sub": "jlopez",
		"exp": time.Now().UTC().Add(-time.Hour).Unix(),
		"iat": time.Now().UTC().Add(-2 * time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyAccessToken(testSecret, signed); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyAccessTokenMissingSubject(t *testing.T) {
	claims := jwt.MapClaims{
		"exp": time.Now().UTC().Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := VerifyAccessToken(testSecret, signed); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}

func TestVerifyAccessTokenGarbage(t *testing.T) {
	if _, err := VerifyAccessToken(testSecret, "not.a.token"); err != ErrInvalidToken {
		t.Fatalf("err = %v, want ErrInvalidToken", err)
	}
}
