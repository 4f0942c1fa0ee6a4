package helper_test

import (
	"testing"
	"time"

	"github.com/google/uuid"

	helperAuth "audition_backend/internals/helpers/auth"
)

const secret = "unit-test-secret"

func TestSignAndParseAccessToken(t *testing.T) {
	id := uuid.New()
	tok, exp, err := helperAuth.SignAccessToken(id, " Candidate@Example.com ", "USER", "cand", secret, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("SignAccessToken failed: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Errorf("Expected expiry in the future, got %v", exp)
	}

	claims, err := helperAuth.ParseAccessToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseAccessToken failed: %v", err)
	}
	if claims.UserID != id.String() || claims.Email != "candidate@example.com" || claims.Role != "USER" {
		t.Errorf("Unexpected claims: %+v", claims)
	}

	got, ok := helperAuth.TokenExpiry(tok, secret)
	if !ok || got.Unix() != exp.Unix() {
		t.Errorf("Expected TokenExpiry %v, got %v (ok=%t)", exp, got, ok)
	}
}

func TestParseAccessTokenRejects(t *testing.T) {
	id := uuid.New()
	valid, _, _ := helperAuth.SignAccessToken(id, "a@b.c", "USER", "a", secret, time.Hour, time.Now())
	expired, _, _ := helperAuth.SignAccessToken(id, "a@b.c", "USER", "a", secret, time.Hour, time.Now().Add(-2*time.Hour))

	tests := []struct {
		name   string
		raw    string
		secret string
	}{
		{"wrong secret", valid, "other-secret"},
		{"expired", expired, secret},
		{"garbage", "not-a-token", secret},
		{"missing secret", valid, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := helperAuth.ParseAccessToken(tt.raw, tt.secret); err == nil {
				t.Error("Expected parse error")
			}
		})
	}

	if _, _, err := helperAuth.SignAccessToken(id, "a@b.c", "USER", "a", " ", time.Hour, time.Now()); err == nil {
		t.Error("Expected error signing without secret")
	}
}

func TestPasswordHash(t *testing.T) {
	if _, err := helperAuth.HashPassword("short"); err == nil {
		t.Error("Expected short password to be rejected")
	}
	hash, err := helperAuth.HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if err := helperAuth.CheckPasswordHash(hash, "correct horse battery"); err != nil {
		t.Errorf("Expected password to match: %v", err)
	}
	if err := helperAuth.CheckPasswordHash(hash, "wrong password"); err == nil {
		t.Error("Expected mismatch for wrong password")
	}
	if err := helperAuth.CheckPasswordHash("", "anything"); err == nil {
		t.Error("Expected mismatch for empty hash")
	}
}
