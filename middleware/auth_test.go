package middleware

import (
	"testing"
	"time"

	"markbook_go/config"
	"markbook_go/models"
)

func setupTestConfig(expiresIn time.Duration) {
	config.AppConfig = &config.Config{
		JWTSecret:    "test-secret-key-for-tokens",
		JWTExpiresIn: expiresIn,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	setupTestConfig(time.Hour)

	token, err := GenerateToken("asha.verma@markbook.test", models.RoleTeacher)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("unexpected error parsing token: %v", err)
	}
	if claims.Email != "asha.verma@markbook.test" {
		t.Fatalf("unexpected email claim: %q", claims.Email)
	}
	if claims.Role != models.RoleTeacher {
		t.Fatalf("unexpected role claim: %q", claims.Role)
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	setupTestConfig(-time.Minute)

	token, err := GenerateToken("x@example.com", models.RoleStudent)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	if _, err := ParseToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestParseTokenRejectsTampered(t *testing.T) {
	setupTestConfig(time.Hour)

	token, err := GenerateToken("x@example.com", models.RoleStudent)
	if err != nil {
		t.Fatalf("unexpected error generating token: %v", err)
	}

	config.AppConfig.JWTSecret = "a-completely-different-secret"
	if _, err := ParseToken(token); err == nil {
		t.Fatal("expected token signed with another secret to be rejected")
	}

	if _, err := ParseToken("not.a.token"); err == nil {
		t.Fatal("expected garbage token to be rejected")
	}
}
