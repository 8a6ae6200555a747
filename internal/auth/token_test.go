package auth

import (
	"testing"

	"github.com/codigo-hd/helpdesk-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)

	token, expiresAt, err := tm.GenerateToken(12, domain.UserTypeAgent)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if expiresAt.IsZero() {
		t.Error("expiry not set")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != 12 {
		t.Errorf("uid = %d", claims.UserID)
	}
	if claims.UserType != domain.UserTypeAgent {
		t.Errorf("role = %s", claims.UserType)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 60)
	verifier := NewTokenManager("secret-b", 60)

	token, _, err := issuer.GenerateToken(12, domain.UserTypeCustomer)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := verifier.ParseToken(token); err == nil {
		t.Fatal("token signed with a different secret was accepted")
	}
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	if _, err := tm.ParseToken("not-a-token"); err == nil {
		t.Fatal("garbage token was accepted")
	}
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := ComparePassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("ComparePassword (match): %v", err)
	}
	if err := ComparePassword(hash, "wrong password"); err == nil {
		t.Error("wrong password accepted")
	}
}
