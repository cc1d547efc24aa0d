package service

import (
	"strings"
	"testing"
	"time"
)

const testSigningKey = "0123456789abcdef0123456789abcdef"

func TestNewTokenIssuer_RejectsShortKey(t *testing.T) {
	if _, err := NewTokenIssuer("too-short", time.Hour); err == nil {
		t.Fatalf("expected error for short signing key")
	}
}

func TestTokenIssuer_IssueAndValidate(t *testing.T) {
	issuer, err := NewTokenIssuer(testSigningKey, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if !issuer.Validate(token) {
		t.Fatalf("freshly issued token should validate")
	}

	subject, err := issuer.Subject(token)
	if err != nil {
		t.Fatalf("Subject: %v", err)
	}
	if subject != "alice" {
		t.Fatalf("expected subject alice, got %q", subject)
	}
}

func TestTokenIssuer_ExpiredToken(t *testing.T) {
	// A negative TTL produces a token that is already past its expiry.
	issuer, err := NewTokenIssuer(testSigningKey, -time.Minute)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issuer.Validate(token) {
		t.Fatalf("expired token should not validate")
	}
	if _, err := issuer.Subject(token); err == nil {
		t.Fatalf("Subject should fail for an expired token")
	}
}

func TestTokenIssuer_TamperedToken(t *testing.T) {
	issuer, err := NewTokenIssuer(testSigningKey, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if issuer.Validate(tampered) {
		t.Fatalf("tampered token should not validate")
	}
}

func TestTokenIssuer_WrongKey(t *testing.T) {
	issuer, err := NewTokenIssuer(testSigningKey, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}
	other, err := NewTokenIssuer("ffffffffffffffffffffffffffffffff", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	token, err := issuer.Issue("alice")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if other.Validate(token) {
		t.Fatalf("token signed with a different key should not validate")
	}
}

func TestTokenIssuer_GarbageInput(t *testing.T) {
	issuer, err := NewTokenIssuer(testSigningKey, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenIssuer: %v", err)
	}

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if issuer.Validate(tok) {
			t.Fatalf("expected %q to be invalid", tok)
		}
	}
}
