package service

import "testing"

func TestPlainCredentials(t *testing.T) {
	var creds PlainCredentials

	stored, err := creds.Hash("secret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if stored != "secret" {
		t.Fatalf("plain scheme must store verbatim, got %q", stored)
	}
	if !creds.Verify(stored, "secret") {
		t.Fatalf("expected matching password to verify")
	}
	if creds.Verify(stored, "Secret") {
		t.Fatalf("expected mismatch to fail")
	}
	if creds.Verify(stored, "") {
		t.Fatalf("expected empty candidate to fail")
	}
}

func TestBcryptCredentials(t *testing.T) {
	var creds BcryptCredentials

	stored, err := creds.Hash("secret")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if stored == "secret" {
		t.Fatalf("bcrypt scheme must not store verbatim")
	}
	if !creds.Verify(stored, "secret") {
		t.Fatalf("expected matching password to verify")
	}
	if creds.Verify(stored, "wrong") {
		t.Fatalf("expected mismatch to fail")
	}
}
