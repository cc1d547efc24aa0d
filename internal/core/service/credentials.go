package service

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PlainCredentials stores passwords verbatim and compares them for equality.
// This mirrors the legacy system the API replaced and is the default scheme;
// swap in BcryptCredentials via PASSWORD_SCHEME=bcrypt for hashed storage.
// The comparison is constant-time either way.
type PlainCredentials struct{}

func (PlainCredentials) Hash(password string) (string, error) {
	return password, nil
}

func (PlainCredentials) Verify(stored, candidate string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}

// BcryptCredentials stores bcrypt hashes.
type BcryptCredentials struct{}

func (BcryptCredentials) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (BcryptCredentials) Verify(stored, candidate string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(candidate)) == nil
}
