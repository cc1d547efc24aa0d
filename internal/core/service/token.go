package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// HS256 requires a key of at least 256 bits.
const minSigningKeyBytes = 32

const defaultTokenTTL = 24 * time.Hour

// TokenIssuer creates and inspects signed session tokens. The signing key is
// injected at construction and immutable for the process lifetime, so issuing
// and validating need no locking.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
}

func NewTokenIssuer(secret string, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) < minSigningKeyBytes {
		return nil, fmt.Errorf("token issuer: signing key must be at least %d bytes, got %d", minSigningKeyBytes, len(secret))
	}
	if ttl == 0 {
		ttl = defaultTokenTTL
	}
	return &TokenIssuer{key: []byte(secret), ttl: ttl}, nil
}

// Issue produces a signed token bound to username, expiring after the
// configured TTL.
func (i *TokenIssuer) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.key)
}

// Validate reports whether token carries a valid signature and has not
// expired. Parse failures of any kind yield false.
func (i *TokenIssuer) Validate(token string) bool {
	_, err := i.parse(token)
	return err == nil
}

// Subject returns the username a valid token is bound to.
func (i *TokenIssuer) Subject(token string) (string, error) {
	claims, err := i.parse(token)
	if err != nil {
		return "", fmt.Errorf("token subject: %w", err)
	}
	return claims.Subject, nil
}

func (i *TokenIssuer) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.key, nil
	})
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return claims, nil
}
