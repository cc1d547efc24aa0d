package ports

import (
	"context"

	"github.com/kawuz/coffee-shop-api/internal/core/domain"
)

// TokenIssuer creates and inspects signed session tokens bound to a username.
type TokenIssuer interface {
	Issue(username string) (string, error)
	// Validate reports whether the token carries a valid signature and has not
	// expired. Any parse failure yields false, never an error.
	Validate(token string) bool
	// Subject extracts the bound username from a token. Errors if the token is
	// not valid.
	Subject(token string) (string, error)
}

// CaptchaVerifier checks a client-supplied challenge token against the
// third-party CAPTCHA service. Implementations fail closed: any transport or
// service error counts as a failed verification.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) bool
}

// CredentialVerifier abstracts how passwords are stored and compared, so the
// auth workflow never sees the strategy (plain comparison or bcrypt).
type CredentialVerifier interface {
	Hash(password string) (string, error)
	Verify(stored, candidate string) bool
}

type AuthService interface {
	// Login verifies the CAPTCHA token, then the credentials, and issues a
	// session token on success.
	Login(ctx context.Context, username, password, captchaToken string) (string, *domain.User, error)
	// Register verifies the CAPTCHA token and creates a new non-admin user.
	Register(ctx context.Context, username, password, email, captchaToken string) (*domain.User, error)
	// CurrentUser resolves a session token back to its user. Returns
	// domain.ErrUnauthorized when the token is absent, invalid, expired, or
	// its subject no longer resolves to a user.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)
}
