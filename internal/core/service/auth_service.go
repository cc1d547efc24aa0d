package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kawuz/coffee-shop-api/internal/core/domain"
	"github.com/kawuz/coffee-shop-api/internal/core/ports"
)

// AuthService implements login, registration and session resolution.
// Every call is stateless: CAPTCHA first, then credentials, then tokens.
type AuthService struct {
	users       ports.UserRepository
	captcha     ports.CaptchaVerifier
	credentials ports.CredentialVerifier
	tokens      ports.TokenIssuer
	logger      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	captcha ports.CaptchaVerifier,
	credentials ports.CredentialVerifier,
	tokens ports.TokenIssuer,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		captcha:     captcha,
		credentials: credentials,
		tokens:      tokens,
		logger:      logger,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password, captchaToken string) (string, *domain.User, error) {
	if !s.captcha.Verify(ctx, captchaToken) {
		return "", nil, domain.ErrCaptchaRejected
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Indistinguishable from a wrong password on purpose.
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.credentials.Verify(user.Password, password) {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info().Str("username", user.Username).Bool("is_admin", user.IsAdmin).Msg("user logged in")
	return token, user, nil
}

func (s *AuthService) Register(ctx context.Context, username, password, email, captchaToken string) (*domain.User, error) {
	if !s.captcha.Verify(ctx, captchaToken) {
		return nil, domain.ErrCaptchaRejected
	}

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	stored, err := s.credentials.Hash(password)
	if err != nil {
		return nil, err
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username: username,
		Password: stored,
		Email:    email,
		IsAdmin:  false,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", created.Username).Msg("user registered")
	return created, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	if token == "" || !s.tokens.Validate(token) {
		return nil, domain.ErrUnauthorized
	}

	username, err := s.tokens.Subject(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	return user, nil
}
