// Package captcha verifies client challenge tokens against the Google
// reCAPTCHA siteverify endpoint. Verification fails closed: any transport
// error, timeout, or malformed response counts as a rejected challenge.
package captcha

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const defaultVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

const defaultRequestTimeout = 5 * time.Second

// RecaptchaVerifier calls the third-party siteverify API.
type RecaptchaVerifier struct {
	secret    string
	verifyURL string
	client    *http.Client
	logger    zerolog.Logger
}

// Option customises a RecaptchaVerifier.
type Option func(*RecaptchaVerifier)

// WithVerifyURL overrides the siteverify endpoint. Used in tests.
func WithVerifyURL(u string) Option {
	return func(v *RecaptchaVerifier) { v.verifyURL = u }
}

// WithTimeout bounds each verification call so a slow third party cannot
// hang a request worker.
func WithTimeout(d time.Duration) Option {
	return func(v *RecaptchaVerifier) { v.client.Timeout = d }
}

func NewRecaptchaVerifier(secret string, logger zerolog.Logger, opts ...Option) *RecaptchaVerifier {
	v := &RecaptchaVerifier{
		secret:    secret,
		verifyURL: defaultVerifyURL,
		client:    &http.Client{Timeout: defaultRequestTimeout},
		logger:    logger,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes,omitempty"`
}

// Verify reports whether token passes the challenge. An empty token is
// rejected without a network call.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}

	form := url.Values{}
	form.Set("secret", v.secret)
	form.Set("response", token)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		v.logger.Warn().Err(err).Msg("captcha request build failed")
		return false
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Warn().Err(err).Msg("captcha verification call failed")
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		v.logger.Warn().Int("status", resp.StatusCode).Msg("captcha service returned non-200")
		return false
	}

	var body siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		v.logger.Warn().Err(err).Msg("captcha response decode failed")
		return false
	}

	if !body.Success && len(body.ErrorCodes) > 0 {
		v.logger.Debug().Strs("error_codes", body.ErrorCodes).Msg("captcha rejected")
	}
	return body.Success
}
