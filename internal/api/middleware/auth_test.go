package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/kawuz/coffee-shop-api/internal/core/domain"
)

type stubTokenIssuer struct {
	valid map[string]string // token -> subject
}

func (s *stubTokenIssuer) Issue(username string) (string, error) {
	return "token-" + username, nil
}

func (s *stubTokenIssuer) Validate(token string) bool {
	_, ok := s.valid[token]
	return ok
}

func (s *stubTokenIssuer) Subject(token string) (string, error) {
	subject, ok := s.valid[token]
	if !ok {
		return "", errors.New("invalid token")
	}
	return subject, nil
}

func okHandler(c echo.Context) error {
	username, _ := c.Get("username").(string)
	return c.String(http.StatusOK, username)
}

func runAuth(t *testing.T, tokens *stubTokenIssuer, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Auth(tokens, "auth.notLoggedIn")(okHandler)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec
}

func TestAuth_ValidToken(t *testing.T) {
	tokens := &stubTokenIssuer{valid: map[string]string{"token-alice": "alice"}}

	rec := runAuth(t, tokens, &http.Cookie{Name: SessionCookieName, Value: "token-alice"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "alice" {
		t.Fatalf("expected username injected, got %q", rec.Body.String())
	}
}

func TestAuth_MissingCookie(t *testing.T) {
	tokens := &stubTokenIssuer{valid: map[string]string{}}

	rec := runAuth(t, tokens, nil)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "auth.notLoggedIn") {
		t.Fatalf("expected auth.notLoggedIn, got %s", rec.Body.String())
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	tokens := &stubTokenIssuer{valid: map[string]string{}}

	rec := runAuth(t, tokens, &http.Cookie{Name: SessionCookieName, Value: "forged"})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_EmptyCookieValue(t *testing.T) {
	tokens := &stubTokenIssuer{valid: map[string]string{"": ""}}

	rec := runAuth(t, tokens, &http.Cookie{Name: SessionCookieName, Value: ""})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuth_CustomUnauthorizedCode(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/order/create", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	tokens := &stubTokenIssuer{valid: map[string]string{}}
	if err := Auth(tokens, "order.notLoggedIn")(okHandler)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}

	if !strings.Contains(rec.Body.String(), "order.notLoggedIn") {
		t.Fatalf("expected order.notLoggedIn, got %s", rec.Body.String())
	}
}

type stubUserRepo struct {
	users map[string]*domain.User
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.users[user.Username] = user
	return user, nil
}

func runRequireAdmin(t *testing.T, repo *stubUserRepo, username string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/product", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if username != "" {
		c.Set("username", username)
	}

	if err := RequireAdmin(repo)(okHandler)(c); err != nil {
		t.Fatalf("middleware error: %v", err)
	}
	return rec
}

func TestRequireAdmin_Admin(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"root": {Username: "root", IsAdmin: true},
	}}

	rec := runRequireAdmin(t, repo, "root")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRequireAdmin_NonAdmin(t *testing.T) {
	repo := &stubUserRepo{users: map[string]*domain.User{
		"alice": {Username: "alice", IsAdmin: false},
	}}

	rec := runRequireAdmin(t, repo, "alice")

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "auth.forbidden") {
		t.Fatalf("expected auth.forbidden, got %s", rec.Body.String())
	}
}

func TestRequireAdmin_NoUsername(t *testing.T) {
	rec := runRequireAdmin(t, &stubUserRepo{users: map[string]*domain.User{}}, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAdmin_UnknownUser(t *testing.T) {
	rec := runRequireAdmin(t, &stubUserRepo{users: map[string]*domain.User{}}, "ghost")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
