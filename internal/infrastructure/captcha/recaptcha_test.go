package captcha

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newTestVerifier(t *testing.T, handler http.HandlerFunc) *RecaptchaVerifier {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewRecaptchaVerifier("test-secret", zerolog.Nop(), WithVerifyURL(server.URL))
}

func TestRecaptchaVerifier_Success(t *testing.T) {
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostFormValue("secret") != "test-secret" {
			t.Fatalf("unexpected secret: %q", r.PostFormValue("secret"))
		}
		if r.PostFormValue("response") != "client-token" {
			t.Fatalf("unexpected response token: %q", r.PostFormValue("response"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true}`))
	})

	if !verifier.Verify(context.Background(), "client-token") {
		t.Fatalf("expected verification to pass")
	}
}

func TestRecaptchaVerifier_Rejected(t *testing.T) {
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":false,"error-codes":["invalid-input-response"]}`))
	})

	if verifier.Verify(context.Background(), "bad-token") {
		t.Fatalf("expected verification to fail")
	}
}

func TestRecaptchaVerifier_EmptyToken(t *testing.T) {
	called := false
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	if verifier.Verify(context.Background(), "") {
		t.Fatalf("empty token must be rejected")
	}
	if called {
		t.Fatalf("empty token must not hit the service")
	}
}

func TestRecaptchaVerifier_ServiceError(t *testing.T) {
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	if verifier.Verify(context.Background(), "client-token") {
		t.Fatalf("non-200 response must fail closed")
	}
}

func TestRecaptchaVerifier_MalformedResponse(t *testing.T) {
	verifier := newTestVerifier(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not-json"))
	})

	if verifier.Verify(context.Background(), "client-token") {
		t.Fatalf("malformed response must fail closed")
	}
}

func TestRecaptchaVerifier_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	verifier := NewRecaptchaVerifier("test-secret", zerolog.Nop(),
		WithVerifyURL(server.URL),
		WithTimeout(time.Second),
	)

	if verifier.Verify(context.Background(), "client-token") {
		t.Fatalf("transport failure must fail closed")
	}
}
