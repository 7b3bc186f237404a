package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crmkit/authsession"
)

func protectedHandler(hits *int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		w.WriteHeader(http.StatusOK)
	})
}

func TestGateRedirectsAnonymous(t *testing.T) {
	store := authsession.NewStore(nil, nil)
	hits := 0
	handler := Gate(store, "/login")(protectedHandler(&hits))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", rec.Code)
	}
	if location := rec.Header().Get("Location"); location != "/login" {
		t.Fatalf("expected redirect to /login, got %q", location)
	}
	if hits != 0 {
		t.Fatal("protected handler must not run for anonymous navigation")
	}
}

func TestGateAllowsAuthenticated(t *testing.T) {
	store := authsession.NewStore(nil, nil)
	store.Put(context.Background(), authsession.Session{AccessToken: "tok-abc"})

	hits := 0
	handler := Gate(store, "/login")(protectedHandler(&hits))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leads", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if hits != 1 {
		t.Fatalf("expected protected handler to run once, ran %d times", hits)
	}
}

func TestGateReevaluatesPerRequest(t *testing.T) {
	ctx := context.Background()
	store := authsession.NewStore(nil, nil)
	store.Put(ctx, authsession.Session{AccessToken: "tok-abc"})

	hits := 0
	handler := Gate(store, "/login")(protectedHandler(&hits))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agents", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 while authenticated, got %d", rec.Code)
	}

	// Logout between navigations: the next request must redirect.
	store.Clear(ctx)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/agents", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 after logout, got %d", rec.Code)
	}
}

func TestGateDefaultsLoginPath(t *testing.T) {
	store := authsession.NewStore(nil, nil)
	handler := Gate(store, "")(protectedHandler(new(int)))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tasks", nil))
	if location := rec.Header().Get("Location"); location != "/login" {
		t.Fatalf("expected default /login, got %q", location)
	}
}

func TestGateNilSessionRedirects(t *testing.T) {
	handler := Gate(nil, "/login")(protectedHandler(new(int)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 for nil session, got %d", rec.Code)
	}
}
