package authsession

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func authHeaderEcho(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()
	var seen []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)
	return server, &seen
}

func TestTransportAttachesBearerToken(t *testing.T) {
	server, seen := authHeaderEcho(t)

	store := NewStore(nil, nil)
	store.Put(context.Background(), Session{AccessToken: "abc"})

	client := &http.Client{Transport: &Transport{Source: store}}
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if len(*seen) != 1 || (*seen)[0] != "Bearer abc" {
		t.Fatalf("expected Authorization 'Bearer abc', saw %v", *seen)
	}
}

func TestTransportOmitsHeaderWhenAnonymous(t *testing.T) {
	server, seen := authHeaderEcho(t)

	client := &http.Client{Transport: &Transport{Source: NewStore(nil, nil)}}
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if len(*seen) != 1 || (*seen)[0] != "" {
		t.Fatalf("expected no Authorization header, saw %v", *seen)
	}
}

func TestTransportReadsTokenAtSendTime(t *testing.T) {
	ctx := context.Background()
	server, seen := authHeaderEcho(t)

	manager := NewManager(NewStore(nil, nil), nil, nil)
	client := manager.HTTPClient()

	// Anonymous request through the long-lived client.
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	manager.Login(ctx, LoginResponse{AccessToken: tokenExpiringIn(t, "a@crm.example", time.Hour)})
	resp, err = client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	manager.Logout(ctx)
	resp, err = client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	got := *seen
	if len(got) != 3 {
		t.Fatalf("expected 3 requests, saw %d", len(got))
	}
	if got[0] != "" {
		t.Fatalf("pre-login request must carry no header, saw %q", got[0])
	}
	if got[1] == "" {
		t.Fatal("post-login request must carry the bearer header")
	}
	if got[2] != "" {
		t.Fatalf("post-logout request must carry no header, saw %q", got[2])
	}
}

func TestTransportDoesNotMutateOriginalRequest(t *testing.T) {
	server, _ := authHeaderEcho(t)

	store := NewStore(nil, nil)
	store.Put(context.Background(), Session{AccessToken: "abc"})

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}

	client := &http.Client{Transport: &Transport{Source: store}}
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if got := req.Header.Get("Authorization"); got != "" {
		t.Fatalf("caller's request mutated: %q", got)
	}
}

func TestTransportPropagates401(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(server.Close)

	store := NewStore(nil, nil)
	store.Put(context.Background(), Session{AccessToken: "stale"})

	client := &http.Client{Transport: &Transport{Source: store}}
	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	// No refresh exchange, no retry: the 401 is the caller's to handle and
	// the session is untouched.
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 to propagate, got %d", resp.StatusCode)
	}
	if store.AccessToken() != "stale" {
		t.Fatal("a 401 must not clear the session")
	}
}
