package authsession

import "net/http"

// TokenSource supplies the bearer credential at request-send time. *Store
// satisfies it; tests substitute fakes.
type TokenSource interface {
	AccessToken() string
}

// Transport is an http.RoundTripper that attaches the current session's
// bearer token to every outgoing request. The token is read when the
// request is sent, not when the transport is built, so one client reused
// across the whole session lifetime always carries the current credential.
//
// With no token present the request goes out untouched; rejecting
// unauthenticated calls is the server's job. A 401 response propagates to
// the caller unchanged, with no refresh exchange and no retry.
type Transport struct {
	// Source supplies the token. Required.
	Source TokenSource
	// Base performs the actual round trip. nil means http.DefaultTransport.
	Base http.RoundTripper
}

// RoundTrip implements http.RoundTripper. The incoming request is never
// mutated; when a token is present a shallow clone carries the header.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	accessToken := ""
	if t.Source != nil {
		accessToken = t.Source.AccessToken()
	}
	if accessToken != "" {
		clone := req.Clone(req.Context())
		clone.Header.Set("Authorization", "Bearer "+accessToken)
		req = clone
	}
	return t.base().RoundTrip(req)
}

func (t *Transport) base() http.RoundTripper {
	if t.Base != nil {
		return t.Base
	}
	return http.DefaultTransport
}

// HTTPClient returns a client whose every request carries the session's
// current bearer token. Safe to build once and reuse across logins. The
// client's timeout comes from Config.HTTP when the manager was assembled
// through Build.
func (m *Manager) HTTPClient() *http.Client {
	return &http.Client{
		Transport: &Transport{Source: m.store},
		Timeout:   m.httpTimeout,
	}
}
