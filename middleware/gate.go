package middleware

import "net/http"

// SessionReader is the read-only view of the session the gate needs.
// Both *authsession.Store and *authsession.Manager satisfy it.
type SessionReader interface {
	Authenticated() bool
}

// Gate returns middleware that lets authenticated navigation through and
// redirects everything else to loginPath. The originally requested URL is
// discarded; after signing in the user lands on the dashboard root, same as
// the browser app.
func Gate(session SessionReader, loginPath string) func(http.Handler) http.Handler {
	if loginPath == "" {
		loginPath = "/login"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session == nil || !session.Authenticated() {
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
