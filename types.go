package authsession

// Session is a snapshot of the client's sign-in state. Values are copies;
// mutating a returned Session has no effect on the store.
type Session struct {
	AccessToken  string
	RefreshToken string
	Role         string
	UserID       string
	// Permissions is kept verbatim: order preserved, duplicates not
	// deduplicated. The server owns the vocabulary.
	Permissions []string
	// Email is derived from the access token's subject claim. It is never
	// persisted on its own and never reflects a token other than the one
	// currently stored.
	Email string
}

// Authenticated reports whether the snapshot carries an access token.
func (s Session) Authenticated() bool {
	return s.AccessToken != ""
}

// LoginResponse mirrors the admin API's POST /auth/login response body.
// A missing field is tolerated and stored as its zero value; the upstream
// contract is not enforced here.
type LoginResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	Role         string   `json:"role"`
	UserID       string   `json:"userId"`
	Permissions  []string `json:"permissions"`
}

// LogoutReason tells a Notifier why the session ended.
type LogoutReason int

const (
	// LogoutManual is an explicit Logout call.
	LogoutManual LogoutReason = iota
	// LogoutExpired is the auto-logout timer reaching the token's expiry.
	LogoutExpired
	// LogoutRestoreExpired is a stored token found already expired during
	// startup restoration.
	LogoutRestoreExpired
)

// String returns a short human-readable reason.
func (r LogoutReason) String() string {
	switch r {
	case LogoutManual:
		return "manual"
	case LogoutExpired:
		return "expired"
	case LogoutRestoreExpired:
		return "restore-expired"
	default:
		return "unknown"
	}
}

// Notifier receives the user-visible "you have been logged out" signal.
// It is invoked after the session is fully cleared and outside the
// manager's lock.
type Notifier func(reason LogoutReason)
