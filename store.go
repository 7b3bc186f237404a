package authsession

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/crmkit/authsession/storage"
)

// Durable-storage keys. These five are the whole persisted surface; the
// derived email is recomputed from the access token and never written.
const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keyRole         = "role"
	keyUserID       = "userId"
	keyPermissions  = "permissions"
)

var sessionKeys = []string{keyAccessToken, keyRefreshToken, keyRole, keyUserID, keyPermissions}

// Store is the single process-wide source of truth for the current session.
// It holds an in-memory snapshot mirrored synchronously into a durable
// backend, so a restart immediately after any mutation observes the same
// state.
//
// Store is safe for concurrent use: the HTTP transport and the route gate
// read while the lifecycle manager writes.
type Store struct {
	mu      sync.RWMutex
	backend storage.Backend
	logger  *zap.Logger
	metrics *Metrics

	session Session

	// degraded is latched on the first backend failure; from then on the
	// store is memory-only for the remainder of the process lifetime.
	degraded bool
}

// NewStore wraps the given backend. A nil backend yields a memory-only
// store; a nil logger is replaced with a no-op logger.
func NewStore(backend storage.Backend, logger *zap.Logger) *Store {
	if backend == nil {
		backend = storage.NewMemory()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{backend: backend, logger: logger}
}

// Load replaces the in-memory snapshot with whatever the durable backend
// holds. Missing keys read as empty; a malformed permissions blob decodes to
// an empty list. Backend failures degrade the store rather than erroring.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = Session{
		AccessToken:  s.readLocked(ctx, keyAccessToken),
		RefreshToken: s.readLocked(ctx, keyRefreshToken),
		Role:         s.readLocked(ctx, keyRole),
		UserID:       s.readLocked(ctx, keyUserID),
		Permissions:  decodePermissions(s.readLocked(ctx, keyPermissions)),
	}
}

// Put replaces the session wholesale and mirrors the five durable keys.
func (s *Store) Put(ctx context.Context, session Session) {
	session.Permissions = clonePermissions(session.Permissions)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = session
	s.writeLocked(ctx, keyAccessToken, session.AccessToken)
	s.writeLocked(ctx, keyRefreshToken, session.RefreshToken)
	s.writeLocked(ctx, keyRole, session.Role)
	s.writeLocked(ctx, keyUserID, session.UserID)
	s.writeLocked(ctx, keyPermissions, encodePermissions(session.Permissions))
}

// Clear zeroes the session and deletes every durable key.
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.session = Session{}
	if s.degraded {
		return
	}
	for _, key := range sessionKeys {
		if err := s.backend.Delete(ctx, key); err != nil {
			s.degradeLocked(err)
			return
		}
	}
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session := s.session
	session.Permissions = clonePermissions(session.Permissions)
	return session
}

// AccessToken returns the current bearer credential, or "" when anonymous.
func (s *Store) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.AccessToken
}

// Authenticated reports whether an access token is present.
func (s *Store) Authenticated() bool {
	return s.AccessToken() != ""
}

// setEmail updates the derived email in memory only.
func (s *Store) setEmail(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.session.Email = email
}

// Degraded reports whether the store has fallen back to memory-only mode.
func (s *Store) Degraded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.degraded
}

func (s *Store) readLocked(ctx context.Context, key string) string {
	if s.degraded {
		return ""
	}
	value, err := s.backend.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ""
		}
		s.degradeLocked(err)
		return ""
	}
	return value
}

func (s *Store) writeLocked(ctx context.Context, key, value string) {
	if s.degraded {
		return
	}
	if value == "" {
		if err := s.backend.Delete(ctx, key); err != nil {
			s.degradeLocked(err)
		}
		return
	}
	if err := s.backend.Set(ctx, key, value); err != nil {
		s.degradeLocked(err)
	}
}

func (s *Store) degradeLocked(err error) {
	if s.degraded {
		return
	}
	s.degraded = true
	s.metrics.Inc(MetricStorageDegraded)
	s.logger.Warn("durable session storage unavailable, continuing in memory only",
		zap.Error(errors.Join(ErrStorageUnavailable, err)))
}

func encodePermissions(permissions []string) string {
	if len(permissions) == 0 {
		return ""
	}
	raw, err := json.Marshal(permissions)
	if err != nil {
		return ""
	}
	return string(raw)
}

func decodePermissions(raw string) []string {
	if raw == "" {
		return nil
	}
	var permissions []string
	if err := json.Unmarshal([]byte(raw), &permissions); err != nil {
		return nil
	}
	return permissions
}

func clonePermissions(permissions []string) []string {
	if permissions == nil {
		return nil
	}
	return append([]string(nil), permissions...)
}
