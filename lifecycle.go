package authsession

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/crmkit/authsession/token"
)

// Manager owns the session lifecycle: the Anonymous/Authenticated state
// machine, startup restoration, and the expiry-driven auto-logout timer.
// It is the only writer of its Store; everything else observes.
//
// At most one auto-logout timer is armed at any time. Arming a new one
// (login or restore) first invalidates the previous one, so a stale token's
// expiry can never log out a session established after it.
type Manager struct {
	store    *Store
	logger   *zap.Logger
	notifier Notifier
	metrics  *Metrics

	// httpTimeout bounds clients returned by HTTPClient. Zero means no
	// timeout. Set from Config.HTTP by Build; NewManager leaves it zero.
	httpTimeout time.Duration

	mu    sync.Mutex
	timer *time.Timer
	// generation invalidates timer callbacks that fired before Stop could
	// catch them. A callback only proceeds when its captured generation is
	// still current.
	generation uint64
}

// NewManager wires a Manager over an explicit Store. A nil logger becomes a
// no-op logger; a nil notifier drops logout notifications. Most callers go
// through [Builder] instead.
func NewManager(store *Store, logger *zap.Logger, notifier Notifier) *Manager {
	if store == nil {
		store = NewStore(nil, nil)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Manager{
		store:    store,
		logger:   logger,
		notifier: notifier,
		metrics:  newMetrics(),
	}
	store.metrics = m.metrics
	return m
}

// Login consumes an already-successful login response: it populates the
// store wholesale, derives the email from the token's subject claim, and
// arms the auto-logout timer at the token's expiry. A token that is already
// expired transitions straight back to Anonymous.
//
// Missing response fields are stored as zero values; Login never fails.
func (m *Manager) Login(ctx context.Context, resp LoginResponse) {
	session := Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		Role:         resp.Role,
		UserID:       resp.UserID,
		Permissions:  resp.Permissions,
	}
	if claims, err := token.Decode(resp.AccessToken); err == nil {
		session.Email = claims.Subject
	} else if resp.AccessToken != "" {
		m.metrics.Inc(MetricDecodeFailure)
		m.logger.Debug("access token did not decode, no derived email", zap.Error(err))
	}

	m.mu.Lock()
	m.cancelTimerLocked()
	m.store.Put(ctx, session)

	expiresMillis, ok := token.ExpirationMillis(resp.AccessToken)
	if !ok {
		// No derivable expiry: session holds until an explicit Logout.
		m.mu.Unlock()
		m.metrics.Inc(MetricLogin)
		return
	}

	delay := time.Until(time.UnixMilli(expiresMillis))
	if delay <= 0 {
		m.mu.Unlock()
		m.metrics.Inc(MetricLoginExpiredToken)
		m.logger.Info("login response carried an expired token")
		m.logout(ctx, LogoutExpired)
		return
	}

	m.armTimerLocked(delay)
	m.mu.Unlock()

	m.metrics.Inc(MetricLogin)
	m.logger.Debug("session established",
		zap.String("user_id", resp.UserID),
		zap.String("role", resp.Role),
		zap.Duration("auto_logout_in", delay))
}

// Logout cancels any armed timer, clears the store, and notifies. Calling
// it while already Anonymous re-clears and stays silent.
func (m *Manager) Logout(ctx context.Context) {
	m.logout(ctx, LogoutManual)
}

// Restore rebuilds the session from durable storage, once per process
// start. A stored token still in date re-arms the timer for the remaining
// delay; a stale one transitions straight to Anonymous rather than leaving
// an authenticated-looking state with no timer behind it.
func (m *Manager) Restore(ctx context.Context) {
	m.mu.Lock()
	m.cancelTimerLocked()
	m.store.Load(ctx)

	snapshot := m.store.Snapshot()
	if snapshot.AccessToken == "" {
		m.mu.Unlock()
		return
	}

	expiresMillis, ok := token.ExpirationMillis(snapshot.AccessToken)
	delay := time.Duration(0)
	if ok {
		delay = time.Until(time.UnixMilli(expiresMillis))
	}
	if !ok || delay <= 0 {
		wasAuthenticated := m.logoutLocked(ctx)
		m.mu.Unlock()
		m.metrics.Inc(MetricRestoreExpired)
		m.logger.Info("stored session already expired, discarding")
		if wasAuthenticated {
			m.notify(LogoutRestoreExpired)
		}
		return
	}

	if claims, err := token.Decode(snapshot.AccessToken); err == nil {
		m.store.setEmail(claims.Subject)
	}
	m.armTimerLocked(delay)
	m.mu.Unlock()

	m.metrics.Inc(MetricRestoreResumed)
	m.logger.Debug("session restored",
		zap.String("user_id", snapshot.UserID),
		zap.Duration("auto_logout_in", delay))
}

// Authenticated reports whether an access token is currently held.
func (m *Manager) Authenticated() bool {
	return m.store.Authenticated()
}

// Session returns a snapshot of the current session state.
func (m *Manager) Session() Session {
	return m.store.Snapshot()
}

// Store exposes the underlying session store for read-only collaborators
// such as the route gate.
func (m *Manager) Store() *Store {
	return m.store
}

// Metrics exposes the lifecycle counters.
func (m *Manager) Metrics() *Metrics {
	return m.metrics
}

func (m *Manager) logout(ctx context.Context, reason LogoutReason) {
	m.mu.Lock()
	wasAuthenticated := m.logoutLocked(ctx)
	m.mu.Unlock()

	if !wasAuthenticated {
		return
	}
	switch reason {
	case LogoutExpired:
		m.metrics.Inc(MetricLogoutExpired)
	default:
		m.metrics.Inc(MetricLogoutManual)
	}
	m.logger.Info("session ended", zap.Stringer("reason", reason))
	m.notify(reason)
}

// logoutLocked cancels the timer before clearing state, so no stale timer
// can fire into a later session.
func (m *Manager) logoutLocked(ctx context.Context) bool {
	m.cancelTimerLocked()
	wasAuthenticated := m.store.Authenticated()
	m.store.Clear(ctx)
	return wasAuthenticated
}

func (m *Manager) armTimerLocked(delay time.Duration) {
	m.generation++
	generation := m.generation
	m.timer = time.AfterFunc(delay, func() {
		m.expire(generation)
	})
}

func (m *Manager) cancelTimerLocked() {
	m.generation++
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
}

func (m *Manager) expire(generation uint64) {
	m.mu.Lock()
	if generation != m.generation {
		// A newer login or an explicit logout superseded this timer.
		m.mu.Unlock()
		return
	}
	m.timer = nil
	wasAuthenticated := m.logoutLocked(context.Background())
	m.mu.Unlock()

	if !wasAuthenticated {
		return
	}
	m.metrics.Inc(MetricLogoutExpired)
	m.logger.Info("access token expired, auto-logout")
	m.notify(LogoutExpired)
}

func (m *Manager) notify(reason LogoutReason) {
	if m.notifier == nil {
		return
	}
	m.notifier(reason)
}
