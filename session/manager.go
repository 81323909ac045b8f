// Package session owns the "who is logged in" state: load from durable
// storage, login/logout transitions, and a background watchdog that logs
// out idle sessions whose token expired.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sliceworks/pizzactl/domain"
	serrors "github.com/sliceworks/pizzactl/errors"
	"github.com/sliceworks/pizzactl/store"
	"github.com/sliceworks/pizzactl/token"
)

// State is the manager's lifecycle position.
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateAuthenticated
	StateAnonymous
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAuthenticated:
		return "authenticated"
	case StateAnonymous:
		return "anonymous"
	default:
		return "uninitialized"
	}
}

// DefaultWatchInterval is how often the watchdog re-checks token validity.
const DefaultWatchInterval = time.Minute

// Config configures a Manager.
type Config struct {
	Store store.Store

	// WatchInterval overrides the watchdog period. Defaults to
	// DefaultWatchInterval.
	WatchInterval time.Duration

	// OnLogout runs after every transition to Anonymous initiated by
	// Logout (including watchdog-triggered expiry). The command surface
	// uses it as its navigation hook; never invoked with locks held.
	OnLogout func()

	// TokenValid overrides the token validity check. Defaults to
	// token.Valid.
	TokenValid func(string) bool

	Logger zerolog.Logger
}

// Manager is the single source of truth for the current session. Safe for
// concurrent use; the watchdog goroutine reads alongside callers.
type Manager struct {
	mu       sync.Mutex
	store    store.Store
	state    State
	current  domain.Session
	interval time.Duration
	onLogout func()
	valid    func(string) bool
	log      zerolog.Logger
}

// NewManager creates a Manager in the Uninitialized state. Call Load before
// using it.
func NewManager(cfg Config) *Manager {
	if cfg.WatchInterval <= 0 {
		cfg.WatchInterval = DefaultWatchInterval
	}
	if cfg.TokenValid == nil {
		cfg.TokenValid = token.Valid
	}
	return &Manager{
		store:    cfg.Store,
		state:    StateUninitialized,
		interval: cfg.WatchInterval,
		onLogout: cfg.OnLogout,
		valid:    cfg.TokenValid,
		log:      cfg.Logger,
	}
}

// Load initializes the session from durable storage. A persisted session
// with a valid token yields Authenticated; anything else (absent, corrupt,
// expired) clears storage and yields Anonymous.
func (m *Manager) Load() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state = StateLoading

	var persisted domain.Session
	err := m.store.Get(store.KeyUser, &persisted)
	switch {
	case err == nil && m.valid(persisted.Token):
		m.current = persisted
		m.state = StateAuthenticated
		m.log.Debug().Str("user", persisted.Email).Msg("restored session from storage")
	default:
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			m.log.Warn().Err(err).Msg("discarding unreadable persisted session")
		}
		m.clearLocked()
		m.state = StateAnonymous
	}
}

// Login merges newData over any existing session, preserving the current
// token when newData omits one. The resulting token must be present and
// currently valid; otherwise storage is cleared and an AuthError returned.
func (m *Manager) Login(newData domain.Session) error {
	m.mu.Lock()

	merged := mergeSession(m.current, newData)
	if merged.Token == "" {
		m.clearLocked()
		m.state = StateAnonymous
		m.mu.Unlock()
		return serrors.NewAuth("login requires an access token", nil)
	}
	if !m.valid(merged.Token) {
		m.clearLocked()
		m.state = StateAnonymous
		m.mu.Unlock()
		return serrors.NewAuth("access token is expired", serrors.ErrSessionExpired)
	}

	if err := m.store.Set(store.KeyUser, merged); err != nil {
		m.mu.Unlock()
		return err
	}
	if err := m.store.Set(store.KeyToken, merged.Token); err != nil {
		m.mu.Unlock()
		return err
	}

	m.current = merged
	m.state = StateAuthenticated
	m.log.Info().Str("user", merged.Email).Str("role", merged.Role).Msg("logged in")
	m.mu.Unlock()
	return nil
}

// Logout clears the in-memory and persisted session and transitions to
// Anonymous. Idempotent; the OnLogout hook fires on every call.
func (m *Manager) Logout() {
	m.mu.Lock()
	wasAuthenticated := m.state == StateAuthenticated
	m.clearLocked()
	m.state = StateAnonymous
	m.mu.Unlock()

	if wasAuthenticated {
		m.log.Info().Msg("logged out")
	}
	if m.onLogout != nil {
		m.onLogout()
	}
}

// Current returns a copy of the session and whether one is present.
func (m *Manager) Current() (domain.Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateAuthenticated {
		return domain.Session{}, false
	}
	return m.current, true
}

// IsAuthenticated re-evaluates token validity on every call rather than
// caching it, so a token that expired since the last check reads false
// immediately.
func (m *Manager) IsAuthenticated() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAuthenticated && m.valid(m.current.Token)
}

// Loading reports whether initialization has not finished yet.
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateUninitialized || m.state == StateLoading
}

// State returns the current lifecycle state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// StartWatchdog launches the expiry watchdog. While Authenticated it
// re-checks token validity every WatchInterval and logs out on the first
// detected invalidity, catching idle sessions no request would notice.
// Returns when ctx is cancelled.
func (m *Manager) StartWatchdog(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if m.expiredTick() {
					m.log.Info().Msg("session expired, logging out")
					m.Logout()
				}
			}
		}
	}()
}

// expiredTick reports whether the watchdog should trigger a logout.
func (m *Manager) expiredTick() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == StateAuthenticated && !m.valid(m.current.Token)
}

func (m *Manager) clearLocked() {
	m.current = domain.Session{}
	if err := m.store.Delete(store.KeyUser); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	if err := m.store.Delete(store.KeyToken); err != nil {
		m.log.Warn().Err(err).Msg("failed to clear persisted token")
	}
}

// mergeSession overlays non-empty fields of next onto base, keeping base's
// token when next carries none.
func mergeSession(base, next domain.Session) domain.Session {
	merged := base
	if next.UserID != "" {
		merged.UserID = next.UserID
	}
	if next.Name != "" {
		merged.Name = next.Name
	}
	if next.Email != "" {
		merged.Email = next.Email
	}
	if next.Role != "" {
		merged.Role = next.Role
	}
	if next.Token != "" {
		merged.Token = next.Token
	}
	if next.RefreshToken != "" {
		merged.RefreshToken = next.RefreshToken
	}
	return merged
}
