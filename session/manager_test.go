package session

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sliceworks/pizzactl/domain"
	serrors "github.com/sliceworks/pizzactl/errors"
	"github.com/sliceworks/pizzactl/store"
)

func newManager(t *testing.T, valid *atomic.Bool) (*Manager, *store.MemoryStore) {
	t.Helper()
	kv := store.NewMemoryStore()
	m := NewManager(Config{
		Store:         kv,
		WatchInterval: 10 * time.Millisecond,
		TokenValid:    func(string) bool { return valid.Load() },
		Logger:        zerolog.Nop(),
	})
	return m, kv
}

func TestLoginPersistsSession(t *testing.T) {
	var valid atomic.Bool
	valid.Store(true)
	m, kv := newManager(t, &valid)
	m.Load()
	require.Equal(t, StateAnonymous, m.State())

	err := m.Login(domain.Session{
		UserID: "u1", Email: "ada@example.com", Role: domain.RoleCustomer,
		Token: "tok-1", RefreshToken: "ref-1",
	})
	require.NoError(t, err)

	assert.True(t, m.IsAuthenticated())
	assert.Equal(t, StateAuthenticated, m.State())

	var persisted domain.Session
	require.NoError(t, kv.Get(store.KeyUser, &persisted))
	assert.Equal(t, "tok-1", persisted.Token)

	var tok string
	require.NoError(t, kv.Get(store.KeyToken, &tok))
	assert.Equal(t, "tok-1", tok)
}

func TestLoginExpiredTokenFailsAndClears(t *testing.T) {
	var valid atomic.Bool
	m, kv := newManager(t, &valid) // validity stays false
	m.Load()

	err := m.Login(domain.Session{UserID: "u1", Token: "tok-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrUnauthenticated)

	assert.False(t, m.IsAuthenticated())
	assert.Zero(t, kv.Len())
}

func TestLoginWithoutTokenFails(t *testing.T) {
	var valid atomic.Bool
	valid.Store(true)
	m, _ := newManager(t, &valid)
	m.Load()

	err := m.Login(domain.Session{UserID: "u1", Email: "ada@example.com"})
	assert.ErrorIs(t, err, serrors.ErrUnauthenticated)
}

func TestLoginPreservesExistingToken(t *testing.T) {
	var valid atomic.Bool
	valid.Store(true)
	m, _ := newManager(t, &valid)
	m.Load()

	require.NoError(t, m.Login(domain.Session{UserID: "u1", Token: "tok-1"}))
	// Profile refresh without a token keeps the session's token.
	require.NoError(t, m.Login(domain.Session{UserID: "u1", Name: "Ada"}))

	current, ok := m.Current()
	require.True(t, ok)
	assert.Equal(t, "tok-1", current.Token)
	assert.Equal(t, "Ada", current.Name)
}

func TestLoadRestoresValidSession(t *testing.T) {
	var valid atomic.Bool
	valid.Store(true)
	m, kv := newManager(t, &valid)
	require.NoError(t, kv.Set(store.KeyUser, domain.Session{UserID: "u1", Token: "tok-1"}))

	m.Load()
	assert.Equal(t, StateAuthenticated, m.State())
	assert.False(t, m.Loading())
}

func TestLoadClearsExpiredSession(t *testing.T) {
	var valid atomic.Bool
	m, kv := newManager(t, &valid)
	require.NoError(t, kv.Set(store.KeyUser, domain.Session{UserID: "u1", Token: "tok-1"}))

	m.Load()
	assert.Equal(t, StateAnonymous, m.State())
	assert.Zero(t, kv.Len())
}

func TestLoadClearsCorruptSession(t *testing.T) {
	var valid atomic.Bool
	valid.Store(true)
	m, kv := newManager(t, &valid)
	kv.SetRaw(store.KeyUser, []byte("{corrupt"))

	m.Load()
	assert.Equal(t, StateAnonymous, m.State())
	assert.Zero(t, kv.Len())
}

func TestLogoutIsIdempotent(t *testing.T) {
	var valid atomic.Bool
	valid.Store(true)
	m, kv := newManager(t, &valid)
	m.Load()
	require.NoError(t, m.Login(domain.Session{UserID: "u1", Token: "tok-1"}))

	var hookCalls atomic.Int32
	m.onLogout = func() { hookCalls.Add(1) }

	m.Logout()
	m.Logout()

	assert.Equal(t, StateAnonymous, m.State())
	assert.Zero(t, kv.Len())
	assert.Equal(t, int32(2), hookCalls.Load())
}

func TestWatchdogLogsOutOnExpiry(t *testing.T) {
	var valid atomic.Bool
	valid.Store(true)
	m, kv := newManager(t, &valid)
	m.Load()
	require.NoError(t, m.Login(domain.Session{UserID: "u1", Token: "tok-1"}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m.StartWatchdog(ctx)

	// Token externally invalidated; the next tick must log out.
	valid.Store(false)

	require.Eventually(t, func() bool {
		return m.State() == StateAnonymous
	}, time.Second, 5*time.Millisecond)
	assert.Zero(t, kv.Len())
}

func TestIsAuthenticatedReEvaluates(t *testing.T) {
	var valid atomic.Bool
	valid.Store(true)
	m, _ := newManager(t, &valid)
	m.Load()
	require.NoError(t, m.Login(domain.Session{UserID: "u1", Token: "tok-1"}))
	require.True(t, m.IsAuthenticated())

	// No watchdog running: the flag alone must notice the expiry.
	valid.Store(false)
	assert.False(t, m.IsAuthenticated())
}
