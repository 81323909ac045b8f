package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func newBoltStore(t *testing.T) *BoltStore {
	t.Helper()
	dir, err := os.MkdirTemp("", "pizzactl_store_test_")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	s, err := NewBoltStore(filepath.Join(dir, "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestBoltStoreRoundTrip(t *testing.T) {
	s := newBoltStore(t)

	require.NoError(t, s.Set("k", payload{Name: "margherita", Count: 2}))

	var got payload
	require.NoError(t, s.Get("k", &got))
	assert.Equal(t, payload{Name: "margherita", Count: 2}, got)
}

func TestBoltStoreMissingKey(t *testing.T) {
	s := newBoltStore(t)

	var got payload
	err := s.Get("absent", &got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBoltStoreDelete(t *testing.T) {
	s := newBoltStore(t)

	require.NoError(t, s.Set("k", payload{Name: "hawaii"}))
	require.NoError(t, s.Delete("k"))
	require.NoError(t, s.Delete("k")) // deleting absent keys is fine

	var got payload
	assert.ErrorIs(t, s.Get("k", &got), ErrNotFound)
}

func TestBoltStoreSurvivesReopen(t *testing.T) {
	dir, err := os.MkdirTemp("", "pizzactl_store_test_")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	path := filepath.Join(dir, "state.db")

	s, err := NewBoltStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("k", payload{Name: "quattro", Count: 4}))
	require.NoError(t, s.Close())

	s, err = NewBoltStore(path)
	require.NoError(t, err)
	defer s.Close()

	var got payload
	require.NoError(t, s.Get("k", &got))
	assert.Equal(t, "quattro", got.Name)
}

func TestMemoryStoreCorruptValue(t *testing.T) {
	s := NewMemoryStore()
	s.SetRaw("k", []byte("{not json"))

	var got payload
	err := s.Get("k", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set("k", []string{"a", "b"}))

	var got []string
	require.NoError(t, s.Get("k", &got))
	assert.Equal(t, []string{"a", "b"}, got)

	require.NoError(t, s.Delete("k"))
	assert.ErrorIs(t, s.Get("k", &got), ErrNotFound)
	assert.Zero(t, s.Len())
}
