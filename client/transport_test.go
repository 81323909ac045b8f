package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sliceworks/pizzactl/domain"
	serrors "github.com/sliceworks/pizzactl/errors"
	"github.com/sliceworks/pizzactl/store"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *store.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	kv := store.NewMemoryStore()
	c, err := New(Config{BaseURL: srv.URL, Store: kv, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(c.Close)
	return c, kv
}

func seedSession(t *testing.T, kv *store.MemoryStore, token, refresh string) {
	t.Helper()
	require.NoError(t, kv.Set(store.KeyUser, domain.Session{
		UserID: "u1", Email: "ada@example.com", Token: token, RefreshToken: refresh,
	}))
	require.NoError(t, kv.Set(store.KeyToken, token))
}

func TestTransportAttachesBearerToken(t *testing.T) {
	var gotAuth atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]domain.Order{})
	})

	c, kv := newTestClient(t, mux)
	seedSession(t, kv, "tok-1", "ref-1")

	_, err := c.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth.Load())
}

func TestTransportSkipsBootstrapEndpoints(t *testing.T) {
	var gotAuth atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/users/login", func(w http.ResponseWriter, r *http.Request) {
		gotAuth.Store(r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"accessToken": "tok-new",
			"user":        domain.User{ID: "u1", Role: domain.RoleCustomer},
		})
	})

	c, kv := newTestClient(t, mux)
	seedSession(t, kv, "tok-stale", "ref-1")

	_, err := c.Login(context.Background(), "ada@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "", gotAuth.Load())
}

func TestTransportRefreshAndRetryOnce(t *testing.T) {
	var orderCalls, refreshCalls atomic.Int32
	var retriedAuth atomic.Value

	mux := http.NewServeMux()
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if orderCalls.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		retriedAuth.Store(r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]domain.Order{{ID: "o1"}})
	})
	mux.HandleFunc("/users/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok-2"})
	})

	c, kv := newTestClient(t, mux)
	seedSession(t, kv, "tok-1", "ref-1")

	orders, err := c.ListOrders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)

	assert.Equal(t, int32(2), orderCalls.Load(), "original request plus one retry")
	assert.Equal(t, int32(1), refreshCalls.Load(), "exactly one refresh")
	assert.Equal(t, "Bearer tok-2", retriedAuth.Load())

	var sess domain.Session
	require.NoError(t, kv.Get(store.KeyUser, &sess))
	assert.Equal(t, "tok-2", sess.Token, "refreshed token persisted")
}

func TestTransportDoesNotLoopOnSecond401(t *testing.T) {
	var orderCalls, refreshCalls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		orderCalls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/users/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls.Add(1)
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok-2"})
	})

	c, kv := newTestClient(t, mux)
	seedSession(t, kv, "tok-1", "ref-1")

	_, err := c.ListOrders(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrUnauthenticated)

	assert.Equal(t, int32(2), orderCalls.Load(), "no retry beyond the first")
	assert.Equal(t, int32(1), refreshCalls.Load(), "no second refresh")
}

func TestTransportRefreshFailureClearsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/users/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	c, kv := newTestClient(t, mux)
	seedSession(t, kv, "tok-1", "ref-1")

	_, err := c.ListOrders(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrUnauthenticated)

	var sess domain.Session
	assert.ErrorIs(t, kv.Get(store.KeyUser, &sess), store.ErrNotFound)
	var tok string
	assert.ErrorIs(t, kv.Get(store.KeyToken, &tok), store.ErrNotFound)
}

func TestTransportCorruptSessionClearsAndFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach the backend")
	})

	c, kv := newTestClient(t, mux)
	kv.SetRaw(store.KeyUser, []byte("{corrupt"))

	_, err := c.ListOrders(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, serrors.ErrUnauthenticated)
	assert.Zero(t, kv.Len(), "corrupt state cleared")
}

func TestTransportRetryReplaysRequestBody(t *testing.T) {
	var bodies atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Items, 1)
		if bodies.Add(1) == 1 {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(domain.Order{ID: "o1"})
	})
	mux.HandleFunc("/users/refresh-token", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok-2"})
	})

	c, kv := newTestClient(t, mux)
	seedSession(t, kv, "tok-1", "ref-1")

	order, err := c.CreateOrder(context.Background(), CreateOrderRequest{
		Items: []domain.CartLine{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "o1", order.ID)
	assert.Equal(t, int32(2), bodies.Load())
}
