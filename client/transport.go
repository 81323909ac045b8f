package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sliceworks/pizzactl/domain"
	serrors "github.com/sliceworks/pizzactl/errors"
	"github.com/sliceworks/pizzactl/store"
)

// retryMarker flags a request that already went through the 401
// refresh-and-retry path, so a second 401 propagates instead of looping.
type retryMarker struct{}

// Auth-bootstrap endpoints never get a bearer token attached and are never
// retried on 401.
var bootstrapSuffixes = []string{
	"/users/login",
	"/users/register",
	"/users/refresh-token",
	"/users/forgot-password",
	"/users/reset-password",
	"/users/verify-email",
}

func isBootstrap(path string) bool {
	for _, s := range bootstrapSuffixes {
		if strings.HasSuffix(path, s) {
			return true
		}
	}
	return false
}

// authTransport attaches the persisted bearer token to outgoing requests
// and recovers once from access-token expiry: on a 401 it calls the
// refresh endpoint directly (bypassing itself), persists the new token and
// replays the original request exactly once. Unrecoverable auth failures
// clear the persisted session and surface as AuthError; navigation is the
// caller's business.
type authTransport struct {
	base       http.RoundTripper
	store      store.Store
	refreshURL string
	log        zerolog.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if !isBootstrap(req.URL.Path) {
		sess, err := t.session()
		if err != nil {
			t.clearSession()
			return nil, serrors.NewAuth("persisted session is unreadable", err)
		}
		if sess.Token != "" {
			req.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized || isBootstrap(req.URL.Path) {
		return resp, nil
	}
	if req.Context().Value(retryMarker{}) != nil {
		return resp, nil
	}

	newToken, err := t.refresh(req.Context())
	if err != nil {
		resp.Body.Close()
		t.clearSession()
		return nil, serrors.NewAuth("token refresh failed", err)
	}
	resp.Body.Close()

	retry := req.Clone(context.WithValue(req.Context(), retryMarker{}, struct{}{}))
	if req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		retry.Body = body
	}
	retry.Header.Set("Authorization", "Bearer "+newToken)
	t.log.Debug().Str("path", req.URL.Path).Msg("replaying request with refreshed token")
	return t.RoundTrip(retry)
}

// session reads the persisted session. An absent session is not an error;
// the request simply goes out unauthenticated and the server answers 401.
func (t *authTransport) session() (domain.Session, error) {
	var sess domain.Session
	err := t.store.Get(store.KeyUser, &sess)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Session{}, nil
	}
	if err != nil {
		return domain.Session{}, err
	}
	return sess, nil
}

// refresh exchanges the stored refresh token for a new access token using
// a bare http.Client, so the call cannot recurse through this transport.
func (t *authTransport) refresh(ctx context.Context) (string, error) {
	sess, err := t.session()
	if err != nil {
		return "", err
	}

	payload, err := json.Marshal(map[string]string{"refreshToken": sess.RefreshToken})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.refreshURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	bare := &http.Client{Timeout: 10 * time.Second}
	resp, err := bare.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("refresh endpoint returned status %d", resp.StatusCode)
	}

	var out struct {
		Token        string `json:"token"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode refresh response: %w", err)
	}
	newToken := out.AccessToken
	if newToken == "" {
		newToken = out.Token
	}
	if newToken == "" {
		return "", errors.New("refresh response did not contain a token")
	}

	sess.Token = newToken
	if out.RefreshToken != "" {
		sess.RefreshToken = out.RefreshToken
	}
	if err := t.store.Set(store.KeyUser, sess); err != nil {
		return "", err
	}
	if err := t.store.Set(store.KeyToken, newToken); err != nil {
		return "", err
	}
	return newToken, nil
}

func (t *authTransport) clearSession() {
	if err := t.store.Delete(store.KeyUser); err != nil {
		t.log.Warn().Err(err).Msg("failed to clear persisted session")
	}
	if err := t.store.Delete(store.KeyToken); err != nil {
		t.log.Warn().Err(err).Msg("failed to clear persisted token")
	}
}

var _ http.RoundTripper = (*authTransport)(nil)
