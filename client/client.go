// Package client is the REST client for the storefront backend. Service
// wrappers normalize transport failures into the errors taxonomy so
// consumers never inspect raw HTTP shapes.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"github.com/rs/zerolog"

	"github.com/sliceworks/pizzactl/domain"
	serrors "github.com/sliceworks/pizzactl/errors"
	"github.com/sliceworks/pizzactl/store"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultMenuCacheTTL = time.Minute
	defaultUserAgent    = "pizzactl"
)

// Config holds client construction parameters. Zero values fall back to
// sensible defaults.
type Config struct {
	// BaseURL is the API root, e.g. "https://shop.example.com/api/v1".
	BaseURL string

	// Timeout bounds each request. Defaults to 10s.
	Timeout time.Duration

	// MenuCacheTTL controls how long catalog listings are served from
	// memory. Defaults to one minute.
	MenuCacheTTL time.Duration

	UserAgent string

	// Store is the durable session storage the transport reads tokens
	// from and writes refreshed tokens to.
	Store store.Store

	Logger zerolog.Logger
}

// Client talks to the storefront backend.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	store     store.Store
	log       zerolog.Logger
	menu      *ttlcache.Cache[string, []domain.Pizza]
}

// New creates a Client. The underlying transport transparently attaches
// bearer tokens and performs the single 401 refresh-and-retry.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("client base URL is required")
	}
	if cfg.Store == nil {
		return nil, errors.New("client store is required")
	}
	base := strings.TrimRight(cfg.BaseURL, "/")
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", cfg.BaseURL, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.MenuCacheTTL <= 0 {
		cfg.MenuCacheTTL = defaultMenuCacheTTL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	transport := &authTransport{
		base:       http.DefaultTransport,
		store:      cfg.Store,
		refreshURL: base + "/users/refresh-token",
		log:        cfg.Logger,
	}

	menu := ttlcache.New(
		ttlcache.WithTTL[string, []domain.Pizza](cfg.MenuCacheTTL),
		ttlcache.WithDisableTouchOnHit[string, []domain.Pizza](),
	)
	go menu.Start()

	return &Client{
		baseURL:   base,
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.Timeout, Transport: transport},
		store:     cfg.Store,
		log:       cfg.Logger,
		menu:      menu,
	}, nil
}

// Close stops background cache maintenance.
func (c *Client) Close() {
	c.menu.Stop()
}

// do issues one request and decodes the JSON response into out (when out
// is non-nil). Errors come back already normalized.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		rdr = bytes.NewReader(raw)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// The transport's own auth failures pass through untouched so
		// errors.Is(err, ErrUnauthenticated) keeps working.
		var ae *serrors.AuthError
		if errors.As(err, &ae) {
			return ae
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return serrors.NewNetwork(method+" "+path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return errorFromResponse(resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return serrors.NewServer(resp.StatusCode, "malformed response from server")
	}
	return nil
}

// errorFromResponse maps an HTTP error response onto the taxonomy, keeping
// the server-provided message when one is present.
func errorFromResponse(resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body)
	msg := body.Error
	if msg == "" {
		msg = body.Message
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if msg == "" {
			msg = "authentication required"
		}
		return serrors.NewAuth(msg, nil)
	}
	return serrors.NewServer(resp.StatusCode, msg)
}
