// Package api is the HTTP client layer for the PostDrop backend. It
// exposes two request pipelines sharing one base address and timeout: an
// unauthenticated one and an authenticated one that attaches the bearer
// token and runs the refresh protocol on 401 responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/postdrop/postdrop-go/internal/config"
	apperrors "github.com/postdrop/postdrop-go/internal/errors"
	"github.com/postdrop/postdrop-go/session"
)

type Client struct {
	baseURL  string
	maxBody  int64
	language func() string

	sessions  *session.Manager
	refresher *RefreshCoordinator
	onExpired func()
	transport http.RoundTripper

	anno *http.Client
	auth *http.Client
	log  zerolog.Logger
}

// Option modifies the Client during construction.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithOnSessionExpired registers the centralized redirect-to-login hook,
// invoked whenever the refresh protocol tears the session down.
func WithOnSessionExpired(fn func()) Option {
	return func(c *Client) {
		c.onExpired = fn
	}
}

// WithLanguage overrides where the active UI language is read from.
func WithLanguage(fn func() string) Option {
	return func(c *Client) {
		c.language = fn
	}
}

// WithTransport replaces the base transport on both pipelines.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// New builds the two request pipelines. The refresh coordinator is owned
// by this construction, not module-global, so independent clients never
// share refresh state.
func New(cfg config.Config, sessions *session.Manager, opts ...Option) *Client {
	c := &Client{
		baseURL:   cfg.GetBaseURL(),
		maxBody:   cfg.GetMaxResponseBytes(),
		language:  cfg.GetLanguage,
		sessions:  sessions,
		transport: http.DefaultTransport,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	localeRT := &localeTransport{next: c.transport, language: c.language}
	c.anno = &http.Client{Timeout: cfg.GetRequestTimeout(), Transport: localeRT}
	c.auth = &http.Client{Timeout: cfg.GetRequestTimeout(), Transport: &bearerTransport{next: localeRT, sessions: sessions}}
	c.refresher = NewRefreshCoordinator(sessions, c.refreshCall, c.expireHook, c.log)
	return c
}

func (c *Client) expireHook() {
	if c.onExpired != nil {
		c.onExpired()
	}
}

// doAnno issues a request on the unauthenticated pipeline.
func (c *Client) doAnno(ctx context.Context, method, path string, query url.Values, header http.Header, body, out any) error {
	return c.send(ctx, c.anno, method, path, query, header, body, out)
}

// doAuth issues a request on the authenticated pipeline, running the
// refresh protocol on 401. Each request is retried at most once.
func (c *Client) doAuth(ctx context.Context, method, path string, query url.Values, body, out any) error {
	retried := false
	for {
		err := c.send(ctx, c.auth, method, path, query, nil, body, out)
		if err == nil {
			return nil
		}
		var apiErr *APIError
		if !apperrors.As(err, &apiErr) {
			// No response at all: a pure transport failure never
			// triggers the refresh protocol.
			return err
		}
		if apiErr.StatusCode != http.StatusUnauthorized {
			return err
		}
		login := c.sessions.Current()
		if login == nil || login.RefreshToken == "" {
			c.refresher.expireSession()
			return err
		}
		if retried {
			// A second 401 for the same request is unrecoverable.
			c.refresher.expireSession()
			return err
		}
		retried = true
		if _, rerr := c.refresher.Refresh(ctx, login.RefreshToken); rerr != nil {
			return rerr
		}
		c.log.Debug().Str("method", method).Str("path", path).Msg("retrying request with refreshed token")
	}
}

func (c *Client) send(ctx context.Context, hc *http.Client, method, path string, query url.Values, header http.Header, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.send] encode request body")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return errors.Wrap(err, "[Client.send] build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := hc.Do(req)
	if err != nil {
		return errors.Wrapf(err, "[Client.send] %s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return errors.Wrap(err, "[Client.send] read response body")
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return decodeAPIError(resp.StatusCode, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrap(err, "[Client.send] decode response body")
		}
	}
	return nil
}
