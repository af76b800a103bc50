package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/pkg/errors"

	"github.com/postdrop/postdrop-go/session"
)

// AuthURL asks the backend for a provider authorization URL.
func (c *Client) AuthURL(ctx context.Context) (*AuthURLResponse, error) {
	var out AuthURLResponse
	if err := c.doAnno(ctx, http.MethodGet, RouteOAuthURL, nil, nil, nil, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.AuthURL]")
	}
	return &out, nil
}

// PasswordLogin exchanges credentials for a login record. The caller
// validates and persists it.
func (c *Client) PasswordLogin(ctx context.Context, username, password string) (*session.Login, error) {
	var out session.Login
	body := LoginRequest{Username: username, Password: password}
	if err := c.doAnno(ctx, http.MethodPost, RouteAuthLogin, nil, nil, body, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.PasswordLogin]")
	}
	return &out, nil
}

// ExchangeOAuthCode trades the provider code for a login record. The
// locally stored state travels in the X-Oauth-State header and the state
// echoed by the provider as a query parameter, so the backend can match
// the two halves of the handshake.
func (c *Client) ExchangeOAuthCode(ctx context.Context, code, echoedState, storedState string) (*session.Login, error) {
	header := http.Header{}
	header.Set("X-Oauth-State", storedState)
	query := url.Values{}
	query.Set("state", echoedState)

	var out session.Login
	if err := c.doAnno(ctx, http.MethodPost, RouteOAuthLogin, query, header, ExchangeRequest{Code: code}, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.ExchangeOAuthCode]")
	}
	return &out, nil
}

// refreshCall is the coordinator's single refresh request. It runs on the
// unauthenticated pipeline: a 401 on the refresh endpoint itself must not
// recurse into the coordinator.
func (c *Client) refreshCall(ctx context.Context, refreshToken string) (*session.Login, error) {
	var out session.Login
	if err := c.doAnno(ctx, http.MethodPost, RouteAuthRefresh, nil, nil, RefreshRequest{RefreshToken: refreshToken}, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.refreshCall]")
	}
	return &out, nil
}

// ChangePassword updates the account password; the server acknowledges
// with a 2xx and an empty or ack body.
func (c *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	body := ChangePasswordRequest{CurrentPassword: currentPassword, NewPassword: newPassword}
	if err := c.doAuth(ctx, http.MethodPost, RouteChangePassword, nil, body, nil); err != nil {
		return errors.Wrap(err, "[Client.ChangePassword]")
	}
	return nil
}
