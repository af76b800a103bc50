package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pkg/errors"
)

// PostKey fetches the account's API key for the dashboard view.
func (c *Client) PostKey(ctx context.Context) (*PostKeyResponse, error) {
	var out PostKeyResponse
	if err := c.doAuth(ctx, http.MethodGet, RoutePostKey, nil, nil, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.PostKey]")
	}
	return &out, nil
}

// ListPosts returns one page of the account's posts.
func (c *Client) ListPosts(ctx context.Context, page, limit int) (*PostsPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	var out PostsPage
	if err := c.doAuth(ctx, http.MethodGet, RoutePosts, query, nil, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.ListPosts]")
	}
	return &out, nil
}

// CreateTestPost publishes a post through the capability URL keyed by the
// account's post key. No bearer credential is involved; the key itself is
// the authorization.
func (c *Client) CreateTestPost(ctx context.Context, postKey, title, body string) (*CreateTestPostResponse, error) {
	if postKey == "" {
		return nil, errors.New("[Client.CreateTestPost] post key is required")
	}
	var out CreateTestPostResponse
	req := CreateTestPostRequest{Title: title, Body: body}
	if err := c.doAnno(ctx, http.MethodPost, "/"+url.PathEscape(postKey), nil, nil, req, &out); err != nil {
		return nil, errors.Wrap(err, "[Client.CreateTestPost]")
	}
	return &out, nil
}
