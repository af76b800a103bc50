package api

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/postdrop/postdrop-go/locale"
	"github.com/postdrop/postdrop-go/session"
)

// localeTransport tags every outgoing request, on both pipelines, with
// the Accept-Language mapping for the active UI language and a request id.
type localeTransport struct {
	next     http.RoundTripper
	language func() string
}

func (t *localeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Accept-Language", locale.AcceptLanguage(t.language()))
	req.Header.Set("X-Request-Id", uuid.NewString())
	return t.next.RoundTrip(req)
}

// bearerTransport reads the current login record before each request and
// attaches the access token when one is present. A missing token is not
// an error here; the server is expected to reject the call.
type bearerTransport struct {
	next     http.RoundTripper
	sessions *session.Manager
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if login := t.sessions.Current(); login != nil && login.AccessToken != "" {
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	}
	return t.next.RoundTrip(req)
}
