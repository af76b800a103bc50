package authflow

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/postdrop/postdrop-go/api"
	apperrors "github.com/postdrop/postdrop-go/internal/errors"
	"github.com/postdrop/postdrop-go/session"
)

// Callback is the window-side half of the handshake. It exchanges the
// authorization code for tokens, persists the login record itself, and
// posts exactly one completion message back to the opener. The exchange
// is guarded so a re-invocation cannot fire it twice.
type Callback struct {
	api      *api.Client
	sessions *session.Manager
	post     func(Result)
	once     sync.Once
	log      zerolog.Logger
}

func NewCallback(apiClient *api.Client, sessions *session.Manager, post func(Result), log zerolog.Logger) *Callback {
	return &Callback{
		api:      apiClient,
		sessions: sessions,
		post:     post,
		log:      log,
	}
}

// Handle processes the provider redirect once; later invocations no-op.
func (c *Callback) Handle(ctx context.Context, code, echoedState string) {
	c.once.Do(func() {
		c.handle(ctx, code, echoedState)
	})
}

func (c *Callback) handle(ctx context.Context, code, echoedState string) {
	storedState := c.sessions.OAuthState()

	login, err := c.api.ExchangeOAuthCode(ctx, code, echoedState, storedState)
	if err != nil {
		c.log.Error().Err(err).Msg("oauth code exchange failed")
		c.post(Result{Type: ResultType, Message: failureMessage(err)})
		return
	}
	if !session.CheckLogin(login) {
		c.log.Error().Msg("oauth exchange returned an incomplete login record")
		c.post(Result{Type: ResultType, Message: apperrors.ErrInvalidLogin.Error()})
		return
	}
	if err := c.sessions.Set(login); err != nil {
		c.log.Error().Err(err).Msg("failed to persist login record")
		c.post(Result{Type: ResultType, Message: failureMessage(err)})
		return
	}

	// Empty message signals success.
	c.post(Result{Type: ResultType})
}

// failureMessage prefers the server's own message when one was returned.
func failureMessage(err error) string {
	var apiErr *api.APIError
	if apperrors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
