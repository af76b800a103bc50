package api

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	apperrors "github.com/postdrop/postdrop-go/internal/errors"
	"github.com/postdrop/postdrop-go/session"
)

type refreshResult struct {
	accessToken string
	err         error
}

// RefreshCoordinator serializes token refreshes: at most one refresh call
// is in flight system-wide, regardless of how many requests fail with 401
// concurrently. Callers arriving while one is running are queued and
// settled when it resolves, success and failure alike.
//
// The idle/refreshing flag plus queue is the mutual-exclusion mechanism;
// the coordinator is the only writer of the login record on this path.
type RefreshCoordinator struct {
	mu         sync.Mutex
	refreshing bool
	waiters    []chan refreshResult

	sessions  *session.Manager
	refresh   func(ctx context.Context, refreshToken string) (*session.Login, error)
	onExpired func()
	log       zerolog.Logger
}

// NewRefreshCoordinator wires the coordinator to its session manager, the
// refresh endpoint call, and the centralized redirect-to-login hook.
func NewRefreshCoordinator(
	sessions *session.Manager,
	refresh func(ctx context.Context, refreshToken string) (*session.Login, error),
	onExpired func(),
	log zerolog.Logger,
) *RefreshCoordinator {
	return &RefreshCoordinator{
		sessions:  sessions,
		refresh:   refresh,
		onExpired: onExpired,
		log:       log,
	}
}

// Refresh returns a fresh access token, either by issuing the single
// refresh call or by waiting on the one already in flight. On failure the
// session is destroyed and every queued caller receives the refresh
// error, not the original 401.
func (rc *RefreshCoordinator) Refresh(ctx context.Context, refreshToken string) (string, error) {
	rc.mu.Lock()
	if rc.refreshing {
		ch := make(chan refreshResult, 1)
		rc.waiters = append(rc.waiters, ch)
		rc.mu.Unlock()

		select {
		case res := <-ch:
			return res.accessToken, res.err
		case <-ctx.Done():
			return "", errors.Wrap(ctx.Err(), "[RefreshCoordinator.Refresh] canceled while queued")
		}
	}
	rc.refreshing = true
	rc.mu.Unlock()

	login, err := rc.refresh(ctx, refreshToken)
	if err == nil {
		err = rc.persist(login)
	}
	if err != nil {
		rc.log.Warn().Err(err).Msg("token refresh failed, destroying session")
		rc.settle(refreshResult{err: err})
		rc.expireSession()
		return "", err
	}

	rc.settle(refreshResult{accessToken: login.AccessToken})
	return login.AccessToken, nil
}

// persist validates and stores the refreshed record. A response missing
// either token is malformed and treated as a hard refresh failure.
func (rc *RefreshCoordinator) persist(login *session.Login) error {
	if login == nil || login.AccessToken == "" || login.RefreshToken == "" {
		return errors.Wrap(apperrors.ErrMalformedRefresh, "[RefreshCoordinator.persist] response missing a token")
	}
	// Deployments may omit the user from the refresh payload; carry the
	// one from the record being replaced so the record stays complete.
	if login.User == nil {
		if current := rc.sessions.Current(); current != nil {
			login.User = current.User
		}
	}
	if err := rc.sessions.Set(login); err != nil {
		return errors.Wrap(err, "[RefreshCoordinator.persist] store login record")
	}
	return nil
}

// settle transitions back to idle and releases every queued caller.
func (rc *RefreshCoordinator) settle(res refreshResult) {
	rc.mu.Lock()
	waiters := rc.waiters
	rc.waiters = nil
	rc.refreshing = false
	rc.mu.Unlock()

	for _, ch := range waiters {
		ch <- res
	}
}

// expireSession destroys the login record and invokes the centralized
// redirect-to-login hook; callers are not left to redirect individually.
func (rc *RefreshCoordinator) expireSession() {
	rc.sessions.Clear()
	if rc.onExpired != nil {
		rc.onExpired()
	}
}
