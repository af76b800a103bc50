package authflow_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/postdrop/postdrop-go/api"
	"github.com/postdrop/postdrop-go/authflow"
	"github.com/postdrop/postdrop-go/internal/config"
	apperrors "github.com/postdrop/postdrop-go/internal/errors"
	"github.com/postdrop/postdrop-go/internal/utils"
	"github.com/postdrop/postdrop-go/session"
)

type testConfig struct {
	config.API
	baseURL string
}

func (c testConfig) GetAppName() string      { return "PostDrop" }
func (c testConfig) GetBaseURL() string      { return c.baseURL }
func (c testConfig) GetLanguage() string     { return "en" }
func (c testConfig) GetDataFolder() string   { return "" }
func (c testConfig) GetCallbackAddr() string { return "127.0.0.1:0" }
func (c testConfig) GetEnv() string          { return "TEST" }

// GetClosePollInterval keeps the close poll tight so tests settle fast.
func (c testConfig) GetClosePollInterval() time.Duration { return 2 * time.Millisecond }
func (c testConfig) GetNavigateDelay() time.Duration     { return 0 }

type fakeWindow struct {
	mu     sync.Mutex
	closed bool
}

func (w *fakeWindow) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

func (w *fakeWindow) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

type fakeBrowser struct {
	win    *fakeWindow
	err    error
	opened atomic.Value // last URL opened
}

func (b *fakeBrowser) Open(url string) (authflow.Window, error) {
	b.opened.Store(url)
	if b.err != nil {
		return nil, b.err
	}
	return b.win, nil
}

type flowFixture struct {
	sessions  *session.Manager
	flow      *authflow.Flow
	browser   *fakeBrowser
	succeeded atomic.Int32
}

// newFlowFixture backs the flow with a one-route server handing out an
// authorization URL carrying the given state parameter.
func newFlowFixture(t *testing.T, authURL string) *flowFixture {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, api.RouteOAuthURL, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"url":"` + authURL + `"}`))
	}))
	t.Cleanup(srv.Close)

	f := &flowFixture{
		sessions: session.NewManager(session.NewInMemoryStore()),
		browser:  &fakeBrowser{win: &fakeWindow{}},
	}
	cfg := testConfig{baseURL: srv.URL}
	client := api.New(cfg, f.sessions)
	f.flow = authflow.New(cfg, client, f.sessions,
		authflow.WithBrowser(f.browser),
		authflow.WithOnSuccess(func() { f.succeeded.Add(1) }),
	)
	return f
}

func storedLogin() *session.Login {
	return &session.Login{
		AccessToken:  "t1",
		RefreshToken: "r1",
		User:         &session.User{ID: utils.Ptr(int64(42)), Username: "john"},
	}
}

type runResult struct {
	state authflow.State
	err   error
}

func startRun(f *flowFixture) chan runResult {
	done := make(chan runResult, 1)
	go func() {
		state, err := f.flow.Run(context.Background())
		done <- runResult{state: state, err: err}
	}()
	return done
}

func waitForState(t *testing.T, flow *authflow.Flow, want authflow.State) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for flow.State() != want {
		require.True(t, time.Now().Before(deadline), "flow never reached state %s", want)
		time.Sleep(time.Millisecond)
	}
}

func waitForResult(t *testing.T, done chan runResult) runResult {
	t.Helper()
	select {
	case res := <-done:
		return res
	case <-time.After(2 * time.Second):
		t.Fatal("flow did not settle")
		return runResult{}
	}
}

func TestRunPersistsStateAndOpensWindow(t *testing.T) {
	f := newFlowFixture(t, "https://idp.example.com/authorize?state=abc123")
	done := startRun(f)
	waitForState(t, f.flow, authflow.StateWindowOpen)

	require.Equal(t, "abc123", f.sessions.OAuthState())
	require.Equal(t, "https://idp.example.com/authorize?state=abc123", f.browser.opened.Load())

	// Finish via silent close so the goroutine does not leak.
	require.NoError(t, f.browser.win.Close())
	waitForResult(t, done)
}

func TestRunSilentCloseCancels(t *testing.T) {
	f := newFlowFixture(t, "https://idp.example.com/authorize?state=abc123")
	done := startRun(f)
	waitForState(t, f.flow, authflow.StateWindowOpen)

	require.NoError(t, f.browser.win.Close())
	res := waitForResult(t, done)

	// Closing the window without finishing is a cancellation, not an error.
	require.NoError(t, res.err)
	require.Equal(t, authflow.StateIdle, res.state)
	require.Empty(t, f.sessions.OAuthState())
	require.Equal(t, int32(0), f.succeeded.Load())
}

func TestRunSuccessMessage(t *testing.T) {
	f := newFlowFixture(t, "https://idp.example.com/authorize?state=abc123")
	done := startRun(f)
	waitForState(t, f.flow, authflow.StateWindowOpen)

	// The callback side persists the record before posting its message.
	require.NoError(t, f.sessions.Set(storedLogin()))
	f.flow.Deliver(authflow.Result{Type: authflow.ResultType})

	res := waitForResult(t, done)
	require.NoError(t, res.err)
	require.Equal(t, authflow.StateCompleted, res.state)
	require.Equal(t, int32(1), f.succeeded.Load())
	require.Empty(t, f.sessions.OAuthState())
	require.True(t, f.browser.win.Closed())
}

func TestRunFailureMessage(t *testing.T) {
	f := newFlowFixture(t, "https://idp.example.com/authorize?state=abc123")
	done := startRun(f)
	waitForState(t, f.flow, authflow.StateWindowOpen)

	f.flow.Deliver(authflow.Result{Type: authflow.ResultType, Message: "access denied"})

	res := waitForResult(t, done)
	require.ErrorIs(t, res.err, apperrors.ErrAuthFailed)
	require.Contains(t, res.err.Error(), "access denied")
	require.Equal(t, authflow.StateFailed, res.state)
	require.Empty(t, f.sessions.OAuthState())
	require.Equal(t, int32(0), f.succeeded.Load())
}

func TestRunSuccessMessageWithoutStoredLogin(t *testing.T) {
	f := newFlowFixture(t, "https://idp.example.com/authorize?state=abc123")
	done := startRun(f)
	waitForState(t, f.flow, authflow.StateWindowOpen)

	f.flow.Deliver(authflow.Result{Type: authflow.ResultType})

	res := waitForResult(t, done)
	require.ErrorIs(t, res.err, apperrors.ErrInvalidLogin)
	require.Equal(t, authflow.StateFailed, res.state)
}

func TestRunIgnoresForeignMessageTypes(t *testing.T) {
	f := newFlowFixture(t, "https://idp.example.com/authorize?state=abc123")
	done := startRun(f)
	waitForState(t, f.flow, authflow.StateWindowOpen)

	f.flow.Deliver(authflow.Result{Type: "unrelated", Message: "noise"})
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, authflow.StateWindowOpen, f.flow.State())

	require.NoError(t, f.browser.win.Close())
	res := waitForResult(t, done)
	require.NoError(t, res.err)
	require.Equal(t, authflow.StateIdle, res.state)
}

func TestRunBlockedWindow(t *testing.T) {
	f := newFlowFixture(t, "https://idp.example.com/authorize?state=abc123")
	f.browser.err = apperrors.ErrWindowBlocked

	state, err := f.flow.Run(context.Background())
	require.ErrorIs(t, err, apperrors.ErrWindowBlocked)
	require.Equal(t, authflow.StateIdle, state)
	require.Equal(t, int32(0), f.succeeded.Load())
}

func TestRunMissingStateParameter(t *testing.T) {
	f := newFlowFixture(t, "https://idp.example.com/authorize")

	state, err := f.flow.Run(context.Background())
	require.ErrorIs(t, err, apperrors.ErrStateMissing)
	require.Equal(t, authflow.StateIdle, state)
	require.Empty(t, f.sessions.OAuthState())
}

func TestRunContextCancellation(t *testing.T) {
	f := newFlowFixture(t, "https://idp.example.com/authorize?state=abc123")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan runResult, 1)
	go func() {
		state, err := f.flow.Run(ctx)
		done <- runResult{state: state, err: err}
	}()
	waitForState(t, f.flow, authflow.StateWindowOpen)

	cancel()
	res := waitForResult(t, done)
	require.ErrorIs(t, res.err, context.Canceled)
	require.Equal(t, authflow.StateIdle, res.state)
	require.True(t, f.browser.win.Closed())
	require.Empty(t, f.sessions.OAuthState())
}

func TestDeliverNeverBlocks(t *testing.T) {
	f := newFlowFixture(t, "https://idp.example.com/authorize?state=abc123")

	// No Run consuming the channel; repeated delivery must still return.
	for i := 0; i < 5; i++ {
		f.flow.Deliver(authflow.Result{Type: authflow.ResultType, Message: "late"})
	}
}

func TestRunDrainsStaleMessages(t *testing.T) {
	f := newFlowFixture(t, "https://idp.example.com/authorize?state=abc123")

	// A message left over from an earlier attempt must not settle the
	// next one.
	f.flow.Deliver(authflow.Result{Type: authflow.ResultType, Message: "stale failure"})
	require.NoError(t, f.browser.win.Close())

	state, err := f.flow.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, authflow.StateIdle, state)
}
