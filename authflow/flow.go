package authflow

import (
	"context"
	"net/url"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/postdrop/postdrop-go/api"
	"github.com/postdrop/postdrop-go/internal/config"
	apperrors "github.com/postdrop/postdrop-go/internal/errors"
	"github.com/postdrop/postdrop-go/session"
)

// State is where a login attempt currently stands. Completed and Failed
// are terminal; a new attempt starts a fresh cycle from Idle.
type State int

const (
	StateIdle State = iota
	StateAwaitingURL
	StateWindowOpen
	StateCompleted
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingURL:
		return "awaiting_url"
	case StateWindowOpen:
		return "window_open"
	case StateCompleted:
		return "completed"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Flow drives one OAuth login attempt. While the window is open it
// concurrently polls for the window closing and listens for the
// completion message; whichever happens first settles the attempt.
type Flow struct {
	api      *api.Client
	sessions *session.Manager
	browser  Browser

	pollInterval  time.Duration
	navigateDelay time.Duration
	onSuccess     func()
	log           zerolog.Logger

	messages chan Result

	mu    sync.Mutex
	state State
}

// FlowOption modifies the Flow instance.
type FlowOption func(*Flow)

// WithBrowser replaces the system browser (primarily for testing).
func WithBrowser(b Browser) FlowOption {
	return func(f *Flow) {
		f.browser = b
	}
}

// WithOnSuccess runs after a successful handshake, once the short
// confirmation delay has passed; the dashboard navigation hook.
func WithOnSuccess(fn func()) FlowOption {
	return func(f *Flow) {
		f.onSuccess = fn
	}
}

// WithNavigateDelay overrides the confirmation delay (zero in tests).
func WithNavigateDelay(d time.Duration) FlowOption {
	return func(f *Flow) {
		f.navigateDelay = d
	}
}

// WithFlowLogger sets the flow logger.
func WithFlowLogger(log zerolog.Logger) FlowOption {
	return func(f *Flow) {
		f.log = log
	}
}

func New(cfg config.FlowConfig, apiClient *api.Client, sessions *session.Manager, options ...FlowOption) *Flow {
	f := &Flow{
		api:           apiClient,
		sessions:      sessions,
		browser:       SystemBrowser{},
		pollInterval:  cfg.GetClosePollInterval(),
		navigateDelay: cfg.GetNavigateDelay(),
		log:           zerolog.Nop(),
		messages:      make(chan Result, 1),
	}
	for _, opt := range options {
		opt(f)
	}
	return f
}

// State returns where the current (or last) attempt stands.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Flow) setState(s State) {
	f.mu.Lock()
	f.state = s
	f.mu.Unlock()
}

// Deliver hands a completion message to the flow. Delivery never blocks;
// duplicate or late messages are dropped, so the listener cannot
// double-fire navigation or teardown.
func (f *Flow) Deliver(res Result) {
	select {
	case f.messages <- res:
	default:
	}
}

// Run executes one login attempt: fetch the authorization URL, persist
// its state value, open the window, then wait for closure or completion.
// The wait itself is unbounded; callers bound it through ctx.
func (f *Flow) Run(ctx context.Context) (State, error) {
	// Drop any message left over from a previous attempt.
	select {
	case <-f.messages:
	default:
	}

	f.setState(StateAwaitingURL)
	authURL, err := f.api.AuthURL(ctx)
	if err != nil {
		f.setState(StateIdle)
		return StateIdle, errors.Wrap(err, "[Flow.Run] request authorization URL")
	}

	state, err := stateParam(authURL.URL)
	if err != nil {
		f.setState(StateIdle)
		return StateIdle, err
	}
	if err := f.sessions.SetOAuthState(state); err != nil {
		f.setState(StateIdle)
		return StateIdle, errors.Wrap(err, "[Flow.Run] persist state value")
	}

	win, err := f.browser.Open(authURL.URL)
	if err != nil {
		// Blocked window: surface the error, no polling begins.
		f.setState(StateIdle)
		return StateIdle, err
	}
	f.setState(StateWindowOpen)
	f.log.Debug().Msg("authorization window open")

	ticker := time.NewTicker(f.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			_ = win.Close()
			f.sessions.ClearOAuthState()
			f.setState(StateIdle)
			return StateIdle, errors.Wrap(ctx.Err(), "[Flow.Run] handshake canceled")

		case <-ticker.C:
			if !win.Closed() {
				continue
			}
			// The callback may have landed the tokens just before the
			// user closed the window.
			if f.sessions.Current() != nil {
				f.sessions.ClearOAuthState()
				return f.complete()
			}
			// Closed without completing: silent cancellation.
			f.sessions.ClearOAuthState()
			f.setState(StateIdle)
			return StateIdle, nil

		case msg := <-f.messages:
			if msg.Type != ResultType {
				continue
			}
			if !win.Closed() {
				_ = win.Close()
			}
			f.sessions.ClearOAuthState()

			if msg.Message != "" {
				f.setState(StateFailed)
				return StateFailed, errors.Wrap(apperrors.ErrAuthFailed, msg.Message)
			}
			if f.sessions.Current() == nil {
				f.setState(StateFailed)
				return StateFailed, errors.Wrap(apperrors.ErrInvalidLogin, "[Flow.Run] completion message without a stored login")
			}
			return f.complete()
		}
	}
}

func (f *Flow) complete() (State, error) {
	// Short fixed delay so a confirmation message can render before the
	// navigation hook fires.
	if f.navigateDelay > 0 {
		time.Sleep(f.navigateDelay)
	}
	f.setState(StateCompleted)
	if f.onSuccess != nil {
		f.onSuccess()
	}
	return StateCompleted, nil
}

// stateParam extracts the one-time state value from the authorization URL.
func stateParam(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", errors.Wrap(err, "[stateParam] parse authorization URL")
	}
	state := u.Query().Get("state")
	if state == "" {
		return "", errors.Wrap(apperrors.ErrStateMissing, rawURL)
	}
	return state, nil
}
