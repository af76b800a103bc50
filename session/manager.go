package session

import (
	"slices"
	"sync"

	"github.com/pkg/errors"

	apperrors "github.com/postdrop/postdrop-go/internal/errors"
)

// Manager is the single writer of the login record. In-memory consumers
// subscribe to changes instead of keeping their own copy; every
// notification re-reads the record from storage so observers cannot
// drift from it.
type Manager struct {
	store Store

	mu   sync.Mutex
	subs []func(*Login)
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Current returns the persisted login record, or nil when it is absent
// or incomplete.
func (m *Manager) Current() *Login {
	login := GetJSON[Login](m.store, LoginKey)
	if !CheckLogin(login) {
		return nil
	}
	return login
}

// IsAuthenticated derives the authorization gate from the stored record.
func (m *Manager) IsAuthenticated() bool {
	return m.Current() != nil
}

// Set persists a complete login record, overwriting any prior one.
// Incomplete records are rejected, never persisted partially.
func (m *Manager) Set(login *Login) error {
	if !CheckLogin(login) {
		return errors.Wrap(apperrors.ErrInvalidLogin, "[Manager.Set] incomplete login record")
	}
	if err := SetJSON(m.store, LoginKey, login); err != nil {
		return errors.Wrap(err, "[Manager.Set] persist login record")
	}
	m.notify()
	return nil
}

// Clear removes the login record from storage.
func (m *Manager) Clear() {
	_ = m.store.Remove(LoginKey)
	m.notify()
}

// Subscribe registers fn to run after every login mutation. fn receives
// the record as re-read from storage, nil when it is gone.
func (m *Manager) Subscribe(fn func(*Login)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, fn)
}

func (m *Manager) notify() {
	current := m.Current()
	m.mu.Lock()
	subs := slices.Clone(m.subs)
	m.mu.Unlock()
	for _, fn := range subs {
		fn(current)
	}
}

// SetOAuthState stores the one-time state value bound to an outbound
// authorization request.
func (m *Manager) SetOAuthState(state string) error {
	if state == "" {
		return errors.New("[Manager.SetOAuthState] state cannot be empty")
	}
	return SetJSON(m.store, OAuthStateKey, state)
}

// OAuthState returns the pending state value, empty when none is stored.
func (m *Manager) OAuthState() string {
	return GetString(m.store, OAuthStateKey)
}

// ClearOAuthState destroys the pending state value. Safe to call twice.
func (m *Manager) ClearOAuthState() {
	_ = m.store.Remove(OAuthStateKey)
}
