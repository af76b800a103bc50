package session

import (
	"encoding/json"

	"github.com/pkg/errors"

	"github.com/postdrop/postdrop-go/internal/utils"
)

// Storage keys. The login and callback code paths communicate only
// through these, so they must stay stable.
const (
	LoginKey      = "login"
	OAuthStateKey = "oauth_state"
)

// Store is a key/value accessor over durable client-side storage.
// Reads never fail: unavailable storage and malformed content both read
// as absent.
type Store interface {
	Get(key string) []byte
	Set(key string, value []byte) error
	Remove(key string) error
}

// GetJSON decodes the value stored under key into T. Absent or malformed
// values decode to nil, never an error.
func GetJSON[T any](s Store, key string) *T {
	data := s.Get(key)
	if len(data) == 0 {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	return &v
}

// SetJSON stores v under key as JSON.
func SetJSON[T any](s Store, key string, v T) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "[SetJSON] marshal value")
	}
	return s.Set(key, data)
}

// GetString reads a JSON-encoded string value, empty when absent.
func GetString(s Store, key string) string {
	return utils.Value(GetJSON[string](s, key))
}
