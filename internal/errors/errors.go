package errors

import (
	"errors"
	"fmt"
)

// Common error types for the PostDrop client
var (
	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrSessionExpired   = errors.New("session expired")
	ErrInvalidLogin     = errors.New("invalid login data")

	// Refresh errors
	ErrRefreshFailed    = errors.New("token refresh failed")
	ErrMalformedRefresh = errors.New("malformed refresh response")

	// OAuth handshake errors
	ErrWindowBlocked = errors.New("authorization window could not be opened")
	ErrStateMissing  = errors.New("authorization URL carries no state parameter")
	ErrAuthFailed    = errors.New("authorization failed")

	// Transport errors
	ErrRequestFailed = errors.New("request failed")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
