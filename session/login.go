// Package session owns the persisted login record: the access/refresh
// token pair plus the user it belongs to. Every other component reads and
// writes the record through this package, never through a private copy.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the account a login record belongs to.
type User struct {
	ID       *int64 `json:"id"`
	Username string `json:"username"`
}

// Login is the sole persisted entity: created on password login, OAuth
// handshake or token refresh, destroyed on logout or refresh failure.
type Login struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// CheckLogin reports whether a login record is complete. Partial records
// (missing either token, no user, null user id, empty username) must be
// treated as absent by every consumer.
func CheckLogin(l *Login) bool {
	return l != nil &&
		l.AccessToken != "" &&
		l.RefreshToken != "" &&
		l.User != nil &&
		l.User.ID != nil &&
		l.User.Username != ""
}

// TokenExpired inspects the exp claim of a JWT access token without
// verifying its signature. Tokens that cannot be parsed or carry no exp
// are reported expired, so callers fall back to a server round trip.
func TokenExpired(accessToken string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(accessToken, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return true
	}
	return !exp.After(now)
}
