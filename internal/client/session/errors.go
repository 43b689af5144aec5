package session

import "errors"

const (
	SessionExpiredTitle   = "Session Expired"
	SessionExpiredMessage = "Your session has expired. Please log in again."
)

var (
	// ErrSessionExpired is returned by Restore when the account API rejects
	// the persisted token.
	ErrSessionExpired = errors.New("session expired")

	// ErrInvalidSession is returned by SignIn for a session without a token.
	ErrInvalidSession = errors.New("session has no access token")
)
