package domain

import "time"

// IssuedSession is returned from a successful login: the signed token
// the client presents on subsequent requests, and when it lapses.
type IssuedSession struct {
	Token     string
	ExpiresAt time.Time
}

// Session is a revocable login session for a coach or athlete. The
// client holds an HS256 token referencing this row; revoking the row
// invalidates the token before its expiry.
type Session struct {
	ID          string
	PrincipalID string
	Kind        string // "coach" or "athlete"
	ExpiresAt   time.Time
	RevokedAt   *time.Time
	CreatedAt   time.Time
}
