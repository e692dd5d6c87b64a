// Package jwtx signs and verifies the HS256 session tokens handed to
// browsers after a successful login. The token is a claim of identity
// only; revocation lives in the sessions table, which the authn
// middleware checks on every request.
package jwtx

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Principal kinds carried in session tokens.
const (
	KindCoach   = "coach"
	KindAthlete = "athlete"
)

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrExpiredToken = errors.New("jwtx: token expired")
)

// SessionClaims are the claims embedded in a session token.
type SessionClaims struct {
	Kind      string `json:"knd"` // "coach" or "athlete"
	SessionID string `json:"sid"` // sessions table row, checked for revocation
	jwt.RegisteredClaims
}

// NewSessionClaims builds claims for a principal with the given lifetime.
func NewSessionClaims(subject, kind, sessionID, issuer string, ttl time.Duration) SessionClaims {
	now := time.Now()
	return SessionClaims{
		Kind:      kind,
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
