package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer mints and verifies HS256 session tokens with a single
// process-wide key. The key is read-only after startup and safe for
// concurrent use.
type Signer struct {
	key    []byte
	issuer string
}

// NewSigner returns a Signer for the given key material.
func NewSigner(key []byte, issuer string) (*Signer, error) {
	if len(key) < 32 {
		return nil, fmt.Errorf("jwtx: signing key must be at least 32 bytes, got %d", len(key))
	}
	return &Signer{key: key, issuer: issuer}, nil
}

// Issuer returns the issuer claim stamped on minted tokens.
func (s *Signer) Issuer() string { return s.issuer }

// Sign serialises the claims into a compact HS256 JWT.
func (s *Signer) Sign(claims SessionClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwtx: failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a compact token, returning its claims.
// Expiry and issuer are enforced here; session revocation is not.
func (s *Signer) Verify(raw string) (SessionClaims, error) {
	var claims SessionClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.key, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return SessionClaims{}, ErrExpiredToken
		}
		return SessionClaims{}, ErrInvalidToken
	}
	return claims, nil
}
