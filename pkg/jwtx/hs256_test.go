package jwtx_test

import (
	"testing"
	"time"

	"github.com/coachforge/coachforge/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func testKey() []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	return key
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	signer, err := jwtx.NewSigner(testKey(), "coachforge")
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("coach-123", jwtx.KindCoach, "sess-456", "coachforge", time.Hour)
	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	got, err := signer.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "coach-123", got.Subject)
	require.Equal(t, jwtx.KindCoach, got.Kind)
	require.Equal(t, "sess-456", got.SessionID)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	signer, err := jwtx.NewSigner(testKey(), "coachforge")
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("athlete-1", jwtx.KindAthlete, "sess-1", "coachforge", -time.Minute)
	raw, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = signer.Verify(raw)
	require.ErrorIs(t, err, jwtx.ErrExpiredToken)
}

func TestVerifyRejectsForeignKeyAndIssuer(t *testing.T) {
	signer, err := jwtx.NewSigner(testKey(), "coachforge")
	require.NoError(t, err)

	otherKey := testKey()
	otherKey[0] ^= 0xff
	other, err := jwtx.NewSigner(otherKey, "coachforge")
	require.NoError(t, err)

	claims := jwtx.NewSessionClaims("coach-1", jwtx.KindCoach, "sess-1", "coachforge", time.Hour)
	raw, err := other.Sign(claims)
	require.NoError(t, err)

	_, err = signer.Verify(raw)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)

	wrongIssuer, err := jwtx.NewSigner(testKey(), "someone-else")
	require.NoError(t, err)
	raw, err = wrongIssuer.Sign(jwtx.NewSessionClaims("coach-1", jwtx.KindCoach, "sess-1", "someone-else", time.Hour))
	require.NoError(t, err)

	_, err = signer.Verify(raw)
	require.ErrorIs(t, err, jwtx.ErrInvalidToken)
}

func TestNewSignerRejectsShortKeys(t *testing.T) {
	_, err := jwtx.NewSigner([]byte("too-short"), "coachforge")
	require.Error(t, err)
}
