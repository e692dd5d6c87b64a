package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
	"github.com/coachforge/coachforge/internal/coachforge/store"
	"github.com/coachforge/coachforge/pkg/cryptox"
)

func seedCredential(t *testing.T, s store.Store, athleteID, email, password string, activated bool) {
	t.Helper()

	hash, err := cryptox.HashPassword(password)
	require.NoError(t, err)

	cred := domain.AthleteCredential{
		AthleteID:    athleteID,
		Email:        email,
		PasswordHash: hash,
	}
	if activated {
		now := time.Now()
		cred.ActivatedAt = &now
	}
	require.NoError(t, s.Credentials().UpsertCredential(context.Background(), cred))
}

func TestCredentialVerify(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	coach := seedCoach(t, s, "coach@example.com")
	active := seedAthlete(t, s, coach.ID)
	pending := seedAthlete(t, s, coach.ID)
	seedCredential(t, s, active.ID, "active@example.com", "correct horse", true)
	seedCredential(t, s, pending.ID, "pending@example.com", "correct horse", false)

	svc := &CredentialService{Store: s}

	t.Run("accepts valid activated credential", func(t *testing.T) {
		assert.True(t, svc.Verify(ctx, "active@example.com", "correct horse"))
	})

	t.Run("normalizes the email", func(t *testing.T) {
		assert.True(t, svc.Verify(ctx, "  Active@Example.COM ", "correct horse"))
	})

	t.Run("rejects wrong password", func(t *testing.T) {
		assert.False(t, svc.Verify(ctx, "active@example.com", "battery staple"))
	})

	t.Run("rejects unknown email", func(t *testing.T) {
		assert.False(t, svc.Verify(ctx, "nobody@example.com", "correct horse"))
	})

	t.Run("rejects unactivated credential even with right password", func(t *testing.T) {
		assert.False(t, svc.Verify(ctx, "pending@example.com", "correct horse"))
	})
}

func TestIsActivated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	coach := seedCoach(t, s, "coach@example.com")
	active := seedAthlete(t, s, coach.ID)
	pending := seedAthlete(t, s, coach.ID)
	seedCredential(t, s, active.ID, "active@example.com", "pw-active-1", true)
	seedCredential(t, s, pending.ID, "pending@example.com", "pw-pending-1", false)

	svc := &CredentialService{Store: s}

	got, err := svc.IsActivated(ctx, "active@example.com")
	require.NoError(t, err)
	assert.True(t, got)

	got, err = svc.IsActivated(ctx, "pending@example.com")
	require.NoError(t, err)
	assert.False(t, got)

	got, err = svc.IsActivated(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, got)
}
