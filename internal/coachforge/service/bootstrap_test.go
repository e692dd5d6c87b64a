package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	data := domain.BootstrapData{
		CoachEmail:    "Coach@Example.com",
		CoachName:     "Coach",
		CoachPassword: "coach-password",
	}

	t.Run("creates the first coach", func(t *testing.T) {
		s := newTestStore(t)
		svc := &BootstrapService{Store: s, Token: "secret"}

		result, err := svc.Bootstrap(ctx, "secret", data)
		require.NoError(t, err)

		coach, err := s.Coaches().GetCoachByEmail(ctx, "coach@example.com")
		require.NoError(t, err)
		assert.Equal(t, result.CoachID, coach.ID)
		assert.Empty(t, result.AthleteIDs)
	})

	t.Run("seeds the athlete roster", func(t *testing.T) {
		s := newTestStore(t)
		svc := &BootstrapService{Store: s, Token: "secret"}

		seeded := data
		seeded.AthleteNames = []string{"Alex", "Sam"}
		result, err := svc.Bootstrap(ctx, "secret", seeded)
		require.NoError(t, err)
		require.Len(t, result.AthleteIDs, 2)

		athlete, err := s.Athletes().GetAthleteByID(ctx, result.AthleteIDs[0])
		require.NoError(t, err)
		assert.Equal(t, result.CoachID, athlete.CoachID)
		assert.Equal(t, "Alex", athlete.Name)
	})

	t.Run("wrong token", func(t *testing.T) {
		s := newTestStore(t)
		svc := &BootstrapService{Store: s, Token: "secret"}

		_, err := svc.Bootstrap(ctx, "guess", data)
		assert.ErrorIs(t, err, ErrInvalidBootstrapToken)
	})

	t.Run("disabled without a configured token", func(t *testing.T) {
		s := newTestStore(t)
		svc := &BootstrapService{Store: s}

		_, err := svc.Bootstrap(ctx, "", data)
		assert.ErrorIs(t, err, ErrBootstrapDisabled)
	})

	t.Run("refuses once a coach exists", func(t *testing.T) {
		s := newTestStore(t)
		seedCoach(t, s, "existing@example.com")
		svc := &BootstrapService{Store: s, Token: "secret"}

		_, err := svc.Bootstrap(ctx, "secret", data)
		assert.ErrorIs(t, err, ErrAlreadyBootstrapped)
	})

	t.Run("rejects incomplete data", func(t *testing.T) {
		s := newTestStore(t)
		svc := &BootstrapService{Store: s, Token: "secret"}

		_, err := svc.Bootstrap(ctx, "secret", domain.BootstrapData{CoachEmail: "x@example.com"})
		assert.ErrorIs(t, err, ErrInvalidBootstrapRequest)
	})
}
