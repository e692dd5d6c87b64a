package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
	"github.com/coachforge/coachforge/internal/coachforge/store"
	"github.com/coachforge/coachforge/internal/coachforge/store/drivers/sqlite"
	"github.com/coachforge/coachforge/pkg/cryptox"
	"github.com/coachforge/coachforge/pkg/idx"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "service-test-")
	if err != nil {
		panic(err)
	}
	cryptox.SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, s.ApplyMigrations())

	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seedCoach(t *testing.T, s store.Store, email string) domain.Coach {
	t.Helper()

	hash, err := cryptox.HashPassword("coach-password")
	require.NoError(t, err)

	coach := domain.Coach{
		ID:           idx.New().String(),
		Email:        email,
		Name:         "Coach",
		PasswordHash: hash,
	}
	require.NoError(t, s.Coaches().CreateCoach(context.Background(), coach))
	return coach
}

func seedAthlete(t *testing.T, s store.Store, coachID string) domain.Athlete {
	t.Helper()

	athlete := domain.Athlete{
		ID:      idx.New().String(),
		CoachID: coachID,
		Name:    "Athlete",
	}
	require.NoError(t, s.Athletes().CreateAthlete(context.Background(), athlete))
	return athlete
}
