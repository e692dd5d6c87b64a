package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
	"github.com/coachforge/coachforge/internal/coachforge/store"
	"github.com/coachforge/coachforge/pkg/cryptox"
	"github.com/coachforge/coachforge/pkg/idx"
	"github.com/coachforge/coachforge/pkg/slogx"
)

var (
	ErrBootstrapDisabled       = errors.New("bootstrap is not configured")
	ErrInvalidBootstrapToken   = errors.New("invalid bootstrap token")
	ErrAlreadyBootstrapped     = errors.New("a coach account already exists")
	ErrInvalidBootstrapRequest = errors.New("invalid bootstrap request")
)

// BootstrapService creates the very first coach account. It is gated by
// a pre-shared token and refuses to run once any coach exists.
type BootstrapService struct {
	Store store.Store
	Token string // pre-shared operator token; empty disables bootstrap
}

func (s *BootstrapService) Bootstrap(ctx context.Context, token string, data domain.BootstrapData) (domain.BootstrapResult, error) {
	log := slogx.FromContext(ctx)

	if s.Token == "" {
		return domain.BootstrapResult{}, ErrBootstrapDisabled
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.Token)) != 1 {
		log.Warn("bootstrap attempt with wrong token")
		return domain.BootstrapResult{}, ErrInvalidBootstrapToken
	}

	email := NormalizeEmail(data.CoachEmail)
	if email == "" || data.CoachName == "" || data.CoachPassword == "" {
		return domain.BootstrapResult{}, ErrInvalidBootstrapRequest
	}
	for _, name := range data.AthleteNames {
		if name == "" {
			return domain.BootstrapResult{}, ErrInvalidBootstrapRequest
		}
	}

	empty, err := s.Store.Coaches().IsEmpty(ctx)
	if err != nil {
		log.Error("failed to check coach table", slog.Any("error", err))
		return domain.BootstrapResult{}, err
	}
	if !empty {
		return domain.BootstrapResult{}, ErrAlreadyBootstrapped
	}

	hash, err := cryptox.HashPassword(data.CoachPassword)
	if err != nil {
		log.Error("failed to hash bootstrap password", slog.Any("error", err))
		return domain.BootstrapResult{}, err
	}

	coach := domain.Coach{
		ID:           idx.New().String(),
		Email:        email,
		Name:         data.CoachName,
		PasswordHash: hash,
	}

	result := domain.BootstrapResult{CoachID: coach.ID}
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Coaches().CreateCoach(ctx, coach); err != nil {
			return err
		}
		for _, name := range data.AthleteNames {
			athlete := domain.Athlete{
				ID:      idx.New().String(),
				CoachID: coach.ID,
				Name:    name,
			}
			if err := tx.Athletes().CreateAthlete(ctx, athlete); err != nil {
				return err
			}
			result.AthleteIDs = append(result.AthleteIDs, athlete.ID)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			// Lost a race with a concurrent bootstrap.
			return domain.BootstrapResult{}, ErrAlreadyBootstrapped
		}
		log.Error("failed to create coach", slog.Any("error", err))
		return domain.BootstrapResult{}, err
	}

	log.Info("bootstrap complete",
		slog.String("coach_id", coach.ID),
		slog.Int("athletes", len(result.AthleteIDs)),
	)
	return result, nil
}
