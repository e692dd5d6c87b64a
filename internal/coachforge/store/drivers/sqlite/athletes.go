package sqlite

import (
	"context"
	"time"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
)

type athletesRepo struct {
	q queryer
}

func (r *athletesRepo) CreateAthlete(ctx context.Context, a domain.Athlete) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO athletes (id, coach_id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID,
		a.CoachID,
		a.Name,
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *athletesRepo) GetAthleteByID(ctx context.Context, id string) (domain.Athlete, error) {
	var a domain.Athlete
	err := r.q.QueryRowContext(ctx, `
		SELECT id, coach_id, name, created_at, updated_at
		FROM athletes
		WHERE id = ?`,
		id,
	).Scan(&a.ID, &a.CoachID, &a.Name, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Athlete{}, mapNotFound(err)
	}
	return a, nil
}
