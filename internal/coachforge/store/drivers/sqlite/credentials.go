package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
)

type credentialsRepo struct {
	q queryer
}

// UpsertCredential creates or replaces the credential row keyed by
// athlete id. The UNIQUE index on email turns a claim of someone else's
// address into store.ErrAlreadyExists.
func (r *credentialsRepo) UpsertCredential(ctx context.Context, c domain.AthleteCredential) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO athlete_credentials (athlete_id, email, password_hash, activated_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(athlete_id) DO UPDATE SET
			email = excluded.email,
			password_hash = excluded.password_hash,
			activated_at = excluded.activated_at,
			updated_at = excluded.updated_at`,
		c.AthleteID,
		c.Email,
		c.PasswordHash,
		mapOptionalTime(c.ActivatedAt),
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *credentialsRepo) GetCredentialByEmail(ctx context.Context, email string) (domain.AthleteCredential, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT athlete_id, email, password_hash, activated_at, created_at, updated_at
		FROM athlete_credentials
		WHERE email = ?`,
		email,
	)
	return scanCredential(row)
}

func (r *credentialsRepo) GetCredentialByAthleteID(ctx context.Context, athleteID string) (domain.AthleteCredential, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT athlete_id, email, password_hash, activated_at, created_at, updated_at
		FROM athlete_credentials
		WHERE athlete_id = ?`,
		athleteID,
	)
	return scanCredential(row)
}

func scanCredential(row rowScanner) (domain.AthleteCredential, error) {
	var c domain.AthleteCredential
	var activatedAt sql.NullTime
	err := row.Scan(
		&c.AthleteID,
		&c.Email,
		&c.PasswordHash,
		&activatedAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return domain.AthleteCredential{}, mapNotFound(err)
	}
	c.ActivatedAt = mapNullTimePtr(activatedAt)
	return c, nil
}
