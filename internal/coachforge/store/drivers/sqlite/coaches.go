package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
)

type coachesRepo struct {
	q queryer
}

func (r *coachesRepo) CreateCoach(ctx context.Context, c domain.Coach) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO coaches (id, email, name, password_hash, mfa_secret, mfa_enabled, created_at, updated_at)
		VALUES (?, ?, ?, ?, NULL, NULL, ?, ?)`,
		c.ID,
		c.Email,
		c.Name,
		c.PasswordHash,
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *coachesRepo) GetCoachByID(ctx context.Context, id string) (domain.Coach, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, mfa_secret, mfa_enabled, created_at, updated_at
		FROM coaches
		WHERE id = ?`,
		id,
	)
	return scanCoach(row)
}

func (r *coachesRepo) GetCoachByEmail(ctx context.Context, email string) (domain.Coach, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, email, name, password_hash, mfa_secret, mfa_enabled, created_at, updated_at
		FROM coaches
		WHERE email = ?`,
		email,
	)
	return scanCoach(row)
}

func (r *coachesRepo) UpdateMFASecret(ctx context.Context, coachID string, secret string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE coaches SET mfa_secret = ?, updated_at = ? WHERE id = ?`,
		secret,
		time.Now().UTC(),
		coachID,
	)
	return err
}

func (r *coachesRepo) EnableMFA(ctx context.Context, coachID string) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`UPDATE coaches SET mfa_enabled = ?, updated_at = ? WHERE id = ?`,
		now,
		now,
		coachID,
	)
	return err
}

func (r *coachesRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int
	if err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM coaches`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func scanCoach(row rowScanner) (domain.Coach, error) {
	var c domain.Coach
	var mfaSecret sql.NullString
	var mfaEnabled sql.NullTime
	err := row.Scan(
		&c.ID,
		&c.Email,
		&c.Name,
		&c.PasswordHash,
		&mfaSecret,
		&mfaEnabled,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return domain.Coach{}, mapNotFound(err)
	}
	c.MFASecret = mapNullStringPtr(mfaSecret)
	c.MFAEnabled = mapNullTimePtr(mfaEnabled)
	return c, nil
}
