package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
)

type sessionsRepo struct {
	q queryer
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO sessions (id, principal_id, kind, expires_at, revoked_at, created_at)
		VALUES (?, ?, ?, ?, NULL, ?)`,
		s.ID,
		s.PrincipalID,
		s.Kind,
		s.ExpiresAt.UTC(),
		time.Now().UTC(),
	)
	return mapConstraint(err)
}

func (r *sessionsRepo) GetSessionByID(ctx context.Context, id string) (domain.Session, error) {
	var s domain.Session
	var revokedAt sql.NullTime
	err := r.q.QueryRowContext(ctx, `
		SELECT id, principal_id, kind, expires_at, revoked_at, created_at
		FROM sessions
		WHERE id = ?`,
		id,
	).Scan(&s.ID, &s.PrincipalID, &s.Kind, &s.ExpiresAt, &revokedAt, &s.CreatedAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.RevokedAt = mapNullTimePtr(revokedAt)
	return s, nil
}

func (r *sessionsRepo) RevokeSession(ctx context.Context, id string) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE sessions SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`,
		time.Now().UTC(),
		id,
	)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM sessions WHERE expires_at <= ?`,
		time.Now().UTC(),
	)
	return err
}
