package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
	"github.com/coachforge/coachforge/internal/coachforge/store"
)

type invitesRepo struct {
	q queryer
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx, `
		INSERT INTO invites (id, athlete_id, token_hash, created_by, expires_at, used_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID,
		inv.AthleteID,
		inv.TokenHash,
		inv.CreatedBy,
		inv.ExpiresAt.UTC(),
		mapOptionalTime(inv.UsedAt),
		now,
		now,
	)
	return mapConstraint(err)
}

func (r *invitesRepo) GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error) {
	row := r.q.QueryRowContext(ctx, `
		SELECT id, athlete_id, token_hash, created_by, expires_at, used_at, created_at, updated_at
		FROM invites
		WHERE token_hash = ?`,
		hash,
	)
	return scanInvite(row)
}

func (r *invitesRepo) ExpireActiveInvites(ctx context.Context, athleteID string, now time.Time) error {
	_, err := r.q.ExecContext(ctx, `
		UPDATE invites
		SET expires_at = ?, updated_at = ?
		WHERE athlete_id = ? AND used_at IS NULL AND expires_at > ?`,
		now.UTC(),
		now.UTC(),
		athleteID,
		now.UTC(),
	)
	return err
}

// MarkInviteUsed is a conditional update: the WHERE clause on used_at
// makes the second of two racing acceptors affect zero rows, which is
// reported as ErrNotFound.
func (r *invitesRepo) MarkInviteUsed(ctx context.Context, inviteID string, now time.Time) error {
	res, err := r.q.ExecContext(ctx, `
		UPDATE invites
		SET used_at = ?, updated_at = ?
		WHERE id = ? AND used_at IS NULL`,
		now.UTC(),
		now.UTC(),
		inviteID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *invitesRepo) ListInvitesByAthlete(ctx context.Context, athleteID string) ([]domain.Invite, error) {
	rows, err := r.q.QueryContext(ctx, `
		SELECT id, athlete_id, token_hash, created_by, expires_at, used_at, created_at, updated_at
		FROM invites
		WHERE athlete_id = ?
		ORDER BY created_at DESC`,
		athleteID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []domain.Invite
	for rows.Next() {
		inv, err := scanInvite(rows)
		if err != nil {
			return nil, err
		}
		invites = append(invites, inv)
	}
	return invites, rows.Err()
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context) error {
	_, err := r.q.ExecContext(ctx,
		`DELETE FROM invites WHERE expires_at <= ? OR used_at IS NOT NULL`,
		time.Now().UTC(),
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInvite(row rowScanner) (domain.Invite, error) {
	var inv domain.Invite
	var usedAt sql.NullTime
	err := row.Scan(
		&inv.ID,
		&inv.AthleteID,
		&inv.TokenHash,
		&inv.CreatedBy,
		&inv.ExpiresAt,
		&usedAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.UsedAt = mapNullTimePtr(usedAt)
	return inv, nil
}
