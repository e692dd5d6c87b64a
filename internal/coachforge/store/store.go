package store

import (
	"context"
	"errors"
	"time"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep
// concerns tidy and testable.
type Store interface {
	Coaches() Coaches
	Athletes() Athletes
	Credentials() Credentials
	Invites() Invites
	Sessions() Sessions

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error,
	// the transaction is rolled back; otherwise it is committed. This is
	// the recommended way to handle multi-step atomic operations (e.g.
	// credential upsert + invite mark-used).
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Coaches interface {
	// CreateCoach inserts a new coach (id is provided by app via ULID).
	// A duplicate email returns ErrAlreadyExists.
	CreateCoach(ctx context.Context, c domain.Coach) error

	// GetCoachByID returns a coach by id.
	GetCoachByID(ctx context.Context, id string) (domain.Coach, error)

	// GetCoachByEmail is used during login (email already normalized).
	GetCoachByEmail(ctx context.Context, email string) (domain.Coach, error)

	// UpdateMFASecret sets the TOTP secret for a coach (not yet enabled).
	UpdateMFASecret(ctx context.Context, coachID string, secret string) error

	// EnableMFA marks MFA as enabled (sets mfa_enabled timestamp).
	EnableMFA(ctx context.Context, coachID string) error

	// IsEmpty returns true if there are no coaches (bootstrap gate).
	IsEmpty(ctx context.Context) (bool, error)
}

type Athletes interface {
	// CreateAthlete inserts a new athlete owned by a coach.
	CreateAthlete(ctx context.Context, a domain.Athlete) error

	// GetAthleteByID returns an athlete by id.
	GetAthleteByID(ctx context.Context, id string) (domain.Athlete, error)
}

type Credentials interface {
	// UpsertCredential creates or replaces the credential row keyed by
	// athlete id. An email claimed by a different athlete returns
	// ErrAlreadyExists.
	UpsertCredential(ctx context.Context, c domain.AthleteCredential) error

	// GetCredentialByEmail looks up by normalized login identifier.
	GetCredentialByEmail(ctx context.Context, email string) (domain.AthleteCredential, error)

	// GetCredentialByAthleteID looks up by owner.
	GetCredentialByAthleteID(ctx context.Context, athleteID string) (domain.AthleteCredential, error)
}

type Invites interface {
	// CreateInvite writes a new invite (token_hash is the peppered
	// fingerprint of the opaque invite token).
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByTokenHash returns an invite in any state; callers
	// distinguish used/expired themselves.
	GetInviteByTokenHash(ctx context.Context, hash string) (domain.Invite, error)

	// ExpireActiveInvites sets expires_at = now on every unused,
	// unexpired invite for the athlete, guaranteeing at most one live
	// invite after the caller mints a replacement.
	ExpireActiveInvites(ctx context.Context, athleteID string, now time.Time) error

	// MarkInviteUsed sets used_at = now, but only while used_at is still
	// null. Returns ErrNotFound when the invite was already used, so a
	// racing acceptor can observe it lost.
	MarkInviteUsed(ctx context.Context, inviteID string, now time.Time) error

	// ListInvitesByAthlete returns all invites for an athlete, newest first.
	ListInvitesByAthlete(ctx context.Context, athleteID string) ([]domain.Invite, error)

	// DeleteExpiredInvites is housekeeping.
	DeleteExpiredInvites(ctx context.Context) error
}

type Sessions interface {
	// CreateSession stores a new login session.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByID returns a session by id.
	GetSessionByID(ctx context.Context, id string) (domain.Session, error)

	// RevokeSession sets revoked_at; revoking twice is a no-op.
	RevokeSession(ctx context.Context, id string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context) error
}
