package domain

import "time"

// Invite is a time-limited, single-use credential-bootstrap record
// scoped to one athlete. Only the fingerprint of the invite token is
// stored; the raw token exists transiently in the issuance path and in
// the invite URL handed to the coach.
type Invite struct {
	ID        string
	AthleteID string
	TokenHash string // peppered SHA-256 fingerprint, unique
	CreatedBy string // coach who issued the invite
	ExpiresAt time.Time
	UsedAt    *time.Time // nil until accepted
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Usable reports whether the invite can still be accepted at the given
// instant. An invite expiring exactly at now is no longer usable.
func (i Invite) Usable(now time.Time) bool {
	return i.UsedAt == nil && i.ExpiresAt.After(now)
}

// IssuedInvite is returned to the issuing coach: the shareable URL
// embedding the raw token, and when it stops working.
type IssuedInvite struct {
	URL       string
	ExpiresAt time.Time
}
