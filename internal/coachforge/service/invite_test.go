package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
	"github.com/coachforge/coachforge/internal/coachforge/store"
	"github.com/coachforge/coachforge/pkg/cryptox"
	"github.com/coachforge/coachforge/pkg/idx"
)

const testBaseURL = "https://coachforge.test"

func newInviteService(s store.Store) *InviteService {
	return &InviteService{Store: s, BaseURL: testBaseURL}
}

func rawTokenFromURL(t *testing.T, inviteURL string) string {
	t.Helper()
	token := strings.TrimPrefix(inviteURL, testBaseURL+"/invite/")
	require.NotEqual(t, inviteURL, token, "invite URL has unexpected shape")
	return token
}

func TestIssueInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		s := newTestStore(t)
		coach := seedCoach(t, s, "coach@example.com")
		athlete := seedAthlete(t, s, coach.ID)
		svc := newInviteService(s)

		issued, err := svc.IssueInvite(ctx, coach.ID, athlete.ID)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(issued.URL, testBaseURL+"/invite/"))
		assert.True(t, issued.ExpiresAt.After(time.Now().Add(23*time.Hour)))

		// The store holds a fingerprint, never the raw token.
		raw := rawTokenFromURL(t, issued.URL)
		invites, err := s.Invites().ListInvitesByAthlete(ctx, athlete.ID)
		require.NoError(t, err)
		require.Len(t, invites, 1)
		assert.NotContains(t, invites[0].TokenHash, raw)
		assert.Equal(t, cryptox.FingerprintToken(raw), invites[0].TokenHash)
	})

	t.Run("reissue supersedes the outstanding invite", func(t *testing.T) {
		s := newTestStore(t)
		coach := seedCoach(t, s, "coach@example.com")
		athlete := seedAthlete(t, s, coach.ID)
		svc := newInviteService(s)

		first, err := svc.IssueInvite(ctx, coach.ID, athlete.ID)
		require.NoError(t, err)
		second, err := svc.IssueInvite(ctx, coach.ID, athlete.ID)
		require.NoError(t, err)

		// At most one live invite per athlete.
		now := time.Now()
		invites, err := s.Invites().ListInvitesByAthlete(ctx, athlete.ID)
		require.NoError(t, err)
		live := 0
		for _, inv := range invites {
			if inv.Usable(now) {
				live++
			}
		}
		assert.Equal(t, 1, live)

		// The superseded token no longer redeems; the fresh one does.
		err = svc.AcceptInvite(ctx, rawTokenFromURL(t, first.URL), "a@example.com", "password1")
		assert.ErrorIs(t, err, ErrInviteExpired)
		err = svc.AcceptInvite(ctx, rawTokenFromURL(t, second.URL), "a@example.com", "password1")
		assert.NoError(t, err)
	})

	t.Run("unknown athlete", func(t *testing.T) {
		s := newTestStore(t)
		coach := seedCoach(t, s, "coach@example.com")
		svc := newInviteService(s)

		_, err := svc.IssueInvite(ctx, coach.ID, idx.New().String())
		assert.ErrorIs(t, err, ErrAthleteNotFound)
	})

	t.Run("athlete owned by another coach", func(t *testing.T) {
		s := newTestStore(t)
		owner := seedCoach(t, s, "owner@example.com")
		other := seedCoach(t, s, "other@example.com")
		athlete := seedAthlete(t, s, owner.ID)
		svc := newInviteService(s)

		_, err := svc.IssueInvite(ctx, other.ID, athlete.ID)
		assert.ErrorIs(t, err, ErrNotAthleteOwner)
	})

	t.Run("already activated athlete", func(t *testing.T) {
		s := newTestStore(t)
		coach := seedCoach(t, s, "coach@example.com")
		athlete := seedAthlete(t, s, coach.ID)
		svc := newInviteService(s)

		issued, err := svc.IssueInvite(ctx, coach.ID, athlete.ID)
		require.NoError(t, err)
		require.NoError(t, svc.AcceptInvite(ctx, rawTokenFromURL(t, issued.URL), "a@example.com", "password1"))

		_, err = svc.IssueInvite(ctx, coach.ID, athlete.ID)
		assert.ErrorIs(t, err, ErrAlreadyActivated)
	})

	t.Run("missing base URL", func(t *testing.T) {
		s := newTestStore(t)
		coach := seedCoach(t, s, "coach@example.com")
		athlete := seedAthlete(t, s, coach.ID)
		svc := &InviteService{Store: s}

		_, err := svc.IssueInvite(ctx, coach.ID, athlete.ID)
		assert.ErrorIs(t, err, ErrMissingBaseURL)
	})
}

func TestAcceptInvite(t *testing.T) {
	ctx := context.Background()

	t.Run("activates the credential", func(t *testing.T) {
		s := newTestStore(t)
		coach := seedCoach(t, s, "coach@example.com")
		athlete := seedAthlete(t, s, coach.ID)
		svc := newInviteService(s)

		issued, err := svc.IssueInvite(ctx, coach.ID, athlete.ID)
		require.NoError(t, err)
		raw := rawTokenFromURL(t, issued.URL)

		require.NoError(t, svc.AcceptInvite(ctx, raw, "  Athlete@Example.COM ", "hunter2hunter2"))

		cred, err := s.Credentials().GetCredentialByAthleteID(ctx, athlete.ID)
		require.NoError(t, err)
		assert.Equal(t, "athlete@example.com", cred.Email)
		require.NotNil(t, cred.ActivatedAt)
		assert.NoError(t, cryptox.VerifyPassword("hunter2hunter2", cred.PasswordHash))

		inv, err := s.Invites().GetInviteByTokenHash(ctx, cryptox.FingerprintToken(raw))
		require.NoError(t, err)
		assert.NotNil(t, inv.UsedAt)
	})

	t.Run("token is single use", func(t *testing.T) {
		s := newTestStore(t)
		coach := seedCoach(t, s, "coach@example.com")
		athlete := seedAthlete(t, s, coach.ID)
		svc := newInviteService(s)

		issued, err := svc.IssueInvite(ctx, coach.ID, athlete.ID)
		require.NoError(t, err)
		raw := rawTokenFromURL(t, issued.URL)

		require.NoError(t, svc.AcceptInvite(ctx, raw, "a@example.com", "password1"))
		err = svc.AcceptInvite(ctx, raw, "b@example.com", "password2")
		assert.ErrorIs(t, err, ErrInviteUsed)

		// The losing attempt must not have touched the credential.
		cred, err := s.Credentials().GetCredentialByAthleteID(ctx, athlete.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", cred.Email)
	})

	t.Run("unknown token", func(t *testing.T) {
		s := newTestStore(t)
		svc := newInviteService(s)

		err := svc.AcceptInvite(ctx, cryptox.MustGenerateToken(cryptox.TokenSize256), "a@example.com", "password1")
		assert.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("expiry boundary is exclusive", func(t *testing.T) {
		s := newTestStore(t)
		coach := seedCoach(t, s, "coach@example.com")
		athlete := seedAthlete(t, s, coach.ID)
		svc := newInviteService(s)

		// An invite whose expiry has already passed. Domain-level checks
		// cover the exact expires_at == now instant.
		raw := cryptox.MustGenerateToken(cryptox.TokenSize256)
		require.NoError(t, s.Invites().CreateInvite(ctx, domain.Invite{
			ID:        idx.New().String(),
			AthleteID: athlete.ID,
			TokenHash: cryptox.FingerprintToken(raw),
			CreatedBy: coach.ID,
			ExpiresAt: time.Now().Add(-time.Second),
		}))

		err := svc.AcceptInvite(ctx, raw, "a@example.com", "password1")
		assert.ErrorIs(t, err, ErrInviteExpired)
	})

	t.Run("email collision rolls back and keeps the token live", func(t *testing.T) {
		s := newTestStore(t)
		coach := seedCoach(t, s, "coach@example.com")
		first := seedAthlete(t, s, coach.ID)
		second := seedAthlete(t, s, coach.ID)
		svc := newInviteService(s)

		issuedFirst, err := svc.IssueInvite(ctx, coach.ID, first.ID)
		require.NoError(t, err)
		require.NoError(t, svc.AcceptInvite(ctx, rawTokenFromURL(t, issuedFirst.URL), "shared@example.com", "password1"))

		issuedSecond, err := svc.IssueInvite(ctx, coach.ID, second.ID)
		require.NoError(t, err)
		rawSecond := rawTokenFromURL(t, issuedSecond.URL)

		err = svc.AcceptInvite(ctx, rawSecond, "shared@example.com", "password2")
		assert.ErrorIs(t, err, ErrEmailTaken)

		// Rollback left the invite unused and the athlete without a credential.
		inv, err := s.Invites().GetInviteByTokenHash(ctx, cryptox.FingerprintToken(rawSecond))
		require.NoError(t, err)
		assert.Nil(t, inv.UsedAt)
		_, err = s.Credentials().GetCredentialByAthleteID(ctx, second.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)

		// A retry with a free address succeeds on the same token.
		require.NoError(t, svc.AcceptInvite(ctx, rawSecond, "free@example.com", "password2"))
	})

	t.Run("rejects blank fields", func(t *testing.T) {
		s := newTestStore(t)
		svc := newInviteService(s)

		assert.ErrorIs(t, svc.AcceptInvite(ctx, "", "a@example.com", "p"), ErrInvalidAcceptRequest)
		assert.ErrorIs(t, svc.AcceptInvite(ctx, "tok", "   ", "p"), ErrInvalidAcceptRequest)
		assert.ErrorIs(t, svc.AcceptInvite(ctx, "tok", "a@example.com", ""), ErrInvalidAcceptRequest)
	})
}

func TestInviteUsableBoundary(t *testing.T) {
	t.Parallel()

	now := time.Now()
	inv := domain.Invite{ExpiresAt: now}

	assert.False(t, inv.Usable(now), "expiry equal to now must count as expired")
	assert.True(t, inv.Usable(now.Add(-time.Nanosecond)))

	used := now
	inv = domain.Invite{ExpiresAt: now.Add(time.Hour), UsedAt: &used}
	assert.False(t, inv.Usable(now))
}
