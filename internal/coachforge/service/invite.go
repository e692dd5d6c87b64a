package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
	"github.com/coachforge/coachforge/internal/coachforge/store"
	"github.com/coachforge/coachforge/pkg/cryptox"
	"github.com/coachforge/coachforge/pkg/idx"
	"github.com/coachforge/coachforge/pkg/slogx"
)

const DefaultInviteTTL = 24 * time.Hour

var (
	ErrAthleteNotFound      = errors.New("athlete not found")
	ErrNotAthleteOwner      = errors.New("athlete belongs to a different coach")
	ErrAlreadyActivated     = errors.New("athlete already has an activated credential")
	ErrInviteNotFound       = errors.New("invite not found")
	ErrInviteUsed           = errors.New("invite has already been used")
	ErrInviteExpired        = errors.New("invite has expired")
	ErrEmailTaken           = errors.New("email already in use")
	ErrInvalidAcceptRequest = errors.New("invalid accept request")
	ErrMissingBaseURL       = errors.New("invite base URL is not configured")
)

type InviteService struct {
	Store   store.Store
	BaseURL string        // public origin the invite URL is built on
	TTL     time.Duration // zero means DefaultInviteTTL
}

func (s *InviteService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultInviteTTL
	}
	return s.TTL
}

// IssueInvite mints a fresh invite for the athlete and expires any
// outstanding ones, so at most one invite is live per athlete. The raw
// token leaves the process only inside the returned URL.
func (s *InviteService) IssueInvite(ctx context.Context, coachID, athleteID string) (domain.IssuedInvite, error) {
	log := slogx.FromContext(ctx)

	if s.BaseURL == "" {
		log.Error("invite base URL missing from configuration")
		return domain.IssuedInvite{}, ErrMissingBaseURL
	}

	// 1. Athlete must exist.
	athlete, err := s.Store.Athletes().GetAthleteByID(ctx, athleteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.IssuedInvite{}, ErrAthleteNotFound
		}
		log.Error("failed to fetch athlete", slog.Any("error", err))
		return domain.IssuedInvite{}, err
	}

	// 2. Only the owning coach may invite.
	if athlete.CoachID != coachID {
		log.Warn("invite attempt on another coach's athlete",
			slog.String("athlete_id", athleteID),
			slog.String("coach_id", coachID),
		)
		return domain.IssuedInvite{}, ErrNotAthleteOwner
	}

	// 3. An activated athlete no longer needs invites.
	cred, err := s.Store.Credentials().GetCredentialByAthleteID(ctx, athleteID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to fetch credential", slog.Any("error", err))
		return domain.IssuedInvite{}, err
	}
	if err == nil && cred.ActivatedAt != nil {
		return domain.IssuedInvite{}, ErrAlreadyActivated
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invite token", slog.Any("error", err))
		return domain.IssuedInvite{}, err
	}

	now := time.Now()
	invite := domain.Invite{
		ID:        idx.New().String(),
		AthleteID: athleteID,
		TokenHash: cryptox.FingerprintToken(token),
		CreatedBy: coachID,
		ExpiresAt: now.Add(s.ttl()),
	}

	// 4. Supersede before minting. The two writes are deliberately not
	// one transaction: a crash in between leaves zero live invites,
	// which is safe and recoverable by reissuing.
	if err := s.Store.Invites().ExpireActiveInvites(ctx, athleteID, now); err != nil {
		log.Error("failed to expire outstanding invites", slog.Any("error", err))
		return domain.IssuedInvite{}, err
	}
	if err := s.Store.Invites().CreateInvite(ctx, invite); err != nil {
		log.Error("failed to create invite", slog.Any("error", err))
		return domain.IssuedInvite{}, err
	}

	log.Info("invite issued",
		slog.String("invite_id", invite.ID),
		slog.String("athlete_id", athleteID),
		slog.Time("expires_at", invite.ExpiresAt),
	)

	return domain.IssuedInvite{
		URL:       fmt.Sprintf("%s/invite/%s", strings.TrimRight(s.BaseURL, "/"), token),
		ExpiresAt: invite.ExpiresAt,
	}, nil
}

// AcceptInvite redeems a raw invite token, setting the athlete's login
// credential and activating the account. Credential write and invite
// consumption commit atomically; any failure leaves the token usable.
func (s *InviteService) AcceptInvite(ctx context.Context, rawToken, email, password string) error {
	log := slogx.FromContext(ctx)

	email = NormalizeEmail(email)
	if rawToken == "" || email == "" || password == "" {
		return ErrInvalidAcceptRequest
	}

	invite, err := s.Store.Invites().GetInviteByTokenHash(ctx, cryptox.FingerprintToken(rawToken))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		log.Error("failed to fetch invite", slog.Any("error", err))
		return err
	}

	now := time.Now()
	if invite.UsedAt != nil {
		return ErrInviteUsed
	}
	if !invite.ExpiresAt.After(now) {
		return ErrInviteExpired
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		cred := domain.AthleteCredential{
			AthleteID:    invite.AthleteID,
			Email:        email,
			PasswordHash: hash,
			ActivatedAt:  &now,
		}
		if err := tx.Credentials().UpsertCredential(ctx, cred); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}

		// Conditional update; a concurrent acceptor that got here first
		// makes this report not-found and rolls us back.
		if err := tx.Invites().MarkInviteUsed(ctx, invite.ID, now); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInviteUsed
			}
			return err
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, ErrEmailTaken) && !errors.Is(err, ErrInviteUsed) {
			log.Error("failed to accept invite",
				slog.String("invite_id", invite.ID),
				slog.Any("error", err),
			)
		}
		return err
	}

	log.Info("invite accepted",
		slog.String("invite_id", invite.ID),
		slog.String("athlete_id", invite.AthleteID),
	)
	return nil
}

// NormalizeEmail lowercases and trims an email so lookups and the
// unique index agree on one canonical form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
