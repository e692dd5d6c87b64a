package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/coachforge/coachforge/internal/coachforge/store"
	"github.com/coachforge/coachforge/pkg/cryptox"
	"github.com/coachforge/coachforge/pkg/slogx"
)

type CredentialService struct {
	Store store.Store
}

// Verify reports whether email+password identify an activated athlete.
// It fails closed: a missing record, a missing hash, or a not-yet
// activated credential all verify false without telling the caller why.
func (s *CredentialService) Verify(ctx context.Context, email, password string) bool {
	log := slogx.FromContext(ctx)

	cred, err := s.Store.Credentials().GetCredentialByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Error("credential lookup failed", slog.Any("error", err))
		}
		return false
	}
	if cred.PasswordHash == "" || cred.ActivatedAt == nil {
		return false
	}

	return cryptox.VerifyPassword(password, cred.PasswordHash) == nil
}

// IsActivated reports whether the credential for the email exists and
// has been activated. Unlike Verify this is an explicit post-lookup
// check for surfaces that want to distinguish "bad password" from
// "account not yet set up".
func (s *CredentialService) IsActivated(ctx context.Context, email string) (bool, error) {
	cred, err := s.Store.Credentials().GetCredentialByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return cred.ActivatedAt != nil, nil
}
