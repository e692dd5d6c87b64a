package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/pquerna/otp/totp"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
	"github.com/coachforge/coachforge/internal/coachforge/store"
	"github.com/coachforge/coachforge/pkg/cryptox"
	"github.com/coachforge/coachforge/pkg/idx"
	"github.com/coachforge/coachforge/pkg/jwtx"
	"github.com/coachforge/coachforge/pkg/slogx"
)

const DefaultSessionTTL = 12 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotActivated       = errors.New("account has not been activated")
	ErrMFARequired        = errors.New("TOTP code required")
	ErrSessionNotFound    = errors.New("session not found")
	ErrSessionRevoked     = errors.New("session has been revoked")
	ErrSessionExpired     = errors.New("session has expired")
)

type SessionService struct {
	Store  store.Store
	Signer *jwtx.Signer
	TTL    time.Duration // zero means DefaultSessionTTL
}

func (s *SessionService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultSessionTTL
	}
	return s.TTL
}

// LoginCoach verifies coach credentials and, when the coach has MFA
// enabled, the TOTP code. The password check always runs so timing does
// not reveal whether the email exists.
func (s *SessionService) LoginCoach(ctx context.Context, email, password, totpCode string) (domain.IssuedSession, error) {
	log := slogx.FromContext(ctx)

	coach, err := s.Store.Coaches().GetCoachByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.DummyVerifyPassword(password)
			return domain.IssuedSession{}, ErrInvalidCredentials
		}
		log.Error("coach lookup failed", slog.Any("error", err))
		return domain.IssuedSession{}, err
	}

	if err := cryptox.VerifyPassword(password, coach.PasswordHash); err != nil {
		return domain.IssuedSession{}, ErrInvalidCredentials
	}

	if coach.MFAEnabled != nil {
		if totpCode == "" {
			return domain.IssuedSession{}, ErrMFARequired
		}
		if coach.MFASecret == nil || !totp.Validate(totpCode, *coach.MFASecret) {
			return domain.IssuedSession{}, ErrInvalidTOTPCode
		}
	}

	return s.issue(ctx, coach.ID, jwtx.KindCoach)
}

// LoginAthlete verifies athlete credentials. A credential that exists
// but was never activated is reported distinctly so the client can
// prompt for the invite flow instead of a password retry.
func (s *SessionService) LoginAthlete(ctx context.Context, email, password string) (domain.IssuedSession, error) {
	log := slogx.FromContext(ctx)

	cred, err := s.Store.Credentials().GetCredentialByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			cryptox.DummyVerifyPassword(password)
			return domain.IssuedSession{}, ErrInvalidCredentials
		}
		log.Error("credential lookup failed", slog.Any("error", err))
		return domain.IssuedSession{}, err
	}

	if err := cryptox.VerifyPassword(password, cred.PasswordHash); err != nil {
		return domain.IssuedSession{}, ErrInvalidCredentials
	}
	if cred.ActivatedAt == nil {
		return domain.IssuedSession{}, ErrNotActivated
	}

	return s.issue(ctx, cred.AthleteID, jwtx.KindAthlete)
}

func (s *SessionService) issue(ctx context.Context, principalID, kind string) (domain.IssuedSession, error) {
	log := slogx.FromContext(ctx)

	sess := domain.Session{
		ID:          idx.New().String(),
		PrincipalID: principalID,
		Kind:        kind,
		ExpiresAt:   time.Now().Add(s.ttl()),
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		log.Error("failed to persist session", slog.Any("error", err))
		return domain.IssuedSession{}, err
	}

	token, err := s.Signer.Sign(jwtx.NewSessionClaims(principalID, kind, sess.ID, s.Signer.Issuer(), s.ttl()))
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return domain.IssuedSession{}, err
	}

	log.Info("session issued",
		slog.String("session_id", sess.ID),
		slog.String("kind", kind),
	)
	return domain.IssuedSession{Token: token, ExpiresAt: sess.ExpiresAt}, nil
}

// Logout revokes the session; the JWT stops working immediately even
// though it has not yet expired.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	return s.Store.Sessions().RevokeSession(ctx, sessionID)
}

// CheckSession reports whether the session row behind a verified token
// is still live. It satisfies httpx.SessionChecker.
func (s *SessionService) CheckSession(ctx context.Context, sessionID string) error {
	sess, err := s.Store.Sessions().GetSessionByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	if sess.RevokedAt != nil {
		return ErrSessionRevoked
	}
	if !sess.ExpiresAt.After(time.Now()) {
		return ErrSessionExpired
	}
	return nil
}
