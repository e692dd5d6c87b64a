package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
	"github.com/coachforge/coachforge/internal/coachforge/store"
)

var (
	ErrInvalidTOTPCode   = errors.New("invalid TOTP code")
	ErrMFANotEnrolled    = errors.New("MFA not enrolled")
	ErrMFAAlreadyEnabled = errors.New("MFA already enabled")
)

type MFAService struct {
	Store  store.Store
	Issuer string // issuer shown in authenticator apps, e.g. "CoachForge"
}

// EnrollTOTP generates and stores a TOTP secret for the coach. MFA is
// not enforced until the coach proves possession via VerifyTOTP.
func (s *MFAService) EnrollTOTP(ctx context.Context, coachID string) (domain.MFAEnrollResponse, error) {
	coach, err := s.Store.Coaches().GetCoachByID(ctx, coachID)
	if err != nil {
		return domain.MFAEnrollResponse{}, fmt.Errorf("failed to fetch coach: %w", err)
	}
	if coach.MFAEnabled != nil {
		return domain.MFAEnrollResponse{}, ErrMFAAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: coach.Email,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return domain.MFAEnrollResponse{}, fmt.Errorf("failed to generate TOTP key: %w", err)
	}

	if err := s.Store.Coaches().UpdateMFASecret(ctx, coachID, key.Secret()); err != nil {
		return domain.MFAEnrollResponse{}, fmt.Errorf("failed to store MFA secret: %w", err)
	}

	return domain.MFAEnrollResponse{
		Secret:  key.Secret(),
		QRCode:  key.URL(),
		Issuer:  s.Issuer,
		Account: coach.Email,
	}, nil
}

// VerifyTOTP checks an enrollment code and, when valid, switches MFA on
// for the coach. Subsequent logins then require a code.
func (s *MFAService) VerifyTOTP(ctx context.Context, coachID, code string) error {
	coach, err := s.Store.Coaches().GetCoachByID(ctx, coachID)
	if err != nil {
		return fmt.Errorf("failed to fetch coach: %w", err)
	}
	if coach.MFASecret == nil || *coach.MFASecret == "" {
		return ErrMFANotEnrolled
	}
	if coach.MFAEnabled != nil {
		return ErrMFAAlreadyEnabled
	}

	if !totp.Validate(code, *coach.MFASecret) {
		return ErrInvalidTOTPCode
	}

	return s.Store.Coaches().EnableMFA(ctx, coachID)
}
