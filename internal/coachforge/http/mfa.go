package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coachforge/coachforge/internal/coachforge/service"
	"github.com/coachforge/coachforge/pkg/coachsdk"
	"github.com/coachforge/coachforge/pkg/httpx"
	"github.com/coachforge/coachforge/pkg/slogx"
)

type MFAEnrollHandler struct {
	MFAService *service.MFAService
}

// ServeHTTP godoc
//
//	@Summary		TOTP Enrollment Endpoint
//	@Description	Generate a TOTP secret for the coach; MFA is enforced only after verification
//	@Tags			MFA
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	coachsdk.MFAEnrollResponse	"secret, qr_code, issuer, account"
//	@Failure		401	{object}	coachsdk.ErrorResponse		"error, error_description"
//	@Failure		409	{object}	coachsdk.ErrorResponse		"error, error_description"
//	@Failure		500	{object}	coachsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/mfa/totp/enroll [post].
func (h *MFAEnrollHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	coachID, _, ok := httpx.PrincipalFromCtx(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, coachsdk.ErrorResponse{
			Error:            coachsdk.ErrorCodeUnauthorized,
			ErrorDescription: "Authentication required",
		})
		return
	}

	enroll, err := h.MFAService.EnrollTOTP(ctx, coachID)
	if err != nil {
		if errors.Is(err, service.ErrMFAAlreadyEnabled) {
			httpx.WriteJSON(w, http.StatusConflict, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeConflict,
				ErrorDescription: "MFA is already enabled",
			})
			return
		}
		log.Error("failed to enroll TOTP", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, coachsdk.ErrorResponse{
			Error:            coachsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to enroll",
		})
		return
	}

	httpx.WriteJSON(w, http.StatusOK, coachsdk.MFAEnrollResponse{
		Secret:  enroll.Secret,
		QRCode:  enroll.QRCode,
		Issuer:  enroll.Issuer,
		Account: enroll.Account,
	})
}

type MFAVerifyHandler struct {
	MFAService *service.MFAService
}

// ServeHTTP godoc
//
//	@Summary		TOTP Verification Endpoint
//	@Description	Verify an enrollment code and switch MFA on for the coach
//	@Tags			MFA
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			request	body	coachsdk.MFAVerifyRequest	true	"TOTP code"
//	@Success		204		"No Content"
//	@Failure		400		{object}	coachsdk.ErrorResponse	"error, error_description"
//	@Failure		401		{object}	coachsdk.ErrorResponse	"error, error_description"
//	@Failure		409		{object}	coachsdk.ErrorResponse	"error, error_description"
//	@Failure		500		{object}	coachsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/mfa/totp/verify [post].
func (h *MFAVerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	coachID, _, ok := httpx.PrincipalFromCtx(ctx)
	if !ok {
		httpx.WriteJSON(w, http.StatusUnauthorized, coachsdk.ErrorResponse{
			Error:            coachsdk.ErrorCodeUnauthorized,
			ErrorDescription: "Authentication required",
		})
		return
	}

	var req coachsdk.MFAVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		httpx.WriteJSON(w, http.StatusBadRequest, coachsdk.ErrorResponse{
			Error:            coachsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "code is required",
		})
		return
	}

	if err := h.MFAService.VerifyTOTP(ctx, coachID, req.Code); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidTOTPCode), errors.Is(err, service.ErrMFANotEnrolled):
			httpx.WriteJSON(w, http.StatusBadRequest, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "TOTP code could not be verified",
			})
		case errors.Is(err, service.ErrMFAAlreadyEnabled):
			httpx.WriteJSON(w, http.StatusConflict, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeConflict,
				ErrorDescription: "MFA is already enabled",
			})
		default:
			log.Error("failed to verify TOTP", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to verify",
			})
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
