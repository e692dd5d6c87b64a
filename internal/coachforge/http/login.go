package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/coachforge/coachforge/internal/coachforge/domain"
	"github.com/coachforge/coachforge/internal/coachforge/service"
	"github.com/coachforge/coachforge/pkg/coachsdk"
	"github.com/coachforge/coachforge/pkg/httpx"
	"github.com/coachforge/coachforge/pkg/slogx"
)

type CoachLoginHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Coach Login Endpoint
//	@Description	Authenticate a coach with email and password; a TOTP code is required once MFA is enabled
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coachsdk.CoachLoginRequest	true	"Login credentials"
//	@Success		200		{object}	coachsdk.LoginResponse		"token, expires_at"
//	@Failure		400		{object}	coachsdk.ErrorResponse		"error, error_description"
//	@Failure		401		{object}	coachsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	coachsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/auth/coach/login [post].
func (h *CoachLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req coachsdk.CoachLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, coachsdk.ErrorResponse{
			Error:            coachsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	issued, err := h.SessionService.LoginCoach(ctx, req.Email, req.Password, req.TOTPCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMFARequired):
			httpx.WriteJSON(w, http.StatusUnauthorized, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeMFARequired,
				ErrorDescription: "A TOTP code is required for this account",
			})
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInvalidTOTPCode):
			httpx.WriteJSON(w, http.StatusUnauthorized, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeInvalidGrant,
				ErrorDescription: "Invalid email, password, or TOTP code",
			})
		default:
			log.Error("coach login failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to log in",
			})
		}
		return
	}

	writeSession(w, issued)
}

type AthleteLoginHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Athlete Login Endpoint
//	@Description	Authenticate an activated athlete with email and password
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coachsdk.AthleteLoginRequest	true	"Login credentials"
//	@Success		200		{object}	coachsdk.LoginResponse			"token, expires_at"
//	@Failure		400		{object}	coachsdk.ErrorResponse			"error, error_description"
//	@Failure		401		{object}	coachsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	coachsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/auth/athlete/login [post].
func (h *AthleteLoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req coachsdk.AthleteLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, coachsdk.ErrorResponse{
			Error:            coachsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	issued, err := h.SessionService.LoginAthlete(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotActivated):
			httpx.WriteJSON(w, http.StatusUnauthorized, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeNotActivated,
				ErrorDescription: "Account has not been activated; use your invite link first",
			})
		case errors.Is(err, service.ErrInvalidCredentials):
			httpx.WriteJSON(w, http.StatusUnauthorized, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeInvalidGrant,
				ErrorDescription: "Invalid email or password",
			})
		default:
			log.Error("athlete login failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to log in",
			})
		}
		return
	}

	writeSession(w, issued)
}

type LogoutHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Logout Endpoint
//	@Description	Revoke the current session; the token stops working immediately
//	@Tags			Auth
//	@Produce		json
//	@Security		BearerAuth
//	@Success		204	"No Content"
//	@Failure		401	{object}	coachsdk.ErrorResponse	"error, error_description"
//	@Failure		500	{object}	coachsdk.ErrorResponse	"error, error_description"
//	@Router			/v1/auth/logout [post].
func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	sessionID := httpx.SessionIDFromCtx(ctx)
	if err := h.SessionService.Logout(ctx, sessionID); err != nil {
		log.Error("logout failed", "err", err)
		httpx.WriteJSON(w, http.StatusInternalServerError, coachsdk.ErrorResponse{
			Error:            coachsdk.ErrorCodeServerError,
			ErrorDescription: "Failed to log out",
		})
		return
	}

	clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// writeSession returns the token in the body for API clients and as a
// cookie for browsers.
func writeSession(w http.ResponseWriter, issued domain.IssuedSession) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    issued.Token,
		Path:     "/",
		Expires:  issued.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	httpx.WriteJSON(w, http.StatusOK, coachsdk.LoginResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	})
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     httpx.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
