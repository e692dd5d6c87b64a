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

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP godoc
//
//	@Summary		Bootstrap Endpoint
//	@Description	Create the first coach account, guarded by the operator's bootstrap token
//	@Tags			System
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coachsdk.BootstrapRequest	true	"Bootstrap parameters"
//	@Success		201		{object}	coachsdk.BootstrapResponse	"coach_id"
//	@Failure		400		{object}	coachsdk.ErrorResponse		"error, error_description"
//	@Failure		403		{object}	coachsdk.ErrorResponse		"error, error_description"
//	@Failure		409		{object}	coachsdk.ErrorResponse		"error, error_description"
//	@Failure		500		{object}	coachsdk.ErrorResponse		"error, error_description"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req coachsdk.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, coachsdk.ErrorResponse{
			Error:            coachsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	result, err := h.BootstrapService.Bootstrap(ctx, req.Token, domain.BootstrapData{
		CoachEmail:    req.Email,
		CoachName:     req.Name,
		CoachPassword: req.Password,
		AthleteNames:  req.Athletes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapDisabled), errors.Is(err, service.ErrInvalidBootstrapToken):
			httpx.WriteJSON(w, http.StatusForbidden, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeForbidden,
				ErrorDescription: "Bootstrap is disabled or the token is invalid",
			})
		case errors.Is(err, service.ErrAlreadyBootstrapped):
			httpx.WriteJSON(w, http.StatusConflict, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeConflict,
				ErrorDescription: "A coach account already exists",
			})
		case errors.Is(err, service.ErrInvalidBootstrapRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "email, name, and password are required",
			})
		default:
			log.Error("bootstrap failed", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to bootstrap",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, coachsdk.BootstrapResponse{
		CoachID:    result.CoachID,
		AthleteIDs: result.AthleteIDs,
	})
}
