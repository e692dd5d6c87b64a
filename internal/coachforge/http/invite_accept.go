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

type InviteAcceptHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Accept Invite Endpoint
//	@Description	Redeem an invite token, setting the athlete's email and password and activating the account
//	@Tags			Invites
//	@Accept			json
//	@Produce		json
//	@Param			request	body		coachsdk.AcceptInviteRequest	true	"Invite token and chosen credentials"
//	@Success		200		{object}	coachsdk.AcceptInviteResponse	"ok"
//	@Failure		400		{object}	coachsdk.ErrorResponse			"error, error_description"
//	@Failure		500		{object}	coachsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/invites/accept [post].
func (h *InviteAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req coachsdk.AcceptInviteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, coachsdk.ErrorResponse{
			Error:            coachsdk.ErrorCodeInvalidRequest,
			ErrorDescription: "Invalid JSON body",
		})
		return
	}

	err := h.InviteService.AcceptInvite(ctx, req.Token, req.Email, req.Password)
	if err != nil {
		// All rejections are 400s with a reason code; the athlete-facing
		// client turns these into actionable messages.
		switch {
		case errors.Is(err, service.ErrInviteNotFound):
			httpx.WriteJSON(w, http.StatusBadRequest, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeInvalidToken,
				ErrorDescription: "Invite token is not recognised",
			})
		case errors.Is(err, service.ErrInviteUsed):
			httpx.WriteJSON(w, http.StatusBadRequest, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeTokenUsed,
				ErrorDescription: "Invite has already been used",
			})
		case errors.Is(err, service.ErrInviteExpired):
			httpx.WriteJSON(w, http.StatusBadRequest, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeTokenExpired,
				ErrorDescription: "Invite has expired; ask your coach for a new one",
			})
		case errors.Is(err, service.ErrEmailTaken):
			httpx.WriteJSON(w, http.StatusBadRequest, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeEmailInUse,
				ErrorDescription: "Email is already in use",
			})
		case errors.Is(err, service.ErrInvalidAcceptRequest):
			httpx.WriteJSON(w, http.StatusBadRequest, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeInvalidRequest,
				ErrorDescription: "token, email, and password are required",
			})
		default:
			log.Error("failed to accept invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to accept invite",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, coachsdk.AcceptInviteResponse{OK: true})
}
