package http

import (
	"errors"
	"net/http"

	"github.com/coachforge/coachforge/internal/coachforge/service"
	"github.com/coachforge/coachforge/pkg/coachsdk"
	"github.com/coachforge/coachforge/pkg/httpx"
	"github.com/coachforge/coachforge/pkg/slogx"
)

type InviteIssueHandler struct {
	InviteService *service.InviteService
}

// ServeHTTP godoc
//
//	@Summary		Issue Invite Endpoint
//	@Description	Mint a fresh single-use invite for the athlete, superseding any outstanding one
//	@Tags			Invites
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string						true	"Athlete ID"
//	@Success		201	{object}	coachsdk.IssueInviteResponse	"invite_url, expires_at"
//	@Failure		401	{object}	coachsdk.ErrorResponse			"error, error_description"
//	@Failure		403	{object}	coachsdk.ErrorResponse			"error, error_description"
//	@Failure		404	{object}	coachsdk.ErrorResponse			"error, error_description"
//	@Failure		409	{object}	coachsdk.ErrorResponse			"error, error_description"
//	@Failure		500	{object}	coachsdk.ErrorResponse			"error, error_description"
//	@Router			/v1/athletes/{id}/invites [post].
func (h *InviteIssueHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
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

	issued, err := h.InviteService.IssueInvite(ctx, coachID, r.PathValue("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAthleteNotFound):
			httpx.WriteJSON(w, http.StatusNotFound, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeNotFound,
				ErrorDescription: "Athlete not found",
			})
		case errors.Is(err, service.ErrNotAthleteOwner):
			httpx.WriteJSON(w, http.StatusForbidden, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeForbidden,
				ErrorDescription: "Athlete belongs to a different coach",
			})
		case errors.Is(err, service.ErrAlreadyActivated):
			httpx.WriteJSON(w, http.StatusConflict, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeConflict,
				ErrorDescription: "Athlete already has an activated account",
			})
		default:
			log.Error("failed to issue invite", "err", err)
			httpx.WriteJSON(w, http.StatusInternalServerError, coachsdk.ErrorResponse{
				Error:            coachsdk.ErrorCodeServerError,
				ErrorDescription: "Failed to issue invite",
			})
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, coachsdk.IssueInviteResponse{
		InviteURL: issued.URL,
		ExpiresAt: issued.ExpiresAt,
	})
}
