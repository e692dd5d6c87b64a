package http

import (
	"net/http"
	"time"

	"github.com/coachforge/coachforge/pkg/coachsdk"
	"github.com/coachforge/coachforge/pkg/httpx"
)

// LivezHandler godoc
//
//	@Summary		Liveness Probe
//	@Description	Always returns 200 while the process is running
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	coachsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, coachsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}
