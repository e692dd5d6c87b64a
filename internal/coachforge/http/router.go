package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/coachforge/coachforge/internal/coachforge/service"
	"github.com/coachforge/coachforge/internal/coachforge/store"
	"github.com/coachforge/coachforge/pkg/httpx"
	"github.com/coachforge/coachforge/pkg/jwtx"
	"github.com/coachforge/coachforge/pkg/slogx"

	_ "github.com/coachforge/coachforge/api/coachforge" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	signer       *jwtx.Signer
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	BootstrapService *service.BootstrapService
	SessionService   *service.SessionService
	InviteService    *service.InviteService
	MFAService       *service.MFAService
}

func NewRouter(
	signer *jwtx.Signer,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		signer:       signer,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerInvites()
	r.registerMFA()
	r.registerSystem()
	r.registerBootstrap()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			CoachForge API
//	@version		0.1.0
//	@description	Invite-based athlete onboarding and session authentication
//	@description	for the CoachForge coaching platform.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	authn := httpx.AuthnMiddleware(r.signer, r.SessionService)

	r.Mux.Handle("POST /v1/auth/coach/login",
		httpx.Chain(&CoachLoginHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/athlete/login",
		httpx.Chain(&AthleteLoginHandler{SessionService: r.SessionService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(&LogoutHandler{SessionService: r.SessionService},
			authn,
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerInvites() {
	authn := httpx.AuthnMiddleware(r.signer, r.SessionService)

	r.Mux.Handle("POST /v1/athletes/{id}/invites",
		httpx.Chain(&InviteIssueHandler{InviteService: r.InviteService},
			authn,
			httpx.RequireKind(jwtx.KindCoach),
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("POST /v1/invites/accept",
		httpx.Chain(&InviteAcceptHandler{InviteService: r.InviteService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerMFA() {
	authn := httpx.AuthnMiddleware(r.signer, r.SessionService)

	r.Mux.Handle("POST /v1/mfa/totp/enroll",
		httpx.Chain(&MFAEnrollHandler{MFAService: r.MFAService},
			authn,
			httpx.RequireKind(jwtx.KindCoach),
			httpx.RateLimitByPrincipal(httpx.StrictLimit),
		),
	)

	r.Mux.Handle("POST /v1/mfa/totp/verify",
		httpx.Chain(&MFAVerifyHandler{MFAService: r.MFAService},
			authn,
			httpx.RequireKind(jwtx.KindCoach),
			httpx.RateLimitByPrincipal(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	r.Mux.Handle("POST /v1/bootstrap",
		httpx.Chain(&BootstrapHandler{BootstrapService: r.BootstrapService},
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}
