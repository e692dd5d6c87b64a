package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/coachforge/coachforge/pkg/jwtx"
	"github.com/coachforge/coachforge/pkg/slogx"
)

// SessionCookieName is the cookie browsers hold between requests. The
// same token is also accepted as a bearer credential for API callers.
const SessionCookieName = "coachforge_session"

// SessionChecker reports whether a session row is still live (not
// revoked, not expired). Implemented by the session service.
type SessionChecker interface {
	CheckSession(ctx context.Context, sessionID string) error
}

// AuthnMiddleware verifies the session token (cookie or bearer header)
// and confirms the referenced session has not been revoked. On success
// the principal id, kind, and session id are injected into the context.
func AuthnMiddleware(signer *jwtx.Signer, sessions SessionChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			raw := sessionTokenFromRequest(r)
			if raw == "" {
				writeAuthnError(w, "missing session token")
				return
			}

			claims, err := signer.Verify(raw)
			if err != nil {
				log.Warn("session token verification failed", "err", err)
				writeAuthnError(w, "invalid or expired session token")
				return
			}

			if err := sessions.CheckSession(ctx, claims.SessionID); err != nil {
				log.Warn("session no longer live", "session_id", claims.SessionID)
				writeAuthnError(w, "session revoked or expired")
				return
			}

			ctx = context.WithValue(ctx, CtxKeyPrincipalID, claims.Subject)
			ctx = context.WithValue(ctx, CtxKeyPrincipalKind, claims.Kind)
			ctx = context.WithValue(ctx, CtxKeySessionID, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func sessionTokenFromRequest(r *http.Request) string {
	if authz := r.Header.Get("Authorization"); strings.HasPrefix(authz, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))
	}
	if c, err := r.Cookie(SessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

func writeAuthnError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "unauthorized",
		"error_description": desc,
	})
}
