package httpx

import "net/http"

// RequireKind restricts a route to principals of the given kind
// (e.g. jwtx.KindCoach). Must run after AuthnMiddleware. The response
// never reveals whether the targeted resource exists.
func RequireKind(kind string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if principalKindFromCtx(r.Context()) != kind {
				WriteJSON(w, http.StatusForbidden, map[string]string{
					"error":             "forbidden",
					"error_description": "insufficient privileges",
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
