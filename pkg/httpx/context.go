package httpx

import "context"

type ctxKey string

const (
	CtxKeyPrincipalID   ctxKey = "principal_id"
	CtxKeyPrincipalKind ctxKey = "principal_kind"
	CtxKeySessionID     ctxKey = "session_id"
)

// PrincipalFromCtx returns the authenticated principal's id and kind, if any.
func PrincipalFromCtx(ctx context.Context) (id, kind string, ok bool) {
	id, idOK := ctx.Value(CtxKeyPrincipalID).(string)
	kind, kindOK := ctx.Value(CtxKeyPrincipalKind).(string)
	return id, kind, idOK && kindOK && id != ""
}

// SessionIDFromCtx returns the session id attached by the authn middleware.
func SessionIDFromCtx(ctx context.Context) string {
	if sid, ok := ctx.Value(CtxKeySessionID).(string); ok {
		return sid
	}
	return ""
}

func principalKindFromCtx(ctx context.Context) string {
	if kind, ok := ctx.Value(CtxKeyPrincipalKind).(string); ok {
		return kind
	}
	return ""
}
