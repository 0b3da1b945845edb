package auth

import "context"

type ctxKey struct{}

// ContextWithIdentity stores the authenticated caller on the request
// context.
func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the caller identity; ok is false when the
// request never passed authentication.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}
