package controller

import "context"

type tokenKey struct{}

// ContextWithLockToken returns a context carrying the lock token of the
// session the caller is working on.
func ContextWithLockToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// ContextGetLockToken is used to retrieve the lock token from the context.
func ContextGetLockToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}
