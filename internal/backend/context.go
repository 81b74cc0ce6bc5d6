package backend

import "context"

type contextKey string

const tokenContextKey contextKey = "backendToken"

// WithToken stores the backend bearer token on the context. The session
// middleware calls this once per request; the client reads it for every
// outbound call made while handling that request.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenContextKey, token)
}

// TokenFromContext returns the bearer token for the current request, or ""
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}
