package session

import "context"

type contextKey string

const claimsKey contextKey = "session_claims"

// WithClaims attaches the decoded session to the request context.
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// FromContext returns the session claims, or nil when unauthenticated.
func FromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(claimsKey).(*Claims); ok {
		return claims
	}
	return nil
}
