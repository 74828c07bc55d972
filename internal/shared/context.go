package shared

import "context"

// Claims is the identity payload carried inside a session token.
type Claims struct {
	UserID   int64
	Username string
	Role     Role
}

type claimsContextKey struct{}

// ContextWithClaims stores validated token claims in context.
func ContextWithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey{}, claims)
}

// ClaimsFromContext extracts token claims from context.
func ClaimsFromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(Claims)
	return claims, ok
}
