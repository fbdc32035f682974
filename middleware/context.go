package middleware

import (
	"context"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/upb/forum-api/internal/auth"
)

// Context key type to avoid collisions
type contextKey string

// PrincipalKey is the context key for the authenticated caller
const PrincipalKey contextKey = "principal"

// GetRequestIDFromContext retrieves the id set by chi's RequestID middleware
func GetRequestIDFromContext(ctx context.Context) string {
	return chimiddleware.GetReqID(ctx)
}

// GetPrincipalFromContext retrieves the authenticated caller from context
func GetPrincipalFromContext(ctx context.Context) *auth.Principal {
	if val := ctx.Value(PrincipalKey); val != nil {
		if principal, ok := val.(*auth.Principal); ok {
			return principal
		}
	}
	return nil
}

// WithPrincipal adds the authenticated caller to the context
func WithPrincipal(ctx context.Context, principal *auth.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, principal)
}
