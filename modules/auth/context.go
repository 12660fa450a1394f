package auth

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated identity attached to a request after the
// bearer token has been verified and the account re-read from the store.
type Principal struct {
	ID    uuid.UUID
	Email string
	Name  string
	Role  Role
}

// IsAdmin reports whether the principal may pass the admin gate.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

type contextKey struct{}

// WithPrincipal returns a context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// PrincipalFromContext extracts the principal set by the authentication
// middleware.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
