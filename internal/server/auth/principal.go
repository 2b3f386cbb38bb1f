package auth

import (
	"context"

	"github.com/dmitrijs2005/gophtodo/internal/common"
)

// Principal is the per-request identity derived once from a verified
// session token. The zero value is the anonymous principal. It is built
// before any resolver runs and never mutated afterwards.
type Principal struct {
	UserID string
	Role   string
}

// Authenticated reports whether the principal carries a verified identity.
func (p Principal) Authenticated() bool {
	return p.UserID != ""
}

// RequireRole is the gate consulted by privileged mutations: nil iff the
// principal is authenticated and holds exactly the given role. Mutations
// must call it before touching the store.
func RequireRole(p Principal, role string) error {
	if !p.Authenticated() || p.Role != role {
		return common.ErrorUnauthorized
	}
	return nil
}

type ctxKey string

const principalKey ctxKey = "principal"

// WithPrincipal returns a child context carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext returns the request principal, or the anonymous
// principal when none was attached.
func PrincipalFromContext(ctx context.Context) Principal {
	if p, ok := ctx.Value(principalKey).(Principal); ok {
		return p
	}
	return Principal{}
}
