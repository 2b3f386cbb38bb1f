// Package graph defines the GraphQL schema served on /graphql and the
// resolvers backing it. Resolvers delegate to the services layer; the
// request principal travels in the context and is consulted only by the
// gated user mutations.
package graph

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/gophtodo/internal/common"
	"github.com/dmitrijs2005/gophtodo/internal/logging"
	"github.com/dmitrijs2005/gophtodo/internal/server/services"
)

// Resolver is the root resolver. It holds the services every field resolver
// delegates to.
type Resolver struct {
	users  *services.UserService
	todos  *services.TodoService
	logger logging.Logger
}

// NewResolver constructs the root resolver.
func NewResolver(users *services.UserService, todos *services.TodoService, logger logging.Logger) *Resolver {
	return &Resolver{
		users:  users,
		todos:  todos,
		logger: logger.With("module", "graphql"),
	}
}

// clientErrors are surfaced to the caller verbatim; everything else is a
// server fault and must not leak.
var clientErrors = []error{
	common.ErrorConflict,
	common.ErrInvalidCredentials,
	common.ErrMissingCredentials,
	common.ErrorUnauthorized,
	common.ErrorNotFound,
}

// opError maps a service error to the one returned on the wire. Client
// errors pass through; anything else is logged and collapsed to
// common.ErrorInternal. GraphQL attaches the error to the failing field, so
// sibling operations in the same request still resolve.
func (r *Resolver) opError(ctx context.Context, op string, err error) error {
	for _, ce := range clientErrors {
		if errors.Is(err, ce) {
			return err
		}
	}
	r.logger.Error(ctx, "operation failed", "op", op, "error", err)
	return common.ErrorInternal
}
