package service

import (
	"context"

	"github.com/jmcarb/clienthub/internal/auth/principal"
)

// PrincipalResolver extracts the calling identity from a request context.
// The access token was verified upstream; the resolver only reads the
// already-trusted claims.
type PrincipalResolver interface {
	Resolve(ctx context.Context) (principal.Principal, bool)
}

// ContextResolver resolves the principal attached to the context by the
// transport layer's token verification.
type ContextResolver struct{}

func (ContextResolver) Resolve(ctx context.Context) (principal.Principal, bool) {
	return principal.FromContext(ctx)
}
