// Package principal carries the identity of an authenticated caller through
// a context.Context, the way a verified access token's claims would be
// attached by a transport layer.
package principal

import "context"

type contextKey struct{}

// Principal identifies an authenticated account.
type Principal struct {
	AccountID string
	Email     string
	Roles     []string
}

// WithContext returns a copy of ctx carrying p.
func WithContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext extracts the Principal from ctx, if present.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
