// ABOUTME: Authenticated identity propagation through request context
// ABOUTME: Provides WithIdentity/FromContext for handlers downstream of the gate

package auth

import (
	"context"
)

// Identity is the authenticated caller derived from verified token claims.
// It is the single trust boundary: once an Identity is on the context, no
// later stage re-derives it from the raw token.
type Identity struct {
	UserID int64
	Role   Role
}

// identityKey is the key type for storing Identity in context.Context.
type identityKey struct{}

// WithIdentity returns a new context with the Identity attached.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext retrieves the Identity from the context, returning nil if not present.
func FromContext(ctx context.Context) *Identity {
	val := ctx.Value(identityKey{})
	if val == nil {
		return nil
	}
	id, ok := val.(*Identity)
	if !ok {
		return nil
	}
	return id
}

// MustFromContext retrieves the Identity from the context, panicking if not
// present. Only for handlers that are guaranteed to sit behind Middleware.
func MustFromContext(ctx context.Context) *Identity {
	id := FromContext(ctx)
	if id == nil {
		panic("auth: Identity not found in context")
	}
	return id
}
