// Package requestid carries a per-fetch correlation id through context.
package requestid

import (
	"context"

	"github.com/google/uuid"
)

// Header is the HTTP header the REST provider and server use for the id.
const Header = "X-Request-ID"

type ctxKey struct{}

// New returns a fresh request id.
func New() string {
	return uuid.New().String()
}

// WithID stores id in ctx.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the id stored in ctx, or "" when none is set.
func FromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Ensure returns ctx and its id, attaching a new one when ctx has none.
func Ensure(ctx context.Context) (context.Context, string) {
	if id := FromContext(ctx); id != "" {
		return ctx, id
	}
	id := New()
	return WithID(ctx, id), id
}
