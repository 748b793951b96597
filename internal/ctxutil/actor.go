// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// UserKey is the context key for the acting user's ID.
// Exported so it can be used consistently across packages.
type UserKey struct{}

// WithUserID returns a context with the acting user's ID embedded.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, UserKey{}, userID)
}

// UserFromContext returns the acting user's ID, or 0 and false if not set.
func UserFromContext(ctx context.Context) (int64, bool) {
	if v, ok := ctx.Value(UserKey{}).(int64); ok && v > 0 {
		return v, true
	}
	return 0, false
}
