package auth

import (
	"context"
)

// contextKey is a custom type for context keys, preventing collisions with
// keys defined in other packages.
type contextKey string

const userContextKey contextKey = "session_user"

// NewContextWithUser returns a child context carrying the session user.
func NewContextWithUser(ctx context.Context, user *SessionUser) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the session user from the context. The second
// return value reports whether a user was present.
func UserFromContext(ctx context.Context) (*SessionUser, bool) {
	user, ok := ctx.Value(userContextKey).(*SessionUser)
	return user, ok && user != nil
}
