package ctxutil

import "context"

// userIDKeyType is private so the key cannot collide with other packages.
type userIDKeyType struct{}

var userIDKey = userIDKeyType{}

// WithUserID injects an authenticated user id into ctx.
// Intended to be called by the auth middleware after token validation.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID extracts the user id from ctx.
// The second return value is false for anonymous requests.
func GetUserID(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	v := ctx.Value(userIDKey)
	id, ok := v.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
