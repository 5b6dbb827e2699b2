package common

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type contextKey string

// UserIDKey holds the authenticated caller's id in the request context. It
// is set by the auth middleware once the session token verifies.
const UserIDKey contextKey = "user_id"

// storeTimeout bounds every store call made on behalf of a single request.
// The legacy service had no timeouts at all; this is the hardening layer.
const storeTimeout = 5 * time.Second

// GetUserIDFromContext extracts the acting user's id from the request
// context.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// WithUserID returns a context carrying the acting user's id.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// StoreContext derives a bounded context for store calls.
func StoreContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}
