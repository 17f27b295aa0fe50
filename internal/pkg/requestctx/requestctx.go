// Package requestctx carries request scoped identity through context.Context.
package requestctx

import (
	"context"

	"github.com/google/uuid"
)

type ctxKey int

const userIDKey ctxKey = iota

func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// UserID returns the authenticated user, or nil for anonymous requests.
func UserID(ctx context.Context) *uuid.UUID {
	if id, ok := ctx.Value(userIDKey).(uuid.UUID); ok && id != uuid.Nil {
		return &id
	}
	return nil
}
