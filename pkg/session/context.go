package session

import (
	"context"
	"log/slog"
)

// contextKey prevents collisions with other packages using context values
type contextKey struct{}

func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, identity)
}

func FromContext(ctx context.Context) (*Identity, bool) {
	identity, ok := ctx.Value(contextKey{}).(*Identity)
	return identity, ok && identity != nil
}

// IsAuthenticated reports whether the request carries a verified identity.
func IsAuthenticated(ctx context.Context) bool {
	_, ok := FromContext(ctx)
	return ok
}

// LoggerExtractor returns a function that enriches log records with the
// authenticated user ID.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if identity, ok := FromContext(ctx); ok {
			return slog.String("user_id", identity.UserID), true
		}
		return slog.Attr{}, false
	}
}
