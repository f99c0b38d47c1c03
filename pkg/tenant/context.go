package tenant

import (
	"context"
	"log/slog"
	"strconv"
)

// contextKey prevents collisions with other packages using context values
type contextKey struct{}

func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, contextKey{}, cfg)
}

func FromContext(ctx context.Context) (*Config, bool) {
	cfg, ok := ctx.Value(contextKey{}).(*Config)
	return cfg, ok && cfg != nil
}

// IDFromContext provides fast access to the tenant ID without exposing the
// full configuration.
func IDFromContext(ctx context.Context) (int64, bool) {
	cfg, ok := FromContext(ctx)
	if !ok {
		return 0, false
	}
	return cfg.ID, true
}

// MustFromContext panics if no tenant is found. Use only in handlers that
// cannot function without a resolved tenant.
func MustFromContext(ctx context.Context) *Config {
	cfg, ok := FromContext(ctx)
	if !ok {
		panic("tenant: no tenant in context")
	}
	return cfg
}

// LoggerExtractor returns a function that enriches log records with the
// tenant ID of the current request.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := IDFromContext(ctx); ok {
			return slog.String("tenant_id", strconv.FormatInt(id, 10)), true
		}
		return slog.Attr{}, false
	}
}
