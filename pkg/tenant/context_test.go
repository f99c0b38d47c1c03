package tenant_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echodesk/storefront-gateway/pkg/tenant"
)

func TestContext(t *testing.T) {
	t.Parallel()

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		cfg := &tenant.Config{ID: 42}
		ctx := tenant.WithConfig(context.Background(), cfg)

		got, ok := tenant.FromContext(ctx)
		require.True(t, ok)
		assert.Same(t, cfg, got)

		id, ok := tenant.IDFromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, int64(42), id)
	})

	t.Run("empty context", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.FromContext(context.Background())
		assert.False(t, ok)

		_, ok = tenant.IDFromContext(context.Background())
		assert.False(t, ok)
	})

	t.Run("nil config is treated as absent", func(t *testing.T) {
		t.Parallel()

		ctx := tenant.WithConfig(context.Background(), nil)
		_, ok := tenant.FromContext(ctx)
		assert.False(t, ok)
	})

	t.Run("must panics without tenant", func(t *testing.T) {
		t.Parallel()

		assert.Panics(t, func() {
			tenant.MustFromContext(context.Background())
		})
	})

	t.Run("logger extractor", func(t *testing.T) {
		t.Parallel()

		extract := tenant.LoggerExtractor()

		attr, ok := extract(tenant.WithConfig(context.Background(), &tenant.Config{ID: 7}))
		require.True(t, ok)
		assert.Equal(t, "tenant_id", attr.Key)
		assert.Equal(t, "7", attr.Value.String())

		_, ok = extract(context.Background())
		assert.False(t, ok)
	})
}

func TestNormalizeLocale(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"canonicalizes case", "EN-us", "en-US"},
		{"plain language kept", "ka", "ka"},
		{"empty kept", "", ""},
		{"garbage kept as-is", "!!invalid!!", "!!invalid!!"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := &tenant.Config{Locale: tt.in}
			cfg.NormalizeLocale()
			assert.Equal(t, tt.want, cfg.Locale)
		})
	}
}
