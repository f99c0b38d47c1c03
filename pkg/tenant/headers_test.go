package tenant_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echodesk/storefront-gateway/pkg/tenant"
)

func sampleConfig() *tenant.Config {
	return &tenant.Config{
		ID:             42,
		Schema:         "artlighthouse",
		APIURL:         "https://shop.api.example.com",
		StoreName:      "Art Lighthouse",
		StoreLogo:      "https://cdn.example.com/logo.png",
		PrimaryColor:   "221 83% 53%",
		SecondaryColor: "215 16% 47%",
		AccentColor:    "221 83% 53%",
		Currency:       "GEL",
		Locale:         "ka",
		Features: tenant.Features{
			Ecommerce: true,
			Wishlist:  true,
		},
		Contact: tenant.Contact{
			Email: "support@example.com",
			Phone: "+995 555 123456",
		},
	}
}

func TestHeaders(t *testing.T) {
	t.Parallel()

	t.Run("propagates all fields", func(t *testing.T) {
		t.Parallel()

		h := tenant.Headers(sampleConfig())

		assert.Equal(t, "42", h.Get(tenant.HeaderID))
		assert.Equal(t, "artlighthouse", h.Get(tenant.HeaderSchema))
		assert.Equal(t, "https://shop.api.example.com", h.Get(tenant.HeaderAPIURL))
		assert.Equal(t, "Art Lighthouse", h.Get(tenant.HeaderStoreName))
		assert.Equal(t, "GEL", h.Get(tenant.HeaderCurrency))
		assert.Equal(t, "ka", h.Get(tenant.HeaderLocale))
		assert.Equal(t, "support@example.com", h.Get(tenant.HeaderContactEmail))
		assert.JSONEq(t,
			`{"ecommerce":true,"wishlist":true,"reviews":false,"compare":false}`,
			h.Get(tenant.HeaderFeatures))
	})

	t.Run("absent optional fields become empty strings", func(t *testing.T) {
		t.Parallel()

		cfg := sampleConfig()
		cfg.StoreLogo = ""
		cfg.PrimaryColor = ""

		h := tenant.Headers(cfg)

		// The header must exist with an empty value, never the string "null".
		_, present := h[tenant.HeaderStoreLogo]
		assert.True(t, present)
		assert.Equal(t, "", h.Get(tenant.HeaderStoreLogo))
		assert.Equal(t, "", h.Get(tenant.HeaderPrimaryColor))
	})

	t.Run("nil config yields empty header set", func(t *testing.T) {
		t.Parallel()

		h := tenant.Headers(nil)
		assert.Empty(t, h)
	})
}

func TestStripHeaders(t *testing.T) {
	t.Parallel()

	h := tenant.Headers(sampleConfig())
	h.Set("X-Request-Id", "req-1")
	h.Set("Accept", "application/json")

	tenant.StripHeaders(h)

	for name := range h {
		assert.NotContains(t, name, "X-Tenant-")
	}
	assert.Equal(t, "req-1", h.Get("X-Request-Id"))
	assert.Equal(t, "application/json", h.Get("Accept"))
	assert.False(t, tenant.IsMultiTenant(h))
}

func TestFromHeaders(t *testing.T) {
	t.Parallel()

	t.Run("round trips a full config", func(t *testing.T) {
		t.Parallel()

		original := sampleConfig()
		parsed, ok := tenant.FromHeaders(tenant.Headers(original))
		require.True(t, ok)

		// Social links do not travel over headers; everything else must.
		expected := *original
		expected.Social = tenant.Social{}
		assert.Equal(t, &expected, parsed)
	})

	t.Run("no identity header means no tenant", func(t *testing.T) {
		t.Parallel()

		_, ok := tenant.FromHeaders(http.Header{})
		assert.False(t, ok)
	})

	t.Run("non-numeric id means no tenant", func(t *testing.T) {
		t.Parallel()

		h := http.Header{}
		h.Set(tenant.HeaderID, "forty-two")
		_, ok := tenant.FromHeaders(h)
		assert.False(t, ok)
	})

	t.Run("corrupt features blob leaves flags at zero", func(t *testing.T) {
		t.Parallel()

		h := tenant.Headers(sampleConfig())
		h.Set(tenant.HeaderFeatures, "{not json")

		parsed, ok := tenant.FromHeaders(h)
		require.True(t, ok)
		assert.Equal(t, tenant.Features{}, parsed.Features)
	})
}

func TestIsMultiTenant(t *testing.T) {
	t.Parallel()

	assert.True(t, tenant.IsMultiTenant(tenant.Headers(sampleConfig())))
	assert.False(t, tenant.IsMultiTenant(http.Header{}))
}
