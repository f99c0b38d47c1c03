package tenant

import (
	"context"

	"golang.org/x/text/language"
)

// Features is the fixed set of storefront feature toggles a tenant can
// enable. Consumers treat a false flag as "use default behavior", never
// as an error.
type Features struct {
	Ecommerce bool `json:"ecommerce"`
	Wishlist  bool `json:"wishlist"`
	Reviews   bool `json:"reviews"`
	Compare   bool `json:"compare"`
}

// Contact holds tenant support contact details. Both fields may be blank.
type Contact struct {
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Social holds optional social profile links shown in the storefront footer.
type Social struct {
	Facebook  string `json:"facebook"`
	Instagram string `json:"instagram"`
	Twitter   string `json:"twitter"`
}

// Config is the resolved identity and presentation configuration for one
// merchant. It is immutable once resolved for a request: the middleware
// hands the same pointer to every downstream reader and nothing may
// mutate it after construction.
type Config struct {
	ID     int64  `json:"id"`
	Schema string `json:"schema"`
	APIURL string `json:"api_url"`

	StoreName string `json:"store_name"`
	StoreLogo string `json:"store_logo"`

	// Theme colors as HSL triples (e.g. "221 83% 53%") or hex values.
	// Empty string means the tenant has no override and defaults apply.
	PrimaryColor   string `json:"primary_color"`
	SecondaryColor string `json:"secondary_color"`
	AccentColor    string `json:"accent_color"`

	Currency string `json:"currency"`
	Locale   string `json:"locale"`

	Features Features `json:"features"`
	Contact  Contact  `json:"contact"`
	Social   Social   `json:"social"`
}

// NormalizeLocale canonicalizes the locale tag (e.g. "EN-us" -> "en-US").
// Unparseable tags are left as-is; a bad locale must not fail resolution.
func (c *Config) NormalizeLocale() {
	if c.Locale == "" {
		return
	}
	if tag, err := language.Parse(c.Locale); err == nil {
		c.Locale = tag.String()
	}
}

// Provider resolves the tenant configuration owning a hostname.
// Implementations must return ErrTenantNotFound when no tenant owns the
// host; any other error means the lookup itself failed (registry outage,
// malformed response) and callers decide how to degrade.
type Provider interface {
	Resolve(ctx context.Context, host string) (*Config, error)
}
