package registry

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/echodesk/storefront-gateway/pkg/tenant"
)

// PGProvider resolves tenants directly from the registry database. It is
// used by deployments colocated with the registry, where the extra HTTP
// hop buys nothing; the wire contract is identical to the HTTP client.
type PGProvider struct {
	pool *pgxpool.Pool
}

// NewPGProvider creates a database-backed tenant provider.
func NewPGProvider(pool *pgxpool.Pool) *PGProvider {
	return &PGProvider{pool: pool}
}

const resolveQuery = `
SELECT t.id, t.schema_name, t.api_url,
       t.store_name, COALESCE(t.store_logo, ''),
       COALESCE(t.primary_color, ''), COALESCE(t.secondary_color, ''), COALESCE(t.accent_color, ''),
       t.currency, t.locale,
       t.feature_ecommerce, t.feature_wishlist, t.feature_reviews, t.feature_compare,
       COALESCE(t.contact_email, ''), COALESCE(t.contact_phone, '')
FROM tenants t
JOIN tenant_domains d ON d.tenant_id = t.id
WHERE d.domain = $1 AND t.active`

// Resolve looks up the tenant owning the hostname. Returns
// tenant.ErrTenantNotFound when no active tenant claims the domain and
// ErrUnavailable on database failures.
func (p *PGProvider) Resolve(ctx context.Context, host string) (*tenant.Config, error) {
	var cfg tenant.Config

	err := p.pool.QueryRow(ctx, resolveQuery, host).Scan(
		&cfg.ID, &cfg.Schema, &cfg.APIURL,
		&cfg.StoreName, &cfg.StoreLogo,
		&cfg.PrimaryColor, &cfg.SecondaryColor, &cfg.AccentColor,
		&cfg.Currency, &cfg.Locale,
		&cfg.Features.Ecommerce, &cfg.Features.Wishlist,
		&cfg.Features.Reviews, &cfg.Features.Compare,
		&cfg.Contact.Email, &cfg.Contact.Phone,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	cfg.NormalizeLocale()
	return &cfg, nil
}
