package gateway

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/echodesk/storefront-gateway/pkg/bypass"
	"github.com/echodesk/storefront-gateway/pkg/session"
	"github.com/echodesk/storefront-gateway/pkg/tenant"
)

// AuthDecider makes the per-request authentication decision. Satisfied by
// *session.Verifier.
type AuthDecider interface {
	Decide(r *http.Request) session.Decision
}

// Default TTLs for cached resolutions. Negative entries expire sooner so a
// newly registered tenant becomes reachable without waiting out the full
// success window.
const (
	DefaultCacheTTL    = 5 * time.Minute
	DefaultNegativeTTL = 30 * time.Second
)

// Redirect targets and gated route sets. The storefront's account area and
// checkout require an authenticated session; login and register bounce
// already-authenticated users back home.
var (
	DefaultLoginPath    = "/login"
	DefaultHomePath     = "/"
	DefaultNotFoundPath = "/store-not-found"

	DefaultProtectedRoutes = []string{"/account", "/checkout"}
	DefaultAuthRoutes      = []string{"/login", "/register"}
)

// config holds middleware configuration.
type config struct {
	cache       tenant.Cache
	cacheTTL    time.Duration
	negativeTTL time.Duration

	bypass   *bypass.Matcher
	fallback *tenant.Config

	exempt func(path string) bool

	protectedRoutes []string
	authRoutes      []string
	loginPath       string
	homePath        string
	notFoundPath    string

	metrics *Metrics
	log     *slog.Logger
}

// Option configures the middleware.
type Option func(*config)

// WithCache sets a custom cache implementation.
func WithCache(cache tenant.Cache) Option {
	return func(c *config) {
		if cache != nil {
			c.cache = cache
		}
	}
}

// WithCacheTTL sets the TTL for successful resolutions.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithNegativeTTL sets the TTL for cached not-found resolutions.
func WithNegativeTTL(ttl time.Duration) Option {
	return func(c *config) {
		if ttl > 0 {
			c.negativeTTL = ttl
		}
	}
}

// WithBypassRules replaces the default bypass rule set.
func WithBypassRules(rules []bypass.Rule) Option {
	return func(c *config) {
		c.bypass = bypass.NewMatcher(rules)
	}
}

// WithFallback sets the static tenant configuration used for bypassed
// hosts. Without a fallback, bypassed requests are forwarded without
// tenant headers and downstream consumers apply their own defaults.
func WithFallback(cfg *tenant.Config) Option {
	return func(c *config) {
		c.fallback = cfg
	}
}

// WithExemptFunc replaces the default exempt-path filter (static assets,
// API routes, dotted paths).
func WithExemptFunc(fn func(path string) bool) Option {
	return func(c *config) {
		if fn != nil {
			c.exempt = fn
		}
	}
}

// WithProtectedRoutes replaces the route prefixes that require an
// authenticated session.
func WithProtectedRoutes(routes []string) Option {
	return func(c *config) {
		c.protectedRoutes = routes
	}
}

// WithAuthRoutes replaces the routes that redirect authenticated users home.
func WithAuthRoutes(routes []string) Option {
	return func(c *config) {
		c.authRoutes = routes
	}
}

// WithMetrics enables Prometheus instrumentation of resolution outcomes
// and redirects.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithLogger sets the logger for resolution failures and redirects.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}
