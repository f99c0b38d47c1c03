package gateway

import (
	"errors"
	"log/slog"
	"net/http"
	"net/url"

	"golang.org/x/sync/singleflight"

	"github.com/echodesk/storefront-gateway/pkg/bypass"
	"github.com/echodesk/storefront-gateway/pkg/session"
	"github.com/echodesk/storefront-gateway/pkg/tenant"
)

// Middleware creates the edge interceptor: for every non-exempt request it
// resolves the owning tenant from the Host header (cache first, registry
// on miss), decides the route disposition, and forwards allowed requests
// with the tenant configuration attached as X-Tenant-* headers and request
// context.
//
// Exactly one terminal action applies per request: forward with headers,
// redirect to login, redirect home, or redirect to the store-not-found
// page. No failure inside this layer surfaces as a 5xx; registry outages
// degrade to an unresolved tenant and malformed sessions to anonymous.
func Middleware(provider tenant.Provider, auth AuthDecider, opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{
		cache:           tenant.NewMemoryCache(),
		cacheTTL:        DefaultCacheTTL,
		negativeTTL:     DefaultNegativeTTL,
		bypass:          bypass.NewMatcher(bypass.DefaultRules()),
		exempt:          defaultExempt,
		protectedRoutes: DefaultProtectedRoutes,
		authRoutes:      DefaultAuthRoutes,
		loginPath:       DefaultLoginPath,
		homePath:        DefaultHomePath,
		notFoundPath:    DefaultNotFoundPath,
		log:             slog.Default(),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	i := &interceptor{config: cfg, provider: provider, auth: auth}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			i.serve(w, r, next)
		})
	}
}

type interceptor struct {
	*config
	provider tenant.Provider
	auth     AuthDecider
	sf       singleflight.Group
}

func (i *interceptor) serve(w http.ResponseWriter, r *http.Request, next http.Handler) {
	path := r.URL.Path

	// Static assets and API routes are not this layer's business.
	if i.exempt(path) {
		next.ServeHTTP(w, r)
		return
	}

	// Tenant identity must originate here, never from the client. Inbound
	// X-Tenant-* headers are dropped on every path, including forwards
	// that attach no configuration.
	tenant.StripHeaders(r.Header)

	var resolved *tenant.Config

	if i.bypass.Match(r.Host) {
		// Dev and preview hosts have no registered domain; serve them
		// with the statically configured fallback.
		i.metrics.resolution(OutcomeBypass)
		resolved = i.fallback
	} else {
		resolved = i.resolve(r)

		if resolved == nil {
			if path == i.notFoundPath {
				// Already on the explanatory page; redirecting again
				// would loop forever.
				next.ServeHTTP(w, r)
				return
			}
			i.metrics.redirect(RedirectNotFound)
			http.Redirect(w, r, i.notFoundPath, http.StatusTemporaryRedirect)
			return
		}
	}

	decision := i.auth.Decide(r)

	if isProtected(path, i.protectedRoutes) && !decision.Authenticated {
		i.metrics.redirect(RedirectLogin)
		target := i.loginPath + "?callbackUrl=" + url.QueryEscape(path)
		http.Redirect(w, r, target, http.StatusTemporaryRedirect)
		return
	}

	if isAuthRoute(path, i.authRoutes) && decision.Authenticated {
		i.metrics.redirect(RedirectHome)
		http.Redirect(w, r, i.homePath, http.StatusTemporaryRedirect)
		return
	}

	ctx := r.Context()
	if resolved != nil {
		for name, values := range tenant.Headers(resolved) {
			r.Header[name] = values
		}
		ctx = tenant.WithConfig(ctx, resolved)
	}
	if decision.Authenticated {
		ctx = session.WithIdentity(ctx, decision.Identity)
	}

	next.ServeHTTP(w, r.WithContext(ctx))
}

// resolve returns the tenant owning the request's hostname, or nil when it
// is unresolved. The cache absorbs repeated lookups; concurrent misses for
// the same host are coalesced into a single registry call.
func (i *interceptor) resolve(r *http.Request) *tenant.Config {
	host := r.Host

	if cached, ok := i.cache.Get(r.Context(), host); ok {
		if cached == nil {
			i.metrics.resolution(OutcomeNegativeHit)
			return nil
		}
		i.metrics.resolution(OutcomeCacheHit)
		return cached
	}

	v, err, _ := i.sf.Do(host, func() (any, error) {
		cfg, err := i.provider.Resolve(r.Context(), host)
		if err == nil {
			i.cache.Set(r.Context(), host, cfg, i.cacheTTL)
			return cfg, nil
		}
		if errors.Is(err, tenant.ErrTenantNotFound) {
			// Genuinely unowned hosts are negative-cached briefly;
			// outages are not cached at all so resolution recovers the
			// moment the registry does.
			i.cache.SetNegative(r.Context(), host, i.negativeTTL)
		}
		return nil, err
	})
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			i.metrics.resolution(OutcomeNotFound)
		} else {
			i.metrics.resolution(OutcomeError)
			i.log.ErrorContext(r.Context(), "tenant resolution degraded to unresolved",
				slog.String("host", host),
				slog.String("error", err.Error()))
		}
		return nil
	}

	i.metrics.resolution(OutcomeResolved)
	cfg, _ := v.(*tenant.Config)
	return cfg
}
