// Command gateway is the multi-tenant storefront edge gateway: it resolves
// the owning tenant for every inbound hostname, enforces auth-gated
// routing, and proxies allowed requests to the upstream renderer with the
// tenant configuration attached as X-Tenant-* headers.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/echodesk/storefront-gateway/pkg/bypass"
	"github.com/echodesk/storefront-gateway/pkg/config"
	"github.com/echodesk/storefront-gateway/pkg/gateway"
	"github.com/echodesk/storefront-gateway/pkg/httpserver"
	"github.com/echodesk/storefront-gateway/pkg/logger"
	"github.com/echodesk/storefront-gateway/pkg/registry"
	"github.com/echodesk/storefront-gateway/pkg/requestid"
	"github.com/echodesk/storefront-gateway/pkg/session"
	"github.com/echodesk/storefront-gateway/pkg/tenant"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("gateway exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.MustLoad()

	log := logger.New(
		logger.WithLevelName(cfg.App.LogLevel),
		logger.WithFormat(logger.Format(cfg.App.LogFormat)),
		logger.WithAttr(
			slog.String("service", "storefront-gateway"),
			slog.String("env", cfg.App.Env),
		),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
			session.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	provider, cleanup, err := newProvider(ctx, cfg.Registry, log)
	if err != nil {
		return err
	}
	defer cleanup()

	cache, err := newCache(cfg.Cache)
	if err != nil {
		return err
	}

	rules := bypass.DefaultRules()
	if cfg.Bypass.RulesFile != "" {
		extra, err := bypass.LoadRules(cfg.Bypass.RulesFile)
		if err != nil {
			return err
		}
		rules = append(rules, extra...)
	}

	verifier, err := session.NewVerifier(cfg.Session.SigningKey,
		session.WithCookieName(cfg.Session.CookieName))
	if err != nil {
		return err
	}

	upstream, err := url.Parse(cfg.App.UpstreamURL)
	if err != nil {
		return err
	}
	proxy := httputil.NewSingleHostReverseProxy(upstream)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.ErrorContext(r.Context(), "upstream renderer unreachable",
			slog.String("error", err.Error()))
		w.WriteHeader(http.StatusBadGateway)
	}

	interceptor := gateway.Middleware(provider, verifier,
		gateway.WithCache(cache),
		gateway.WithCacheTTL(cfg.Cache.TTL),
		gateway.WithNegativeTTL(cfg.Cache.NegativeTTL),
		gateway.WithBypassRules(rules),
		gateway.WithFallback(cfg.Fallback.TenantConfig()),
		gateway.WithMetrics(gateway.NewMetrics(nil)),
		gateway.WithLogger(log),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(interceptor)
	r.Get("/healthz", httpserver.HealthCheckHandler(ctx, log))
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/*", proxy)

	srv := httpserver.New(
		httpserver.WithAddr(cfg.App.ListenAddr),
		httpserver.WithLogger(log),
	)
	return srv.Run(ctx, r)
}

// newProvider picks the registry access mode: direct database access when
// a registry DSN is configured, the HTTP resolution endpoint otherwise.
func newProvider(ctx context.Context, cfg config.Registry, log *slog.Logger) (tenant.Provider, func(), error) {
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return registry.NewPGProvider(pool), pool.Close, nil
	}

	client := registry.New(cfg.Endpoint,
		registry.WithTimeout(cfg.Timeout),
		registry.WithLogger(log),
	)
	return client, func() {}, nil
}

// newCache picks the resolution cache: shared Redis when configured, the
// in-process map otherwise.
func newCache(cfg config.Cache) (tenant.Cache, error) {
	if cfg.RedisURL == "" {
		return tenant.NewMemoryCache(), nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return tenant.NewRedisCache(redis.NewClient(opts), cfg.RedisPrefix), nil
}
