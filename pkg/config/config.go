package config

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/echodesk/storefront-gateway/pkg/tenant"
)

// ErrParsingConfig wraps environment parsing failures.
var ErrParsingConfig = errors.New("config: failed to parse environment")

// Config is the full gateway configuration, loaded from environment
// variables with optional .env file support.
type Config struct {
	App      App
	Registry Registry
	Cache    Cache
	Session  Session
	Fallback Fallback
	Bypass   Bypass
}

// App covers process-level settings.
type App struct {
	Env         string `env:"APP_ENV" envDefault:"development"`
	ListenAddr  string `env:"LISTEN_ADDR" envDefault:":8080"`
	UpstreamURL string `env:"UPSTREAM_URL,required,notEmpty"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"LOG_FORMAT" envDefault:"json"`
}

// Registry points the gateway at the central domain-resolution service.
// When DatabaseURL is set, the gateway queries the registry database
// directly instead of the HTTP endpoint.
type Registry struct {
	Endpoint    string        `env:"REGISTRY_ENDPOINT" envDefault:"https://api.echodesk.ge/api/resolve-domain/"`
	Timeout     time.Duration `env:"REGISTRY_TIMEOUT" envDefault:"3s"`
	DatabaseURL string        `env:"REGISTRY_DATABASE_URL"`
}

// Cache controls tenant resolution caching. RedisURL switches from the
// in-process cache to a shared Redis cache.
type Cache struct {
	TTL         time.Duration `env:"TENANT_CACHE_TTL" envDefault:"5m"`
	NegativeTTL time.Duration `env:"TENANT_CACHE_NEGATIVE_TTL" envDefault:"30s"`
	RedisURL    string        `env:"REDIS_URL"`
	RedisPrefix string        `env:"REDIS_PREFIX" envDefault:"tenant"`
}

// Session configures verification of the signed session cookie.
type Session struct {
	SigningKey string `env:"SESSION_SIGNING_KEY,required,notEmpty"`
	CookieName string `env:"SESSION_COOKIE_NAME" envDefault:"storefront_session"`
}

// Fallback is the static tenant configuration served to bypassed hosts
// (local development, preview deployments). It is only applied when
// FALLBACK_TENANT_ID is set; otherwise bypassed requests are forwarded
// without tenant headers and downstream consumers use their own defaults.
type Fallback struct {
	TenantID       int64  `env:"FALLBACK_TENANT_ID"`
	Schema         string `env:"FALLBACK_TENANT_SCHEMA"`
	APIURL         string `env:"FALLBACK_API_URL" envDefault:"https://demo.api.echodesk.ge"`
	StoreName      string `env:"FALLBACK_STORE_NAME" envDefault:"My Store"`
	StoreLogo      string `env:"FALLBACK_STORE_LOGO"`
	PrimaryColor   string `env:"FALLBACK_PRIMARY_COLOR" envDefault:"221 83% 53%"`
	SecondaryColor string `env:"FALLBACK_SECONDARY_COLOR" envDefault:"215 16% 47%"`
	AccentColor    string `env:"FALLBACK_ACCENT_COLOR" envDefault:"221 83% 53%"`
	Currency       string `env:"FALLBACK_CURRENCY" envDefault:"GEL"`
	Locale         string `env:"FALLBACK_LOCALE" envDefault:"en"`
	ContactEmail   string `env:"FALLBACK_CONTACT_EMAIL"`
	ContactPhone   string `env:"FALLBACK_CONTACT_PHONE"`
	EnableWishlist bool   `env:"FALLBACK_ENABLE_WISHLIST"`
	EnableReviews  bool   `env:"FALLBACK_ENABLE_REVIEWS"`
	EnableCompare  bool   `env:"FALLBACK_ENABLE_COMPARE"`
}

// Bypass optionally extends the built-in bypass rules from a YAML file.
type Bypass struct {
	RulesFile string `env:"BYPASS_RULES_FILE"`
}

// TenantConfig converts the fallback settings into a tenant configuration,
// or nil when no fallback tenant is configured.
func (f Fallback) TenantConfig() *tenant.Config {
	if f.TenantID == 0 {
		return nil
	}
	return &tenant.Config{
		ID:             f.TenantID,
		Schema:         f.Schema,
		APIURL:         f.APIURL,
		StoreName:      f.StoreName,
		StoreLogo:      f.StoreLogo,
		PrimaryColor:   f.PrimaryColor,
		SecondaryColor: f.SecondaryColor,
		AccentColor:    f.AccentColor,
		Currency:       f.Currency,
		Locale:         f.Locale,
		Features: tenant.Features{
			Ecommerce: true,
			Wishlist:  f.EnableWishlist,
			Reviews:   f.EnableReviews,
			Compare:   f.EnableCompare,
		},
		Contact: tenant.Contact{
			Email: f.ContactEmail,
			Phone: f.ContactPhone,
		},
	}
}

var defaultEnvLoaded sync.Once

// Load parses the gateway configuration from the environment. The default
// .env file is loaded once per process; a missing file is not an error.
func Load() (Config, error) {
	defaultEnvLoaded.Do(func() {
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrParsingConfig, err)
	}
	return cfg, nil
}

// MustLoad works like Load but panics on failure. Used at startup where a
// broken configuration should prevent the process from serving at all.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load required configuration: %v", err))
	}
	return cfg
}
