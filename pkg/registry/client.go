package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/echodesk/storefront-gateway/pkg/tenant"
)

// ErrUnavailable indicates the registry could not answer: network failure,
// non-2xx status other than 404, or a malformed body. Callers degrade to
// "tenant not found" but must not negative-cache the hostname, so lookups
// recover as soon as the registry does.
var ErrUnavailable = errors.New("registry unavailable")

// DefaultTimeout bounds the resolution call so a slow registry cannot
// stall request handling.
const DefaultTimeout = 3 * time.Second

// Client resolves hostnames against the central domain-resolution endpoint.
// It performs no caching of its own; callers own that concern.
type Client struct {
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
	log        *slog.Logger
}

// Option configures the registry client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Its own timeout is
// kept unless WithTimeout is also given, which wins in either order.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-call timeout. It applies after all options are
// evaluated, so it takes effect regardless of its position relative to
// WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithLogger sets the logger used for resolution failures.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a registry client for the given resolution endpoint, e.g.
// "https://api.echodesk.ge/api/resolve-domain/".
func New(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		// Copy before setting the timeout so a caller-supplied client is
		// never mutated.
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Resolve asks the registry which tenant owns the hostname. It issues a
// single GET with the hostname as a query parameter and always hits the
// network: transport-level caching is explicitly disabled because the
// caller's TTL cache is the only cache allowed in front of the registry.
//
// Returns tenant.ErrTenantNotFound when the registry answers that no
// tenant owns the host, and ErrUnavailable for outages and malformed
// responses. It never panics and never returns a raw transport error.
func (c *Client) Resolve(ctx context.Context, host string) (*tenant.Config, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: bad endpoint: %w", ErrUnavailable, err)
	}
	q := u.Query()
	q.Set("domain", host)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cache-Control", "no-store")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.ErrorContext(ctx, "registry resolution failed",
			slog.String("host", host),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		c.log.InfoContext(ctx, "no tenant registered for host",
			slog.String("host", host))
		return nil, tenant.ErrTenantNotFound
	default:
		c.log.ErrorContext(ctx, "registry returned unexpected status",
			slog.String("host", host),
			slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var cfg tenant.Config
	if err := json.NewDecoder(resp.Body).Decode(&cfg); err != nil {
		c.log.ErrorContext(ctx, "registry returned malformed body",
			slog.String("host", host),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: decode: %w", ErrUnavailable, err)
	}

	cfg.NormalizeLocale()
	return &cfg, nil
}
