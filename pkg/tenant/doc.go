// Package tenant defines the tenant configuration model shared by the edge
// gateway and its downstream consumers, together with the caching and
// context-propagation primitives built around it.
//
// # Architecture
//
// The package is built around three core concepts:
//
//  1. Config - the immutable per-merchant configuration record
//  2. Provider - loads a Config for a hostname from a data source
//  3. Cache - absorbs repeated lookups for a hostname within a TTL window
//
// Resolution itself is orchestrated by the gateway middleware; this package
// stays free of HTTP routing concerns so storefront services can reuse the
// model without pulling in the interceptor.
//
// # Caching
//
// Two Cache implementations ship with the package: an in-process map with
// an injectable clock (NewMemoryCache, NewMemoryCacheWithClock) and a
// Redis-backed cache (NewRedisCache) for multi-replica deployments.
// Negative resolutions are cached too, with a shorter TTL, so a newly
// registered tenant becomes reachable without waiting out a full success
// TTL.
//
// # Header propagation
//
// Headers converts a Config into the X-Tenant-* header set attached to
// forwarded requests; FromHeaders reverses the mapping for downstream
// handlers:
//
//	cfg, ok := tenant.FromHeaders(r.Header)
//	if !ok {
//		cfg = fallback // bypassed development/preview host
//	}
package tenant
