// Package gateway implements the edge request interceptor of the
// multi-tenant storefront: per-request tenant resolution with TTL caching,
// authentication-gated routing, and propagation of the resolved tenant
// configuration to the upstream renderer.
//
// # Request lifecycle
//
// Every non-exempt request moves through exactly one of four terminal
// actions:
//
//   - forward with X-Tenant-* headers (resolved or bypassed host)
//   - redirect to /login?callbackUrl=... (protected route, anonymous)
//   - redirect to / (auth route, already authenticated)
//   - redirect to /store-not-found (hostname owned by no tenant)
//
// The interceptor never emits a 5xx: registry unreachability degrades to
// an unresolved tenant and a malformed session cookie to an anonymous
// caller.
//
// # Usage
//
//	client := registry.New("https://api.example.com/api/resolve-domain/")
//	verifier, _ := session.NewVerifier(secret)
//
//	mw := gateway.Middleware(client, verifier,
//		gateway.WithCacheTTL(5*time.Minute),
//		gateway.WithFallback(devConfig),
//	)
//	router.Use(mw)
package gateway
