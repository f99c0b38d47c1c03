// Package registry implements tenant.Provider against the central
// domain-resolution service, either over HTTP (Client) or directly against
// the registry database (PGProvider).
//
// Both providers share the same failure taxonomy: tenant.ErrTenantNotFound
// means the hostname is genuinely unowned and may be negative-cached;
// ErrUnavailable means the lookup itself failed and the caller should
// degrade without caching, so resolution recovers the moment the registry
// does.
package registry
