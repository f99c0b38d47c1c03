// Package session makes the per-request authentication decision for the
// edge gateway: given a signed session cookie, is the caller authenticated
// and who are they.
//
// The package deliberately owns no session storage. Tokens are issued by
// the storefront backend during login; this layer only verifies the
// HMAC-SHA256 signature and temporal claims. Any validation failure
// degrades to an anonymous decision rather than an error, because a
// malformed cookie must never break page rendering.
package session
