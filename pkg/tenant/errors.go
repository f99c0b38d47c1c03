package tenant

import "errors"

var (
	// ErrTenantNotFound is returned when no tenant owns the hostname.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrNoTenantInContext is returned when no tenant is found in context.
	ErrNoTenantInContext = errors.New("no tenant in context")
)
