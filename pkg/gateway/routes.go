package gateway

import "strings"

// isProtected reports whether the path falls under a protected-route
// prefix: the prefix itself or any subpath of it. "/accounting" must not
// match "/account".
func isProtected(path string, routes []string) bool {
	for _, route := range routes {
		if path == route || strings.HasPrefix(path, route+"/") {
			return true
		}
	}
	return false
}

// isAuthRoute reports whether the path is a pure-auth route (exact match
// only, mirroring the login/register pages).
func isAuthRoute(path string, routes []string) bool {
	for _, route := range routes {
		if path == route {
			return true
		}
	}
	return false
}

// defaultExempt filters paths this layer never intercepts: API routes,
// static assets, image-optimization endpoints, operational endpoints, and
// anything that looks like a file (a dot in the last path segment).
func defaultExempt(path string) bool {
	for _, prefix := range []string{"/api/", "/static/", "/assets/", "/_image/"} {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	switch path {
	case "/healthz", "/metrics", "/favicon.ico":
		return true
	}

	last := path
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		last = path[idx+1:]
	}
	return strings.Contains(last, ".")
}
