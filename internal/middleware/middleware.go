// Package middleware stores global and route-specific middleware.
//
// These intercept requests to handle cross-cutting concerns: the
// security/CORS response envelope, per-client rate limiting, JWT bearer
// authentication and role checks, request logging, and panic recovery.
package middleware
