package middleware

import (
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/hacktrack/hacktrack/internal/server"
)

// Middlewares is a lightweight container that groups all middleware
// components used by the HTTP server, wired once with the shared app
// dependencies and reused during router setup.
type Middlewares struct {
	// Global holds request logging, panic recovery, and the global error
	// handler.
	Global *GlobalMiddlewares

	// Security applies the uniform security/CORS response headers and
	// answers preflight requests.
	Security *SecurityMiddleware

	// RateLimit enforces the shared fixed-window limiter on selected
	// routes.
	RateLimit *RateLimitMiddleware

	// Auth verifies bearer tokens and enforces role requirements.
	Auth *AuthMiddleware

	// ContextEnhancer enriches each request with a request-scoped logger
	// (request_id, method, path, ip, optional user and trace metadata).
	ContextEnhancer *ContextEnhancer

	// Tracing provides the New Relic middleware plus transaction
	// attribute/error enrichment.
	Tracing *TracingMiddleware
}

// NewMiddlewares constructs all middleware components. The New Relic
// application instance, when configured, is extracted from the server's
// LoggerService and handed to the tracing middleware; otherwise tracing
// degrades to a no-op.
func NewMiddlewares(s *server.Server) *Middlewares {
	var nrApp *newrelic.Application
	if s.LoggerService != nil {
		nrApp = s.LoggerService.GetApplication()
	}

	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		Security:        NewSecurityMiddleware(s),
		RateLimit:       NewRateLimitMiddleware(s),
		Auth:            NewAuthMiddleware(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, nrApp),
	}
}
