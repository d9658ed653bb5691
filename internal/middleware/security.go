package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/hacktrack/hacktrack/internal/server"
)

// SecurityMiddleware applies the uniform security/CORS header set to every
// response and short-circuits CORS preflight requests.
type SecurityMiddleware struct {
	server *server.Server
}

// NewSecurityMiddleware constructs a SecurityMiddleware.
func NewSecurityMiddleware(s *server.Server) *SecurityMiddleware {
	return &SecurityMiddleware{
		server: s,
	}
}

// Headers returns an Echo middleware that sets the response envelope
// headers before the handler runs.
//
// The set is applied on every response, including preflight and error
// responses: the headers are written up front, and the global error
// handler writes only the body, so a 401/429/500 still carries them.
//
// OPTIONS requests are answered immediately with an empty 200 so browsers
// get their preflight without touching rate limiting or auth.
func (sec *SecurityMiddleware) Headers() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()

			h.Set("Access-Control-Allow-Origin", sec.allowedOrigin(c.Request()))
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("Referrer-Policy", "no-referrer")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=()")
			h.Set("Cache-Control", "no-store")
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'; base-uri 'none'")

			if c.Request().Method == http.MethodOptions {
				return c.NoContent(http.StatusOK)
			}

			return next(c)
		}
	}
}

// allowedOrigin picks the Access-Control-Allow-Origin value for a request.
//
// When the request Origin is on the configured allowlist it is echoed back
// (required for Allow-Credentials to work with multiple origins); otherwise
// the first configured origin is used. A "*" entry allows any origin.
func (sec *SecurityMiddleware) allowedOrigin(r *http.Request) string {
	origins := sec.server.Config.Server.CORSAllowedOrigins
	if len(origins) == 0 {
		return "*"
	}

	requestOrigin := r.Header.Get("Origin")
	if requestOrigin != "" {
		for _, o := range origins {
			if o == "*" || strings.EqualFold(o, requestOrigin) {
				return requestOrigin
			}
		}
	}

	return origins[0]
}
