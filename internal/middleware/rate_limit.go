package middleware

import (
	"math"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hacktrack/hacktrack/internal/errs"
	"github.com/hacktrack/hacktrack/internal/ratelimit"
	"github.com/hacktrack/hacktrack/internal/server"
)

// RateLimitMiddleware enforces the fixed-window limiter on the routes it
// is attached to and exposes the limiter state through response headers.
type RateLimitMiddleware struct {
	server *server.Server
}

// NewRateLimitMiddleware constructs a RateLimitMiddleware. The store itself
// lives on the server container so every route shares one window state.
func NewRateLimitMiddleware(s *server.Server) *RateLimitMiddleware {
	return &RateLimitMiddleware{
		server: s,
	}
}

// Limit returns an Echo middleware that consults the shared limiter store
// for the requesting client.
//
// Every response from a limited route carries X-RateLimit-Limit,
// X-RateLimit-Remaining, and X-RateLimit-Reset (ISO timestamp). When the
// client is over its cap the request is rejected with 429 and a
// Retry-After header holding the whole seconds until the window resets,
// rounded up so clients never retry early.
func (rl *RateLimitMiddleware) Limit() echo.MiddlewareFunc {
	store := rl.server.RateLimit

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			now := time.Now()
			decision := store.Check(ratelimit.ClientIP(c.Request()), now)

			h := c.Response().Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(store.MaxRequests()))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			h.Set("X-RateLimit-Reset", decision.ResetTime.UTC().Format(time.RFC3339))

			if decision.Limited {
				retryAfter := int(math.Ceil(decision.ResetTime.Sub(now).Seconds()))
				if retryAfter < 1 {
					retryAfter = 1
				}
				h.Set("Retry-After", strconv.Itoa(retryAfter))

				rl.RecordRateLimitHit(c.Path())

				return errs.NewTooManyRequestsError("Too many requests, please try again later")
			}

			return next(c)
		}
	}
}

// RecordRateLimitHit emits a New Relic custom event for a rejected request,
// so limited endpoints can be charted. No-op when APM is disabled.
func (rl *RateLimitMiddleware) RecordRateLimitHit(endpoint string) {
	if rl.server.LoggerService != nil && rl.server.LoggerService.GetApplication() != nil {
		rl.server.LoggerService.GetApplication().RecordCustomEvent("RateLimitHit", map[string]interface{}{
			"endpoint": endpoint,
		})
	}
}
