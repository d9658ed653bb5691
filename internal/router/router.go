// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hacktrack/hacktrack/internal/handler"
	"github.com/hacktrack/hacktrack/internal/middleware"
)

// Setup builds the Echo instance: global middleware in pipeline order,
// the global error handler, system routes, and the API route table.
//
// Global order matters: security headers go first so every response
// (including preflight short-circuits and errors) carries the envelope;
// request IDs exist before the context enhancer builds the request
// logger; tracing wraps everything that should appear in a transaction.
// Rate limiting and authentication are route-scoped, not global, and are
// attached in the API table with the limiter ahead of auth.
func Setup(mw *middleware.Middlewares, h *handler.Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	e.Use(mw.Security.Headers())
	e.Use(middleware.RequestID())
	e.Use(mw.Tracing.NewRelicMiddleware())
	e.Use(mw.ContextEnhancer.EnhanceContext())
	e.Use(mw.Tracing.EnhanceTracing())
	e.Use(mw.Global.RequestLogger())
	e.Use(mw.Global.Recover())

	registerSystemRoutes(e, h)
	registerAPIRoutes(e, mw, h)

	return e
}
