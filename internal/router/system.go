package router

import (
	"github.com/labstack/echo/v4"

	"github.com/hacktrack/hacktrack/internal/handler"
)

// registerSystemRoutes registers endpoints that are not business logic:
// health status, the docs UI, and the static assets it loads.
func registerSystemRoutes(e *echo.Echo, h *handler.Handlers) {
	// Health status endpoint (used by load balancers and monitors).
	e.GET("/status", h.Health.CheckHealth)

	// Serve all files from ./static at /static/* (openapi.json and
	// friends).
	e.Static("/static", "static")

	// Docs UI endpoint (serves openapi.html).
	e.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
