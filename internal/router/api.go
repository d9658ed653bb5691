package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hacktrack/hacktrack/internal/auth"
	"github.com/hacktrack/hacktrack/internal/handler"
	"github.com/hacktrack/hacktrack/internal/middleware"
)

// registerAPIRoutes defines the /api route table.
//
// Per-route middleware is listed in pipeline order: the rate limiter runs
// before authentication, so over-limit clients are rejected without
// paying for token verification, and role checks come last. Mutating
// routes are rate limited; reads are not. The review listing is the only
// public business route.
func registerAPIRoutes(e *echo.Echo, mw *middleware.Middlewares, h *handler.Handlers) {
	rateLimit := mw.RateLimit.Limit()
	requireAuth := echo.MiddlewareFunc(mw.Auth.RequireAuth)
	requireOrganizer := mw.Auth.RequireRole(auth.RoleOrganizer)

	api := e.Group("/api")

	// Accounts.
	authGroup := api.Group("/auth")
	authGroup.POST("/signup", handler.Handle(h.Auth.Handler, h.Auth.Signup, http.StatusCreated), rateLimit)
	authGroup.POST("/signin", handler.Handle(h.Auth.Handler, h.Auth.Signin, http.StatusOK), rateLimit)

	// Events.
	events := api.Group("/events")
	events.POST("", handler.Handle(h.Events.Handler, h.Events.Create, http.StatusCreated), rateLimit, requireAuth, requireOrganizer)
	events.GET("/me", h.Events.Me, requireAuth)
	events.GET("/userpage", h.Events.Userpage, requireAuth)
	events.GET("/userevents", h.Events.UserEvents, requireAuth)
	events.GET("/organizer", h.Events.Organizer, requireAuth, requireOrganizer)
	events.GET("/:id", h.Events.Detail, requireAuth)
	events.POST("/:id/register", handler.Handle(h.Events.Handler, h.Events.Register, http.StatusOK), rateLimit, requireAuth)

	// Reviews.
	api.POST("/feedback/userfeedback", handler.Handle(h.Reviews.Handler, h.Reviews.Submit, http.StatusOK), rateLimit, requireAuth)
	api.GET("/reviews/:eventId", h.Reviews.ListByEvent)

	// Notifications.
	api.GET("/notifications", h.Notifications.List, requireAuth)
}
