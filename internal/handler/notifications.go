package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hacktrack/hacktrack/internal/errs"
	"github.com/hacktrack/hacktrack/internal/middleware"
	"github.com/hacktrack/hacktrack/internal/server"
	"github.com/hacktrack/hacktrack/internal/service"
)

// NotificationsHandler serves the authenticated user's notification feed.
type NotificationsHandler struct {
	Handler
	notifications *service.NotificationsService
}

func NewNotificationsHandler(s *server.Server, notifications *service.NotificationsService) *NotificationsHandler {
	return &NotificationsHandler{
		Handler:       NewHandler(s),
		notifications: notifications,
	}
}

// List returns system-wide notifications plus the user's own, newest
// first.
func (h *NotificationsHandler) List(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return errs.NewUnauthorizedError("Authentication required", false)
	}

	notifications, err := h.notifications.ListForUser(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notifications)
}
