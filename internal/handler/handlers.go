package handler

import (
	"github.com/hacktrack/hacktrack/internal/server"
	"github.com/hacktrack/hacktrack/internal/service"
)

// Handlers is a container that groups all HTTP handlers, so router setup
// passes one object around instead of many.
type Handlers struct {
	Health        *HealthHandler
	OpenAPI       *OpenAPIHandler
	Auth          *AuthHandler
	Events        *EventsHandler
	Reviews       *ReviewsHandler
	Notifications *NotificationsHandler
}

// NewHandlers constructs the handler container from the app container and
// the business layer.
func NewHandlers(s *server.Server, services *service.Services) *Handlers {
	return &Handlers{
		Health:        NewHealthHandler(s),
		OpenAPI:       NewOpenAPIHandler(s),
		Auth:          NewAuthHandler(s, services.Auth),
		Events:        NewEventsHandler(s, services.Events),
		Reviews:       NewReviewsHandler(s, services.Reviews),
		Notifications: NewNotificationsHandler(s, services.Notifications),
	}
}
