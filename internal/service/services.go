package service

import (
	"github.com/hacktrack/hacktrack/internal/lib/job"
	"github.com/hacktrack/hacktrack/internal/repository"
	"github.com/hacktrack/hacktrack/internal/server"
)

// Services is a container that groups all business-logic services, wired
// once and handed to the handler layer.
type Services struct {
	Auth          *AuthService
	Events        *EventsService
	Reviews       *ReviewsService
	Notifications *NotificationsService
	Job           *job.JobService
}

// NewServices constructs the service container from the app container and
// the repository layer.
func NewServices(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Auth:          NewAuthService(s, repos.Users),
		Events:        NewEventsService(s, repos),
		Reviews:       NewReviewsService(s, repos),
		Notifications: NewNotificationsService(s, repos.Notifications),
		Job:           s.Job,
	}, nil
}
