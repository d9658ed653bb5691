package repository

import (
	"github.com/hacktrack/hacktrack/internal/server"
)

// Repositories is a container for all repository instances, wired once
// with the shared connection pool and passed to the service layer.
type Repositories struct {
	Users         *UsersRepository
	Events        *EventsRepository
	Attendance    *AttendanceRepository
	Reviews       *ReviewsRepository
	Notifications *NotificationsRepository
}

// NewRepositories constructs the repository container from the app's
// database pool.
func NewRepositories(s *server.Server) *Repositories {
	pool := s.DB.Pool

	return &Repositories{
		Users:         NewUsersRepository(pool),
		Events:        NewEventsRepository(pool),
		Attendance:    NewAttendanceRepository(pool),
		Reviews:       NewReviewsRepository(pool),
		Notifications: NewNotificationsRepository(pool),
	}
}
