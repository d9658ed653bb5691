package service

import (
	"context"
	"time"

	"github.com/hacktrack/hacktrack/internal/repository"
	"github.com/hacktrack/hacktrack/internal/server"
)

// NotificationsService serves the user's notification feed.
type NotificationsService struct {
	server        *server.Server
	notifications *repository.NotificationsRepository
}

func NewNotificationsService(s *server.Server, notifications *repository.NotificationsRepository) *NotificationsService {
	return &NotificationsService{
		server:        s,
		notifications: notifications,
	}
}

// NotificationView is a notification as rendered in the feed.
type NotificationView struct {
	ID        int       `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	EventID   int       `json:"event_id"`
	EventName *string   `json:"event_name"`
}

// ListForUser returns system-wide notifications plus the user's own,
// newest first.
func (s *NotificationsService) ListForUser(ctx context.Context, userID int) ([]NotificationView, error) {
	notifications, err := s.notifications.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]NotificationView, 0, len(notifications))
	for _, n := range notifications {
		views = append(views, NotificationView{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			CreatedAt: n.CreatedAt,
			EventID:   n.EventID,
			EventName: n.EventName,
		})
	}
	return views, nil
}
