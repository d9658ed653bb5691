package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Notification is a row in the notifications table joined with the event
// name. A nil UserID marks a system-wide notification visible to everyone.
type Notification struct {
	ID        int
	UserID    *int
	EventID   int
	Type      string
	Title     string
	Message   string
	CreatedAt time.Time
	EventName *string
}

// NotificationsRepository persists and fetches notifications.
type NotificationsRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationsRepository(pool *pgxpool.Pool) *NotificationsRepository {
	return &NotificationsRepository{pool: pool}
}

// CreateSystem inserts a system-wide notification (user_id NULL). The
// timestamp is supplied by the caller so it can mirror the triggering
// event's created_at.
func (r *NotificationsRepository) CreateSystem(ctx context.Context, eventID int, notifType, title, message string, createdAt time.Time) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO notifications (event_id, type, title, message, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		eventID, notifType, title, message, createdAt,
	)
	return err
}

// CreateForUser inserts a notification addressed to a single user.
func (r *NotificationsRepository) CreateForUser(ctx context.Context, userID, eventID int, notifType, title, message string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO notifications (user_id, event_id, type, title, message)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, eventID, notifType, title, message,
	)
	return err
}

// ListForUser returns system-wide notifications plus the user's own,
// newest first, each joined with its event name when the event still
// exists.
func (r *NotificationsRepository) ListForUser(ctx context.Context, userID int) ([]Notification, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT
		     n.id,
		     n.user_id,
		     n.event_id,
		     n.type,
		     n.title,
		     n.message,
		     n.created_at,
		     e.name AS event_name
		 FROM notifications n
		 LEFT JOIN events e ON n.event_id = e.event_id
		 WHERE n.user_id IS NULL OR n.user_id = $1
		 ORDER BY n.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.EventID, &n.Type, &n.Title, &n.Message, &n.CreatedAt, &n.EventName); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}
