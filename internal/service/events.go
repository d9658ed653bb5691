package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"

	"github.com/hacktrack/hacktrack/internal/errs"
	"github.com/hacktrack/hacktrack/internal/lib/utils"
	"github.com/hacktrack/hacktrack/internal/repository"
	"github.com/hacktrack/hacktrack/internal/server"
)

// EventDateTimeLayout is the wire format for event schedules.
const EventDateTimeLayout = "2006-01-02 15:04:05"

// EventsService implements event creation, browsing, and registration.
type EventsService struct {
	server        *server.Server
	events        *repository.EventsRepository
	attendance    *repository.AttendanceRepository
	users         *repository.UsersRepository
	notifications *repository.NotificationsRepository
}

func NewEventsService(s *server.Server, repos *repository.Repositories) *EventsService {
	return &EventsService{
		server:        s,
		events:        repos.Events,
		attendance:    repos.Attendance,
		users:         repos.Users,
		notifications: repos.Notifications,
	}
}

// CreateEventInput carries the validated multipart form fields of a new
// event. Image is nil when no file was uploaded.
type CreateEventInput struct {
	Name        string
	Description string
	Location    string
	DateTime    string
	Image       []byte
}

// EventNotification is the notification block echoed in the creation
// response.
type EventNotification struct {
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// CreateEventResult is the response body for a created event.
type CreateEventResult struct {
	Success      bool              `json:"success"`
	EventID      int               `json:"eventId"`
	Message      string            `json:"message"`
	Notification EventNotification `json:"notification"`
}

// EventView is an event as rendered in browse lists. ImageURL is a
// data:image/png;base64 URL, or null when the event has no image.
type EventView struct {
	EventID       int       `json:"event_id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	OrganizerName string    `json:"organizer_name"`
	DateTime      time.Time `json:"date_time"`
	Location      string    `json:"location"`
	OrganizerID   int       `json:"organizer_id"`
	IsAttending   *bool     `json:"is_attending"`
	ImageURL      *string   `json:"image_url"`
}

// EventDetail is a single event as rendered on the detail page.
type EventDetail struct {
	EventID     int       `json:"eventid"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	DateTime    time.Time `json:"date_time"`
	Location    string    `json:"location"`
	ImageURL    *string   `json:"image_url"`
}

// RegisterResult is the response body for an attendance registration.
type RegisterResult struct {
	Success      bool  `json:"success"`
	IsAttending  bool  `json:"is_attending"`
	AffectedRows int64 `json:"affectedRows"`
}

// Profile is the response body for the authenticated user's profile.
type Profile struct {
	Name string `json:"name"`
}

// Create inserts a new event for the organizer and publishes the
// system-wide "New Event Added" notification carrying the event's own
// creation timestamp.
func (s *EventsService) Create(ctx context.Context, organizerID int, input CreateEventInput) (*CreateEventResult, error) {
	dateTime, err := time.Parse(EventDateTimeLayout, input.DateTime)
	if err != nil {
		return nil, errs.NewBadRequestError("Invalid datetime format", true, nil, nil, nil)
	}

	eventID, createdAt, err := s.events.Create(ctx, repository.CreateEventParams{
		Name:        input.Name,
		Description: input.Description,
		DateTime:    dateTime,
		Location:    input.Location,
		ImageData:   input.Image,
		OrganizerID: organizerID,
	})
	if err != nil {
		return nil, err
	}

	message := fmt.Sprintf("We've just listed %q. Check it out on the homepage!", input.Name)

	if err := s.notifications.CreateSystem(ctx, eventID, "event", "New Event Added", message, createdAt); err != nil {
		return nil, errors.Wrap(err, "failed to create event notification")
	}

	return &CreateEventResult{
		Success: true,
		EventID: eventID,
		Message: "Event created successfully",
		Notification: EventNotification{
			Title:     "New Event Added",
			Message:   message,
			Timestamp: createdAt,
		},
	}, nil
}

// Me returns the user's display name, falling back to "User" when the
// account vanished after the token was issued.
func (s *EventsService) Me(ctx context.Context, userID int) (*Profile, error) {
	name, err := s.users.GetNameByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &Profile{Name: "User"}, nil
		}
		return nil, err
	}
	return &Profile{Name: name}, nil
}

// ListUpcoming returns all future events with the user's attendance flags.
func (s *EventsService) ListUpcoming(ctx context.Context, userID int) ([]EventView, error) {
	listings, err := s.events.ListUpcoming(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toEventViews(listings), nil
}

// ListAttending returns the future events the user registered for.
func (s *EventsService) ListAttending(ctx context.Context, userID int) ([]EventView, error) {
	listings, err := s.events.ListAttending(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toEventViews(listings), nil
}

// ListByOrganizer returns the organizer's own future events.
func (s *EventsService) ListByOrganizer(ctx context.Context, organizerID int) ([]EventDetail, error) {
	events, err := s.events.ListByOrganizer(ctx, organizerID)
	if err != nil {
		return nil, err
	}

	views := make([]EventDetail, 0, len(events))
	for _, e := range events {
		views = append(views, EventDetail{
			EventID:     e.ID,
			Name:        e.Name,
			Description: e.Description,
			DateTime:    e.DateTime,
			Location:    e.Location,
			ImageURL:    utils.ImageDataURL(e.ImageData),
		})
	}
	return views, nil
}

// Detail returns a single event, or a 404 for an unknown id.
func (s *EventsService) Detail(ctx context.Context, eventID int) (*EventDetail, error) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewNotFoundError("Event not found", true, nil)
		}
		return nil, err
	}

	return &EventDetail{
		EventID:     event.ID,
		Name:        event.Name,
		Description: event.Description,
		DateTime:    event.DateTime,
		Location:    event.Location,
		ImageURL:    utils.ImageDataURL(event.ImageData),
	}, nil
}

// Register stores the user's attendance choice for an existing event,
// overwriting any previous choice.
func (s *EventsService) Register(ctx context.Context, userID, eventID int, isAttending bool) (*RegisterResult, error) {
	exists, err := s.events.Exists(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewNotFoundError("Event not found", true, nil)
	}

	affected, err := s.attendance.Upsert(ctx, userID, eventID, isAttending)
	if err != nil {
		return nil, err
	}

	return &RegisterResult{
		Success:      true,
		IsAttending:  isAttending,
		AffectedRows: affected,
	}, nil
}

func toEventViews(listings []repository.EventListing) []EventView {
	views := make([]EventView, 0, len(listings))
	for _, l := range listings {
		views = append(views, EventView{
			EventID:       l.ID,
			Name:          l.Name,
			Description:   l.Description,
			OrganizerName: l.OrganizerName,
			DateTime:      l.DateTime,
			Location:      l.Location,
			OrganizerID:   l.OrganizerID,
			IsAttending:   l.IsAttending,
			ImageURL:      utils.ImageDataURL(l.ImageData),
		})
	}
	return views
}
