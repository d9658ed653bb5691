package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Event is a row in the events table. ImageData holds the raw uploaded
// image bytes (nil when the organizer uploaded none).
type Event struct {
	ID          int
	Name        string
	Description string
	DateTime    time.Time
	Location    string
	ImageData   []byte
	OrganizerID int
	CreatedAt   time.Time
}

// EventListing is an event joined with its organizer name and, when the
// query is scoped to a user, that user's attendance flag (nil when the
// user never registered for the event).
type EventListing struct {
	ID            int
	Name          string
	Description   string
	DateTime      time.Time
	Location      string
	ImageData     []byte
	OrganizerID   int
	OrganizerName string
	IsAttending   *bool
}

// CreateEventParams carries the fields of a new event.
type CreateEventParams struct {
	Name        string
	Description string
	DateTime    time.Time
	Location    string
	ImageData   []byte
	OrganizerID int
}

// EventsRepository persists and fetches events.
type EventsRepository struct {
	pool *pgxpool.Pool
}

func NewEventsRepository(pool *pgxpool.Pool) *EventsRepository {
	return &EventsRepository{pool: pool}
}

// Create inserts an event and returns its id and creation timestamp (the
// latter feeds the system-wide notification).
func (r *EventsRepository) Create(ctx context.Context, params CreateEventParams) (int, time.Time, error) {
	var (
		id        int
		createdAt time.Time
	)
	err := r.pool.QueryRow(ctx,
		`INSERT INTO events (name, description, date_time, location, image_data, organizer_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING event_id, created_at`,
		params.Name, params.Description, params.DateTime, params.Location, params.ImageData, params.OrganizerID,
	).Scan(&id, &createdAt)
	return id, createdAt, err
}

// ListUpcoming returns all future events with organizer names, each carrying
// the given user's attendance flag where one exists.
func (r *EventsRepository) ListUpcoming(ctx context.Context, userID int) ([]EventListing, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT
		     e.event_id,
		     e.name,
		     e.description,
		     e.date_time,
		     e.location,
		     e.image_data,
		     e.organizer_id,
		     COALESCE(u.name, '') AS organizer_name,
		     ea.is_attending
		 FROM events e
		 LEFT JOIN event_attendance ea
		     ON e.event_id = ea.event_id AND ea.user_id = $1
		 LEFT JOIN users u
		     ON e.organizer_id = u.user_id
		 WHERE e.date_time > NOW()
		 ORDER BY e.date_time ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanListings(rows)
}

// ListAttending returns the future events the user has registered for.
func (r *EventsRepository) ListAttending(ctx context.Context, userID int) ([]EventListing, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT
		     e.event_id,
		     e.name,
		     e.description,
		     e.date_time,
		     e.location,
		     e.image_data,
		     e.organizer_id,
		     u.name AS organizer_name,
		     ea.is_attending
		 FROM event_attendance ea
		 INNER JOIN events e
		     ON ea.event_id = e.event_id
		     AND ea.user_id = $1
		     AND ea.is_attending = TRUE
		 INNER JOIN users u
		     ON e.organizer_id = u.user_id
		 WHERE e.date_time > NOW()
		 ORDER BY e.date_time ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanListings(rows)
}

// ListByOrganizer returns the organizer's own future events.
func (r *EventsRepository) ListByOrganizer(ctx context.Context, organizerID int) ([]Event, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT event_id, name, description, date_time, location, image_data, organizer_id, created_at
		 FROM events
		 WHERE organizer_id = $1 AND date_time > NOW()
		 ORDER BY date_time ASC`,
		organizerID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.DateTime, &e.Location, &e.ImageData, &e.OrganizerID, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID fetches a single event, or pgx.ErrNoRows.
func (r *EventsRepository) GetByID(ctx context.Context, id int) (*Event, error) {
	var e Event
	err := r.pool.QueryRow(ctx,
		`SELECT event_id, name, description, date_time, location, image_data, organizer_id, created_at
		 FROM events
		 WHERE event_id = $1`,
		id,
	).Scan(&e.ID, &e.Name, &e.Description, &e.DateTime, &e.Location, &e.ImageData, &e.OrganizerID, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Exists reports whether an event with the given id exists.
func (r *EventsRepository) Exists(ctx context.Context, id int) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM events WHERE event_id = $1)`,
		id,
	).Scan(&exists)
	return exists, err
}

func scanListings(rows pgx.Rows) ([]EventListing, error) {
	var listings []EventListing
	for rows.Next() {
		var l EventListing
		if err := rows.Scan(
			&l.ID, &l.Name, &l.Description, &l.DateTime, &l.Location,
			&l.ImageData, &l.OrganizerID, &l.OrganizerName, &l.IsAttending,
		); err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
