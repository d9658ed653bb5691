package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AttendanceRepository persists event registrations.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Upsert records the user's attendance choice for an event, overwriting a
// previous choice if one exists. Returns the number of affected rows.
func (r *AttendanceRepository) Upsert(ctx context.Context, userID, eventID int, isAttending bool) (int64, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO event_attendance (user_id, event_id, is_attending)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, event_id)
		 DO UPDATE SET is_attending = EXCLUDED.is_attending`,
		userID, eventID, isAttending,
	)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// IsAttending reports whether the user has an active registration for the
// event.
func (r *AttendanceRepository) IsAttending(ctx context.Context, userID, eventID int) (bool, error) {
	var attending bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(
		     SELECT 1 FROM event_attendance
		     WHERE user_id = $1 AND event_id = $2 AND is_attending = TRUE
		 )`,
		userID, eventID,
	).Scan(&attending)
	return attending, err
}
