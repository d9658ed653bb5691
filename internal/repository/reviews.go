package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Review is a row in the reviews table. Pros, Cons and Comment are
// optional free-text fields.
type Review struct {
	ID          int
	EventID     int
	Title       string
	Rating      int
	Pros        *string
	Cons        *string
	Comment     *string
	SubmittedAt time.Time
}

// CreateReviewParams carries the fields of a new review.
type CreateReviewParams struct {
	EventID int
	UserID  int
	Title   string
	Rating  int
	Pros    *string
	Cons    *string
	Comment *string
}

// ReviewsRepository persists and fetches event reviews.
type ReviewsRepository struct {
	pool *pgxpool.Pool
}

func NewReviewsRepository(pool *pgxpool.Pool) *ReviewsRepository {
	return &ReviewsRepository{pool: pool}
}

// Create inserts a review and returns its id. A second review from the
// same user for the same event violates the unique constraint and
// surfaces as a pgconn error.
func (r *ReviewsRepository) Create(ctx context.Context, params CreateReviewParams) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reviews (event_id, user_id, title, rating, pros, cons, comment)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING feedback_id`,
		params.EventID, params.UserID, params.Title, params.Rating, params.Pros, params.Cons, params.Comment,
	).Scan(&id)
	return id, err
}

// ListByEvent returns all reviews for an event, newest first. Reviews are
// anonymous: the author's id is never selected.
func (r *ReviewsRepository) ListByEvent(ctx context.Context, eventID int) ([]Review, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT feedback_id, event_id, title, rating, pros, cons, comment, submitted_at
		 FROM reviews
		 WHERE event_id = $1
		 ORDER BY submitted_at DESC`,
		eventID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var rv Review
		if err := rows.Scan(&rv.ID, &rv.EventID, &rv.Title, &rv.Rating, &rv.Pros, &rv.Cons, &rv.Comment, &rv.SubmittedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}
