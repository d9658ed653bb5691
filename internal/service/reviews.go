package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/hacktrack/hacktrack/internal/auth"
	"github.com/hacktrack/hacktrack/internal/errs"
	"github.com/hacktrack/hacktrack/internal/lib/job"
	"github.com/hacktrack/hacktrack/internal/repository"
	"github.com/hacktrack/hacktrack/internal/server"
	"github.com/hacktrack/hacktrack/internal/sqlerr"
)

// ReviewsService implements anonymous event reviews.
type ReviewsService struct {
	server        *server.Server
	reviews       *repository.ReviewsRepository
	attendance    *repository.AttendanceRepository
	events        *repository.EventsRepository
	notifications *repository.NotificationsRepository
}

func NewReviewsService(s *server.Server, repos *repository.Repositories) *ReviewsService {
	return &ReviewsService{
		server:        s,
		reviews:       repos.Reviews,
		attendance:    repos.Attendance,
		events:        repos.Events,
		notifications: repos.Notifications,
	}
}

// SubmitReviewInput carries the validated fields of a new review.
type SubmitReviewInput struct {
	EventID int
	Title   string
	Rating  int
	Pros    *string
	Cons    *string
	Comment *string
}

// SubmitReviewResult is the response body for a submitted review.
type SubmitReviewResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ReviewView is a review as rendered in the public list. The author is
// never exposed.
type ReviewView struct {
	ID         int       `json:"id"`
	Title      string    `json:"title"`
	Rating     int       `json:"rating"`
	Pros       *string   `json:"pros"`
	Cons       *string   `json:"cons"`
	ReviewText *string   `json:"reviewText"`
	Date       time.Time `json:"date"`
}

// ReviewList is the response body for the public review listing.
type ReviewList struct {
	Success bool         `json:"success"`
	Data    []ReviewView `json:"data"`
}

// Submit records a review from an attendee. Only users with an active
// registration for the event may review it; a second review from the same
// user is rejected with 409. A per-user "Feedback Received" notification
// is written and a confirmation email enqueued best-effort.
func (s *ReviewsService) Submit(ctx context.Context, principal auth.Principal, input SubmitReviewInput) (*SubmitReviewResult, error) {
	attending, err := s.attendance.IsAttending(ctx, principal.ID, input.EventID)
	if err != nil {
		return nil, err
	}
	if !attending {
		return nil, errs.NewForbiddenError("You must attend the event to review it", true)
	}

	_, err = s.reviews.Create(ctx, repository.CreateReviewParams{
		EventID: input.EventID,
		UserID:  principal.ID,
		Title:   input.Title,
		Rating:  input.Rating,
		Pros:    input.Pros,
		Cons:    input.Cons,
		Comment: input.Comment,
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && sqlerr.MapCode(pgErr.Code) == sqlerr.UniqueViolation {
			return nil, errs.NewConflictError("You already reviewed this event", true, nil)
		}
		return nil, err
	}

	if err := s.notifications.CreateForUser(ctx, principal.ID, input.EventID, "feedback",
		"Feedback Received", "Thank you for your feedback! We value your input."); err != nil {
		return nil, errors.Wrap(err, "failed to create feedback notification")
	}

	s.enqueueReviewEmail(ctx, principal.Email, input.EventID)

	return &SubmitReviewResult{
		Success: true,
		Message: "Anonymous review submitted successfully",
	}, nil
}

// ListByEvent returns all reviews for an event, newest first. The route
// is public: no principal is involved.
func (s *ReviewsService) ListByEvent(ctx context.Context, eventID int) (*ReviewList, error) {
	reviews, err := s.reviews.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	views := make([]ReviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, ReviewView{
			ID:         r.ID,
			Title:      r.Title,
			Rating:     r.Rating,
			Pros:       r.Pros,
			Cons:       r.Cons,
			ReviewText: r.Comment,
			Date:       r.SubmittedAt,
		})
	}

	return &ReviewList{
		Success: true,
		Data:    views,
	}, nil
}

// enqueueReviewEmail hands the review confirmation to the background
// queue. Failures are logged, never surfaced to the review response.
func (s *ReviewsService) enqueueReviewEmail(ctx context.Context, email string, eventID int) {
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		s.server.Logger.Warn().Err(err).Int("event_id", eventID).Msg("failed to load event for review email")
		return
	}

	task, err := job.NewReviewReceivedTask(email, event.Name)
	if err != nil {
		s.server.Logger.Warn().Err(err).Str("email", email).Msg("failed to build review email task")
		return
	}

	if _, err := s.server.Job.Client.Enqueue(task); err != nil {
		s.server.Logger.Warn().Err(err).Str("email", email).Msg("failed to enqueue review email")
	}
}
