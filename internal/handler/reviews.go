package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/hacktrack/hacktrack/internal/errs"
	"github.com/hacktrack/hacktrack/internal/middleware"
	"github.com/hacktrack/hacktrack/internal/server"
	"github.com/hacktrack/hacktrack/internal/service"
	"github.com/hacktrack/hacktrack/internal/validation"
)

// ReviewsHandler serves review submission and the public review listing.
type ReviewsHandler struct {
	Handler
	reviews *service.ReviewsService
}

func NewReviewsHandler(s *server.Server, reviews *service.ReviewsService) *ReviewsHandler {
	return &ReviewsHandler{
		Handler: NewHandler(s),
		reviews: reviews,
	}
}

// SubmitReviewRequest is the review payload. Pros, cons and the free-text
// review are optional.
type SubmitReviewRequest struct {
	EventID    int     `json:"eventId" validate:"required"`
	Title      string  `json:"title" validate:"required"`
	Rating     int     `json:"rating" validate:"required,gte=1,lte=5"`
	Pros       *string `json:"pros"`
	Cons       *string `json:"cons"`
	ReviewText *string `json:"reviewText"`
}

func (r *SubmitReviewRequest) Validate() error {
	return validation.Struct(r)
}

// Submit records an anonymous review from an attendee. 403 when the user
// never registered for the event, 409 on a repeat review.
func (h *ReviewsHandler) Submit(c echo.Context, req *SubmitReviewRequest) (*service.SubmitReviewResult, error) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return nil, errs.NewUnauthorizedError("Authentication required", false)
	}

	return h.reviews.Submit(c.Request().Context(), principal, service.SubmitReviewInput{
		EventID: req.EventID,
		Title:   req.Title,
		Rating:  req.Rating,
		Pros:    req.Pros,
		Cons:    req.Cons,
		Comment: req.ReviewText,
	})
}

// ListByEvent returns all reviews for the event in the path, newest
// first. Public: no authentication required.
func (h *ReviewsHandler) ListByEvent(c echo.Context) error {
	eventID, err := eventIDParam(c, "eventId")
	if err != nil {
		return err
	}

	reviews, err := h.reviews.ListByEvent(c.Request().Context(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, reviews)
}
