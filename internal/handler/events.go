package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/hacktrack/hacktrack/internal/errs"
	"github.com/hacktrack/hacktrack/internal/middleware"
	"github.com/hacktrack/hacktrack/internal/server"
	"github.com/hacktrack/hacktrack/internal/service"
	"github.com/hacktrack/hacktrack/internal/validation"
)

// EventsHandler serves event creation, browsing, and attendance
// registration.
type EventsHandler struct {
	Handler
	events *service.EventsService
}

func NewEventsHandler(s *server.Server, events *service.EventsService) *EventsHandler {
	return &EventsHandler{
		Handler: NewHandler(s),
		events:  events,
	}
}

// CreateEventRequest is the multipart form payload of a new event. The
// optional image file is read separately from the form in the handler;
// the schedule format is validated by the service.
type CreateEventRequest struct {
	Name        string `form:"name" validate:"required"`
	Description string `form:"description" validate:"required"`
	Location    string `form:"location" validate:"required"`
	DateTime    string `form:"date_time" validate:"required"`
}

func (r *CreateEventRequest) Validate() error {
	return validation.Struct(r)
}

// RegisterRequest is the attendance registration payload. IsAttending is
// left untyped so boolean, string, and numeric encodings from older
// clients all bind; required-ness is checked here and the coercion
// happens in the handler.
type RegisterRequest struct {
	IsAttending any `json:"is_attending"`
}

func (r *RegisterRequest) Validate() error {
	if r.IsAttending == nil {
		return validation.CustomValidationErrors{{
			Field:   "is_attending",
			Message: "is required",
		}}
	}
	return nil
}

// Create inserts a new event for the authenticated organizer. The image
// arrives as an optional multipart file under "image_data".
func (h *EventsHandler) Create(c echo.Context, req *CreateEventRequest) (*service.CreateEventResult, error) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return nil, errs.NewUnauthorizedError("Authentication required", false)
	}

	image, err := readFormImage(c, "image_data")
	if err != nil {
		return nil, err
	}

	return h.events.Create(c.Request().Context(), principal.ID, service.CreateEventInput{
		Name:        req.Name,
		Description: req.Description,
		Location:    req.Location,
		DateTime:    req.DateTime,
		Image:       image,
	})
}

// Register stores the user's attendance choice for the event in the path.
func (h *EventsHandler) Register(c echo.Context, req *RegisterRequest) (*service.RegisterResult, error) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return nil, errs.NewUnauthorizedError("Authentication required", false)
	}

	eventID, err := eventIDParam(c, "id")
	if err != nil {
		return nil, err
	}

	return h.events.Register(c.Request().Context(), principal.ID, eventID, coerceBool(req.IsAttending))
}

// Me returns the authenticated user's display name.
func (h *EventsHandler) Me(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return errs.NewUnauthorizedError("Authentication required", false)
	}

	profile, err := h.events.Me(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

// Userpage returns all upcoming events with the user's attendance flags.
func (h *EventsHandler) Userpage(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return errs.NewUnauthorizedError("Authentication required", false)
	}

	events, err := h.events.ListUpcoming(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// UserEvents returns the upcoming events the user registered for.
func (h *EventsHandler) UserEvents(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return errs.NewUnauthorizedError("Authentication required", false)
	}

	events, err := h.events.ListAttending(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Organizer returns the authenticated organizer's own upcoming events.
func (h *EventsHandler) Organizer(c echo.Context) error {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		return errs.NewUnauthorizedError("Authentication required", false)
	}

	events, err := h.events.ListByOrganizer(c.Request().Context(), principal.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, events)
}

// Detail returns a single event, or 404.
func (h *EventsHandler) Detail(c echo.Context) error {
	eventID, err := eventIDParam(c, "id")
	if err != nil {
		return err
	}

	detail, err := h.events.Detail(c.Request().Context(), eventID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// eventIDParam parses a numeric path parameter into an event id.
func eventIDParam(c echo.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, errs.NewBadRequestError("Invalid event id", true, nil, nil, nil)
	}
	return id, nil
}

// coerceBool mirrors the loose truthiness older clients rely on: true,
// "true", 1, and "1" are attending, everything else is not.
func coerceBool(v any) bool {
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val == "true" || val == "1"
	case float64:
		// JSON numbers decode as float64.
		return val == 1
	default:
		return false
	}
}

// readFormImage reads an optional multipart file field into memory. A
// missing file is not an error; an unreadable one is.
func readFormImage(c echo.Context, field string) ([]byte, error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		// Absent file field: the event simply has no image.
		return nil, nil
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, errors.Wrap(err, "failed to open uploaded image")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read uploaded image")
	}
	return data, nil
}
