package errs

import "strings"

// FieldError is a single field-level validation error, typically produced
// from form input.
//
//	{ "field": "email", "error": "must be a valid email address" }
type FieldError struct {
	// Field is the field name the error relates to (e.g. "email").
	Field string `json:"field"`

	// Error is the human-readable message for that field.
	Error string `json:"error"`
}

// ActionType is a string enum describing what the client should do next.
type ActionType string

const (
	// ActionTypeRedirect tells the client to navigate elsewhere; Value
	// carries the target URL or route.
	ActionTypeRedirect ActionType = "redirect"
)

// Action is an optional client instruction attached to an error, useful in
// auth flows (e.g. "redirect to login").
type Action struct {
	// Type is the kind of action (e.g. "redirect").
	Type ActionType `json:"type"`

	// Message is human-readable guidance for the UI.
	Message string `json:"message"`

	// Value is the payload for the action (e.g. the redirect URL).
	Value string `json:"value"`
}

// HTTPError is the error type serialized to API clients.
//
// It satisfies the error interface, so handlers and services return it
// directly and let the global error handler write the response.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors, typically for form input.
	Errors []FieldError `json:"errors"`

	// Action is an optional client instruction.
	Action *Action `json:"action"`
}

// Error returns the client-facing message, satisfying the error interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also a *HTTPError. It matches on type only,
// not on Code or Status, so errors.Is(err, &HTTPError{}) answers "did this
// error already pass through our taxonomy".
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of the error with Message replaced, leaving
// the original untouched. Useful when a base error is reused as a template.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
	}
}

// MakeUpperCaseWithUnderscores converts a phrase into the
// UPPER_CASE_WITH_UNDERSCORES form used for machine-readable error codes.
//
//	"Too Many Requests" -> "TOO_MANY_REQUESTS"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
