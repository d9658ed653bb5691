package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/hacktrack/hacktrack/internal/config"
	"github.com/hacktrack/hacktrack/internal/middleware"
	"github.com/hacktrack/hacktrack/internal/server"
)

// newValidationApp wires the typed pipeline with a signup route whose
// service is never reached: every test payload fails validation first.
func newValidationApp() *echo.Echo {
	logger := zerolog.Nop()
	srv := &server.Server{
		Config: &config.Config{},
		Logger: &logger,
	}

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(srv).GlobalErrorHandler

	h := NewAuthHandler(srv, nil)
	e.POST("/api/auth/signup", Handle(h.Handler, h.Signup, http.StatusCreated))

	return e
}

func postJSON(e *echo.Echo, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSignupValidation(t *testing.T) {
	e := newValidationApp()

	tests := []struct {
		name     string
		body     string
		wantPart string
	}{
		{
			name:     "empty payload",
			body:     `{}`,
			wantPart: `"field":"name"`,
		},
		{
			name:     "name too short",
			body:     `{"name":"A","email":"a@example.com","password":"secret123"}`,
			wantPart: "at least 2 characters",
		},
		{
			name:     "bad email",
			body:     `{"name":"Ada","email":"not-an-email","password":"secret123"}`,
			wantPart: "valid email address",
		},
		{
			name:     "malformed json",
			body:     `{"name":`,
			wantPart: "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(e, "/api/auth/signup", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantPart)
		})
	}
}
