package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hacktrack/hacktrack/internal/config"
	"github.com/hacktrack/hacktrack/internal/server"
)

func newTestServer(origins []string) *server.Server {
	logger := zerolog.Nop()
	return &server.Server{
		Config: &config.Config{
			Server: config.ServerConfig{
				CORSAllowedOrigins: origins,
			},
		},
		Logger: &logger,
	}
}

func TestSecurityHeaders(t *testing.T) {
	e := echo.New()
	sec := NewSecurityMiddleware(newTestServer([]string{"http://localhost:3000"}))
	e.Use(sec.Headers())
	e.GET("/ping", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	h := rec.Header()
	assert.Equal(t, "http://localhost:3000", h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, POST, PUT, DELETE, OPTIONS", h.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, Authorization", h.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "true", h.Get("Access-Control-Allow-Credentials"))
	assert.Equal(t, "nosniff", h.Get("X-Content-Type-Options"))
	assert.Equal(t, "no-referrer", h.Get("Referrer-Policy"))
	assert.Equal(t, "DENY", h.Get("X-Frame-Options"))
	assert.Equal(t, "geolocation=(), microphone=(), camera=()", h.Get("Permissions-Policy"))
	assert.Equal(t, "no-store", h.Get("Cache-Control"))
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'; base-uri 'none'", h.Get("Content-Security-Policy"))
}

func TestSecurityHeadersPreflight(t *testing.T) {
	e := echo.New()
	sec := NewSecurityMiddleware(newTestServer([]string{"http://localhost:3000"}))
	e.Use(sec.Headers())

	handlerCalled := false
	e.POST("/api/events", func(c echo.Context) error {
		handlerCalled = true
		return c.NoContent(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.False(t, handlerCalled, "preflight must not reach the handler")
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestSecurityHeadersOriginSelection(t *testing.T) {
	tests := []struct {
		name          string
		origins       []string
		requestOrigin string
		want          string
	}{
		{
			name:          "allowlisted origin is echoed back",
			origins:       []string{"http://localhost:3000", "https://hacktrack.dev"},
			requestOrigin: "https://hacktrack.dev",
			want:          "https://hacktrack.dev",
		},
		{
			name:          "unknown origin falls back to first configured",
			origins:       []string{"http://localhost:3000", "https://hacktrack.dev"},
			requestOrigin: "https://evil.example.com",
			want:          "http://localhost:3000",
		},
		{
			name:          "no origin header uses first configured",
			origins:       []string{"http://localhost:3000"},
			requestOrigin: "",
			want:          "http://localhost:3000",
		},
		{
			name:          "wildcard config allows any origin",
			origins:       []string{"*"},
			requestOrigin: "https://anywhere.example.com",
			want:          "https://anywhere.example.com",
		},
		{
			name:    "empty config defaults to wildcard",
			origins: nil,
			want:    "*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sec := NewSecurityMiddleware(newTestServer(tt.origins))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.requestOrigin != "" {
				req.Header.Set("Origin", tt.requestOrigin)
			}

			assert.Equal(t, tt.want, sec.allowedOrigin(req))
		})
	}
}
