package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hacktrack/hacktrack/internal/auth"
)

const testSecret = "test-secret"

func newAuthedApp(t *testing.T, requiredRole auth.Role) *echo.Echo {
	t.Helper()

	srv := newTestServer(nil)
	srv.Config.Auth.SecretKey = testSecret

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(srv).GlobalErrorHandler

	am := NewAuthMiddleware(srv)
	mw := []echo.MiddlewareFunc{am.RequireAuth}
	if requiredRole != "" {
		mw = append(mw, am.RequireRole(requiredRole))
	}

	e.GET("/api/events/me", func(c echo.Context) error {
		principal, ok := GetPrincipal(c)
		require.True(t, ok)
		return c.JSON(http.StatusOK, map[string]any{
			"id":   principal.ID,
			"role": principal.Role,
		})
	}, mw...)

	return e
}

func signedToken(t *testing.T, role auth.Role) string {
	t.Helper()

	token, err := auth.Sign(auth.Principal{
		ID:    7,
		Email: "ada@example.com",
		Name:  "Ada",
		Role:  role,
	}, testSecret, time.Hour)
	require.NoError(t, err)

	return token
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	e := newAuthedApp(t, "")

	req := httptest.NewRequest(http.MethodGet, "/api/events/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, auth.RoleUser))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":7`)
}

func TestRequireAuthRejectsMissingAndMalformedHeaders(t *testing.T) {
	e := newAuthedApp(t, "")

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header"},
		{name: "empty bearer token", header: "Bearer "},
		{name: "missing bearer prefix", header: "some-token"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/events/me", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireRoleEnforcesRole(t *testing.T) {
	e := newAuthedApp(t, auth.RoleOrganizer)

	req := httptest.NewRequest(http.MethodGet, "/api/events/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, auth.RoleUser))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Insufficient permissions")

	req = httptest.NewRequest(http.MethodGet, "/api/events/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+signedToken(t, auth.RoleOrganizer))
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
