package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hacktrack/hacktrack/internal/ratelimit"
)

func newLimitedApp(t *testing.T, maxRequests int) *echo.Echo {
	t.Helper()

	srv := newTestServer(nil)
	srv.RateLimit = ratelimit.NewStore(ratelimit.Config{
		Window:      time.Minute,
		MaxRequests: maxRequests,
	})

	e := echo.New()
	e.HTTPErrorHandler = NewGlobalMiddlewares(srv).GlobalErrorHandler

	rl := NewRateLimitMiddleware(srv)
	e.POST("/api/auth/signin", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	}, rl.Limit())

	return e
}

func doSignin(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/signin", nil)
	req.RemoteAddr = ip + ":51234"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitHeadersUnderLimit(t *testing.T) {
	e := newLimitedApp(t, 2)

	rec := doSignin(e, "1.2.3.4")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Empty(t, rec.Header().Get("Retry-After"))

	reset, err := time.Parse(time.RFC3339, rec.Header().Get("X-RateLimit-Reset"))
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Minute), reset, 5*time.Second)
}

func TestRateLimitRejectsOverLimit(t *testing.T) {
	e := newLimitedApp(t, 2)

	require.Equal(t, http.StatusOK, doSignin(e, "1.2.3.4").Code)
	require.Equal(t, http.StatusOK, doSignin(e, "1.2.3.4").Code)

	rec := doSignin(e, "1.2.3.4")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, rec.Body.String(), "Too many requests")

	// Retry-After is whole seconds, rounded up, never past the window.
	retryAfter, err := strconv.Atoi(rec.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)
	assert.LessOrEqual(t, retryAfter, 60)
}

func TestRateLimitClientsAreIndependent(t *testing.T) {
	e := newLimitedApp(t, 1)

	require.Equal(t, http.StatusOK, doSignin(e, "1.2.3.4").Code)
	require.Equal(t, http.StatusTooManyRequests, doSignin(e, "1.2.3.4").Code)

	assert.Equal(t, http.StatusOK, doSignin(e, "5.6.7.8").Code)
}
