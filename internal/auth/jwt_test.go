package auth

import (
	"testing"
	"time"

	"github.com/hacktrack/hacktrack/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAuthenticate_Success(t *testing.T) {
	principal := Principal{ID: 42, Email: "dana@example.com", Name: "Dana", Role: RoleOrganizer}

	token, err := Sign(principal, testSecret, time.Hour)
	require.NoError(t, err)

	got, err := Authenticate("Bearer "+token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, principal, got)
}

func TestAuthenticate_Failures(t *testing.T) {
	valid, err := Sign(Principal{ID: 1, Email: "a@b.c", Role: RoleUser}, testSecret, time.Hour)
	require.NoError(t, err)

	expired, err := Sign(Principal{ID: 1, Email: "a@b.c", Role: RoleUser}, testSecret, -time.Minute)
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		message string
	}{
		{
			name:    "missing header",
			header:  "",
			message: "Authentication required",
		},
		{
			name:    "bearer with empty token",
			header:  "Bearer ",
			message: "Invalid authorization header format",
		},
		{
			name:    "no bearer prefix",
			header:  valid,
			message: "Invalid authorization header format",
		},
		{
			name:    "wrong scheme",
			header:  "Basic dXNlcjpwYXNz",
			message: "Invalid authorization header format",
		},
		{
			name:    "garbage token",
			header:  "Bearer not.a.jwt",
			message: "Invalid or expired token",
		},
		{
			name:    "expired token",
			header:  "Bearer " + expired,
			message: "Invalid or expired token",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Authenticate(tt.header, testSecret)
			require.Error(t, err)

			httpErr, ok := err.(*errs.HTTPError)
			require.True(t, ok, "failures must be typed HTTPErrors")
			assert.Equal(t, 401, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
		})
	}
}

func TestAuthenticate_WrongSecret(t *testing.T) {
	token, err := Sign(Principal{ID: 1, Email: "a@b.c", Role: RoleUser}, "other-secret", time.Hour)
	require.NoError(t, err)

	_, err = Authenticate("Bearer "+token, testSecret)
	require.Error(t, err)

	httpErr := err.(*errs.HTTPError)
	assert.Equal(t, 401, httpErr.Status)
	assert.Equal(t, "Invalid or expired token", httpErr.Message)
}

func TestAuthenticate_CaseInsensitiveBearer(t *testing.T) {
	token, err := Sign(Principal{ID: 7, Email: "x@y.z", Role: RoleAdmin}, testSecret, time.Hour)
	require.NoError(t, err)

	got, err := Authenticate("bearer "+token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, 7, got.ID)
}

func TestRequireRole(t *testing.T) {
	admin := Principal{ID: 1, Role: RoleAdmin}
	user := Principal{ID: 2, Role: RoleUser}

	assert.NoError(t, RequireRole(admin, RoleAdmin))

	err := RequireRole(user, RoleAdmin)
	require.Error(t, err)

	httpErr := err.(*errs.HTTPError)
	assert.Equal(t, 403, httpErr.Status)
	assert.Equal(t, "Insufficient permissions", httpErr.Message)
}
