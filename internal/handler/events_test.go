package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hacktrack/hacktrack/internal/errs"
)

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  bool
	}{
		{name: "bool true", input: true, want: true},
		{name: "bool false", input: false, want: false},
		{name: "string true", input: "true", want: true},
		{name: "string one", input: "1", want: true},
		{name: "string false", input: "false", want: false},
		{name: "json number one", input: float64(1), want: true},
		{name: "json number zero", input: float64(0), want: false},
		{name: "nil", input: nil, want: false},
		{name: "unrelated string", input: "yes", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, coerceBool(tt.input))
		})
	}
}

func TestEventIDParam(t *testing.T) {
	e := echo.New()

	newContext := func(id string) echo.Context {
		req := httptest.NewRequest("GET", "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(id)
		return c
	}

	id, err := eventIDParam(newContext("42"), "id")
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	for _, bad := range []string{"abc", "", "0", "-3"} {
		_, err := eventIDParam(newContext(bad), "id")
		require.Error(t, err)

		httpErr, ok := err.(*errs.HTTPError)
		require.True(t, ok)
		assert.Equal(t, 400, httpErr.Status)
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	req := &RegisterRequest{}
	assert.Error(t, req.Validate(), "missing is_attending must fail")

	req = &RegisterRequest{IsAttending: false}
	assert.NoError(t, req.Validate(), "explicit false is a valid choice")

	req = &RegisterRequest{IsAttending: "true"}
	assert.NoError(t, req.Validate())
}
