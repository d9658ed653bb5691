package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/hacktrack/hacktrack/internal/server"
	"github.com/hacktrack/hacktrack/internal/service"
	"github.com/hacktrack/hacktrack/internal/validation"
)

// AuthHandler serves account registration and login.
type AuthHandler struct {
	Handler
	auth *service.AuthService
}

func NewAuthHandler(s *server.Server, auth *service.AuthService) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(s),
		auth:    auth,
	}
}

// SignupRequest is the registration payload.
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *SignupRequest) Validate() error {
	return validation.Struct(r)
}

// SigninRequest is the login payload. The email format is deliberately
// not validated here: an address that made it through signup gets a 401
// from the credential check, not a 400.
type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *SigninRequest) Validate() error {
	return validation.Struct(r)
}

// Signup registers a new account and returns its token. 201 on success,
// 409 when the email is taken.
func (h *AuthHandler) Signup(c echo.Context, req *SignupRequest) (*service.SignupResult, error) {
	return h.auth.Signup(c.Request().Context(), req.Name, req.Email, req.Password)
}

// Signin verifies credentials and returns a fresh token, or 401.
func (h *AuthHandler) Signin(c echo.Context, req *SigninRequest) (*service.SigninResult, error) {
	return h.auth.Signin(c.Request().Context(), req.Email, req.Password)
}
