package middleware

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/hacktrack/hacktrack/internal/auth"
	"github.com/hacktrack/hacktrack/internal/errs"
	"github.com/hacktrack/hacktrack/internal/server"
)

// PrincipalKey is the Echo context key holding the authenticated
// auth.Principal for the current request.
const PrincipalKey = "principal"

// AuthMiddleware holds the app Server so middleware can access shared deps
// like Logger and Config.
type AuthMiddleware struct {
	server *server.Server
}

// NewAuthMiddleware constructs an AuthMiddleware.
func NewAuthMiddleware(s *server.Server) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
	}
}

// RequireAuth is an Echo middleware that enforces bearer authentication.
//
// It verifies the Authorization header against the shared signing secret,
// and on success stores the decoded principal (plus user_id/user_role for
// the context enhancer and request logger) in Echo context. Failures are
// returned as typed 401 errors for the global error handler; no response
// is written here.
func (am *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		principal, err := auth.Authenticate(
			c.Request().Header.Get(echo.HeaderAuthorization),
			am.server.Config.Auth.SecretKey,
		)
		if err != nil {
			am.server.Logger.Warn().
				Err(err).
				Str("function", "RequireAuth").
				Str("request_id", GetRequestID(c)).
				Dur("duration", time.Since(start)).
				Msg("request rejected: invalid or missing credential")

			return err
		}

		c.Set(PrincipalKey, principal)
		c.Set(UserIDKey, strconv.Itoa(principal.ID))
		c.Set(UserRoleKey, string(principal.Role))

		return next(c)
	}
}

// RequireRole returns an Echo middleware that rejects principals whose role
// differs from the required one. It must run after RequireAuth.
func (am *AuthMiddleware) RequireRole(role auth.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			principal, ok := GetPrincipal(c)
			if !ok {
				return errs.NewUnauthorizedError("Authentication required", false)
			}

			if err := auth.RequireRole(principal, role); err != nil {
				return err
			}

			return next(c)
		}
	}
}

// GetPrincipal retrieves the authenticated principal from Echo context.
// The second return is false when RequireAuth did not run on this route.
func GetPrincipal(c echo.Context) (auth.Principal, bool) {
	principal, ok := c.Get(PrincipalKey).(auth.Principal)
	return principal, ok
}
