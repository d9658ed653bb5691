package auth

import "github.com/hacktrack/hacktrack/internal/errs"

// Role is the access level carried in a user's token.
type Role string

const (
	RoleUser      Role = "User"
	RoleOrganizer Role = "Organizer"
	RoleAdmin     Role = "Admin"
)

// Principal is the authenticated identity decoded from a verified
// credential. It is immutable once decoded and lives for one request.
type Principal struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
}

// RequireRole returns a 403 when the principal does not hold the required
// role, nil otherwise.
func RequireRole(p Principal, required Role) error {
	if p.Role != required {
		return errs.NewForbiddenError("Insufficient permissions", false)
	}
	return nil
}
