package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hacktrack/hacktrack/internal/errs"
)

// Claims is the JWT payload: the principal's fields plus the registered
// expiry claim.
type Claims struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	Role  Role   `json:"role"`
	jwt.RegisteredClaims
}

// Sign mints a token for a principal, valid for ttl from now.
func Sign(p Principal, secret string, ttl time.Duration) (string, error) {
	claims := Claims{
		ID:    p.ID,
		Email: p.Email,
		Name:  p.Name,
		Role:  p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Authenticate extracts the bearer token from an Authorization header
// value and verifies it against the shared secret.
//
// Failure cases, each a 401 *errs.HTTPError:
//   - empty header: "Authentication required"
//   - header without a Bearer prefix (stripping the prefix yields the
//     original string) or with an empty token: "Invalid authorization
//     header format"
//   - bad signature, wrong algorithm or expired token: "Invalid or
//     expired token"
//
// On success the decoded claims are returned verbatim as the Principal.
func Authenticate(header, secret string) (Principal, error) {
	if header == "" {
		return Principal{}, errs.NewUnauthorizedError("Authentication required", false)
	}

	token := stripBearer(header)
	if token == "" || token == header {
		return Principal{}, errs.NewUnauthorizedError("Invalid authorization header format", false)
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Principal{}, errs.NewUnauthorizedError("Invalid or expired token", false)
	}

	return Principal{
		ID:    claims.ID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, nil
}

// stripBearer removes a case-insensitive "Bearer " prefix plus any extra
// whitespace. When the header has no such prefix the input is returned
// unchanged, which Authenticate treats as a malformed header.
func stripBearer(header string) string {
	const prefix = "bearer "
	if len(header) >= len(prefix) && strings.EqualFold(header[:len(prefix)], prefix) {
		return strings.TrimSpace(header[len(prefix):])
	}
	return header
}
