package service

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/hacktrack/hacktrack/internal/auth"
	"github.com/hacktrack/hacktrack/internal/errs"
	"github.com/hacktrack/hacktrack/internal/lib/job"
	"github.com/hacktrack/hacktrack/internal/lib/utils"
	"github.com/hacktrack/hacktrack/internal/repository"
	"github.com/hacktrack/hacktrack/internal/server"
)

const bcryptCost = 10

// AuthService implements account registration and credential verification.
type AuthService struct {
	server *server.Server
	users  *repository.UsersRepository
}

func NewAuthService(s *server.Server, users *repository.UsersRepository) *AuthService {
	return &AuthService{
		server: s,
		users:  users,
	}
}

// SignupResult is the response body for a successful registration.
type SignupResult struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	ID    int    `json:"id"`
	Role  string `json:"role"`
}

// SigninResult is the response body for a successful login.
type SigninResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	ID    int    `json:"id"`
}

// Signup registers a new account: normalizes the email, rejects duplicates
// with 409, stores a bcrypt hash of the password, and returns a signed
// token for the fresh account. A welcome email is enqueued best-effort.
func (s *AuthService) Signup(ctx context.Context, name, email, password string) (*SignupResult, error) {
	normalizedEmail := utils.NormalizeEmail(email)

	// Explicit duplicate check for the common case; the unique index on
	// email still backstops the race between check and insert.
	if _, err := s.users.GetByEmail(ctx, normalizedEmail); err == nil {
		return nil, errs.NewConflictError("Email already exists", true, nil)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	role := string(auth.RoleUser)

	id, err := s.users.Create(ctx, name, normalizedEmail, string(hash), role)
	if err != nil {
		return nil, err
	}

	token, err := auth.Sign(auth.Principal{
		ID:    id,
		Email: normalizedEmail,
		Name:  name,
		Role:  auth.RoleUser,
	}, s.server.Config.Auth.SecretKey, s.server.Config.Auth.TokenLifetime())
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token")
	}

	s.enqueueWelcomeEmail(normalizedEmail, name)

	return &SignupResult{
		Token: token,
		Name:  name,
		ID:    id,
		Role:  role,
	}, nil
}

// Signin verifies credentials against the stored bcrypt hash. Unknown
// email and wrong password are indistinguishable to the caller: both are
// 401 "Invalid credentials".
func (s *AuthService) Signin(ctx context.Context, email, password string) (*SigninResult, error) {
	user, err := s.users.GetByEmail(ctx, utils.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errs.NewUnauthorizedError("Invalid credentials", true)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, errs.NewUnauthorizedError("Invalid credentials", true)
	}

	token, err := auth.Sign(auth.Principal{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  auth.Role(user.Role),
	}, s.server.Config.Auth.SecretKey, s.server.Config.Auth.TokenLifetime())
	if err != nil {
		return nil, errors.Wrap(err, "failed to sign token")
	}

	return &SigninResult{
		Token: token,
		Role:  user.Role,
		ID:    user.ID,
	}, nil
}

// enqueueWelcomeEmail hands the welcome email to the background queue.
// Delivery is best-effort: a queue failure is logged, never surfaced to
// the signup response.
func (s *AuthService) enqueueWelcomeEmail(email, name string) {
	task, err := job.NewWelcomeEmailTask(email, name)
	if err != nil {
		s.server.Logger.Warn().Err(err).Str("email", email).Msg("failed to build welcome email task")
		return
	}

	if _, err := s.server.Job.Client.Enqueue(task); err != nil {
		s.server.Logger.Warn().Err(err).Str("email", email).Msg("failed to enqueue welcome email")
	}
}
