package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// User is a row in the users table. Password holds the bcrypt hash, never
// the plaintext.
type User struct {
	ID       int
	Name     string
	Email    string
	Password string
	Role     string
}

// UsersRepository persists and fetches user accounts.
type UsersRepository struct {
	pool *pgxpool.Pool
}

func NewUsersRepository(pool *pgxpool.Pool) *UsersRepository {
	return &UsersRepository{pool: pool}
}

// Create inserts a new user and returns its generated id. A duplicate
// email surfaces as a pgconn unique-violation error for the caller to map.
func (r *UsersRepository) Create(ctx context.Context, name, email, hashedPassword, role string) (int, error) {
	var id int
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, password, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING user_id`,
		name, email, hashedPassword, role,
	).Scan(&id)
	return id, err
}

// GetByEmail fetches a user by (normalized) email. Returns pgx.ErrNoRows
// when no account exists.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx,
		`SELECT user_id, name, email, password, role
		 FROM users
		 WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetNameByID returns the display name for a user id, or pgx.ErrNoRows.
func (r *UsersRepository) GetNameByID(ctx context.Context, id int) (string, error) {
	var name string
	err := r.pool.QueryRow(ctx,
		`SELECT name FROM users WHERE user_id = $1`,
		id,
	).Scan(&name)
	return name, err
}
