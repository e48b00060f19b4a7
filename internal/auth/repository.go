package auth

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kerala-gov/migrant-health/internal/shared/errors"
	"github.com/kerala-gov/migrant-health/internal/shared/types"
)

// Store defines persistence for operator accounts.
type Store interface {
	// FindByCredentials returns the user matching username and password
	// exactly (plaintext equality, demo login), or an unauthorized error.
	FindByCredentials(ctx context.Context, username, password string) (*User, error)

	// EnsureDefaultAdmin seeds the default operator account if absent.
	EnsureDefaultAdmin(ctx context.Context) error
}

// Repository provides database operations for operator accounts
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new user repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

// FindByCredentials looks up a user by exact username/password match
func (r *Repository) FindByCredentials(ctx context.Context, username, password string) (*User, error) {
	query := `
		SELECT id, username, role, created_at
		FROM users
		WHERE username = $1 AND password = $2`

	u := &User{}
	err := r.pool.QueryRow(ctx, query, username, password).Scan(
		&u.ID, &u.Username, &u.Role, &u.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, errors.Unauthorized("invalid credentials")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to look up user")
	}

	return u, nil
}

// EnsureDefaultAdmin seeds admin/admin if no such account exists
func (r *Repository) EnsureDefaultAdmin(ctx context.Context) error {
	query := `
		INSERT INTO users (id, username, password, role)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, types.NewID(), DefaultUsername, DefaultPassword, DefaultRole)
	if err != nil {
		return errors.Wrap(err, "failed to seed default user")
	}

	return nil
}
