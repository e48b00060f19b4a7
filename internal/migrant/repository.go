package migrant

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kerala-gov/migrant-health/internal/shared/errors"
)

// Store defines persistence for migrant worker profiles. Profiles are
// created once and never updated or deleted.
type Store interface {
	// Create inserts a new profile; fails with a conflict error when the
	// migrant health ID is already registered.
	Create(ctx context.Context, m *Migrant) error

	// List returns all profiles in registration order.
	List(ctx context.Context) ([]Migrant, error)

	// GetByMigrantID returns the profile with the exact (case-sensitive)
	// migrant health ID, or a not-found error.
	GetByMigrantID(ctx context.Context, migrantID string) (*Migrant, error)
}

// Repository provides database operations for migrant profiles
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new migrant repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

// Create inserts a new migrant profile
func (r *Repository) Create(ctx context.Context, m *Migrant) error {
	query := `
		INSERT INTO migrants (
			id, migrant_id, name, age, gender, state_origin,
			language_pref, phone, aadhaar, district, occupation, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		m.ID, m.MigrantID, m.Name, m.Age, m.Gender, m.StateOrigin,
		m.LanguagePref, m.Phone, m.Aadhaar, m.District, m.Occupation, m.CreatedAt,
	)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return errors.Conflict("migrant with this health ID already exists")
		}
		return errors.Wrap(err, "failed to create migrant")
	}

	return nil
}

// List returns all migrant profiles
func (r *Repository) List(ctx context.Context) ([]Migrant, error) {
	query := `
		SELECT id, migrant_id, name, age, gender, state_origin,
			language_pref, phone, aadhaar, district, occupation, created_at
		FROM migrants
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list migrants")
	}
	defer rows.Close()

	var migrants []Migrant
	for rows.Next() {
		var m Migrant
		err := rows.Scan(
			&m.ID, &m.MigrantID, &m.Name, &m.Age, &m.Gender, &m.StateOrigin,
			&m.LanguagePref, &m.Phone, &m.Aadhaar, &m.District, &m.Occupation, &m.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan migrant")
		}
		migrants = append(migrants, m)
	}

	return migrants, nil
}

// GetByMigrantID retrieves a profile by its migrant health ID
func (r *Repository) GetByMigrantID(ctx context.Context, migrantID string) (*Migrant, error) {
	query := `
		SELECT id, migrant_id, name, age, gender, state_origin,
			language_pref, phone, aadhaar, district, occupation, created_at
		FROM migrants
		WHERE migrant_id = $1`

	m := &Migrant{}
	err := r.pool.QueryRow(ctx, query, migrantID).Scan(
		&m.ID, &m.MigrantID, &m.Name, &m.Age, &m.Gender, &m.StateOrigin,
		&m.LanguagePref, &m.Phone, &m.Aadhaar, &m.District, &m.Occupation, &m.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, errors.NotFound("migrant", migrantID)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get migrant")
	}

	return m, nil
}
