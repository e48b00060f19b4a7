package indicator

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kerala-gov/migrant-health/internal/shared/errors"
	"github.com/kerala-gov/migrant-health/internal/shared/types"
)

// Store defines persistence for SDG indicators.
type Store interface {
	// Upsert writes the value for a name: insert when absent, overwrite
	// value and last-updated when present. Atomic with respect to the
	// existence check.
	Upsert(ctx context.Context, name string, value float64) (*Indicator, error)

	// List returns all indicators.
	List(ctx context.Context) ([]Indicator, error)
}

// Repository provides database operations for SDG indicators
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new indicator repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

// Upsert writes an indicator value keyed on name. The single statement
// keeps the check-and-write atomic under concurrent writers.
func (r *Repository) Upsert(ctx context.Context, name string, value float64) (*Indicator, error) {
	query := `
		INSERT INTO sdg_indicators (id, indicator_name, indicator_value, last_updated)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (indicator_name) DO UPDATE SET
			indicator_value = EXCLUDED.indicator_value,
			last_updated = NOW()
		RETURNING id, indicator_name, indicator_value, last_updated`

	ind := &Indicator{}
	err := r.pool.QueryRow(ctx, query, types.NewID(), name, value).Scan(
		&ind.ID, &ind.Name, &ind.Value, &ind.LastUpdated,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert indicator")
	}

	return ind, nil
}

// List returns all indicators
func (r *Repository) List(ctx context.Context) ([]Indicator, error) {
	query := `
		SELECT id, indicator_name, indicator_value, last_updated
		FROM sdg_indicators
		ORDER BY indicator_name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list indicators")
	}
	defer rows.Close()

	var indicators []Indicator
	for rows.Next() {
		var ind Indicator
		if err := rows.Scan(&ind.ID, &ind.Name, &ind.Value, &ind.LastUpdated); err != nil {
			return nil, errors.Wrap(err, "failed to scan indicator")
		}
		indicators = append(indicators, ind)
	}

	return indicators, nil
}
