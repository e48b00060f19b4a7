package visit

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kerala-gov/migrant-health/internal/shared/errors"
)

// Store defines persistence for health records. Records are append-only:
// no update, no delete, duplicates allowed.
type Store interface {
	// Add inserts a new record. The migrant ID is not verified to exist.
	Add(ctx context.Context, rec *HealthRecord) error

	// ListForMigrant returns all records for a migrant health ID, ordered
	// by visit date descending.
	ListForMigrant(ctx context.Context, migrantID string) ([]HealthRecord, error)

	// ListAll returns every record, unordered.
	ListAll(ctx context.Context) ([]HealthRecord, error)
}

// Repository provides database operations for health records
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new health record repository
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

var _ Store = (*Repository)(nil)

// Add inserts a new health record
func (r *Repository) Add(ctx context.Context, rec *HealthRecord) error {
	query := `
		INSERT INTO health_records (
			id, migrant_id, visit_date, facility, complaints,
			diagnosis, treatment, follow_up_date, doctor_name, sdg_tag, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.pool.Exec(ctx, query,
		rec.ID, rec.MigrantID, rec.VisitDate, rec.Facility, rec.Complaints,
		rec.Diagnosis, rec.Treatment, rec.FollowUpDate, rec.DoctorName, rec.SDGTag, rec.CreatedAt,
	)

	if err != nil {
		return errors.Wrap(err, "failed to add health record")
	}

	return nil
}

// ListForMigrant returns records for a migrant, newest visit first
func (r *Repository) ListForMigrant(ctx context.Context, migrantID string) ([]HealthRecord, error) {
	query := `
		SELECT id, migrant_id, visit_date, facility, complaints,
			diagnosis, treatment, follow_up_date, doctor_name, sdg_tag, created_at
		FROM health_records
		WHERE migrant_id = $1
		ORDER BY visit_date DESC`

	rows, err := r.pool.Query(ctx, query, migrantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list health records")
	}
	defer rows.Close()

	var records []HealthRecord
	for rows.Next() {
		var rec HealthRecord
		err := rows.Scan(
			&rec.ID, &rec.MigrantID, &rec.VisitDate, &rec.Facility, &rec.Complaints,
			&rec.Diagnosis, &rec.Treatment, &rec.FollowUpDate, &rec.DoctorName, &rec.SDGTag, &rec.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan health record")
		}
		records = append(records, rec)
	}

	return records, nil
}

// ListAll returns every health record
func (r *Repository) ListAll(ctx context.Context) ([]HealthRecord, error) {
	query := `
		SELECT id, migrant_id, visit_date, facility, complaints,
			diagnosis, treatment, follow_up_date, doctor_name, sdg_tag, created_at
		FROM health_records`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list health records")
	}
	defer rows.Close()

	var records []HealthRecord
	for rows.Next() {
		var rec HealthRecord
		err := rows.Scan(
			&rec.ID, &rec.MigrantID, &rec.VisitDate, &rec.Facility, &rec.Complaints,
			&rec.Diagnosis, &rec.Treatment, &rec.FollowUpDate, &rec.DoctorName, &rec.SDGTag, &rec.CreatedAt,
		)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan health record")
		}
		records = append(records, rec)
	}

	return records, nil
}
