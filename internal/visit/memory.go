package visit

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps health records in memory. It backs tests and the
// database-less development mode.
type MemoryStore struct {
	mu      sync.RWMutex
	records []HealthRecord
}

// NewMemoryStore constructs an empty in-memory health record store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

var _ Store = (*MemoryStore)(nil)

// Add appends a new record; duplicates are allowed
func (s *MemoryStore) Add(_ context.Context, rec *HealthRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = append(s.records, *rec)
	return nil
}

// ListForMigrant returns records for a migrant, visit date descending.
// The sort is stable so same-date records keep insertion order.
func (s *MemoryStore) ListForMigrant(_ context.Context, migrantID string) ([]HealthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []HealthRecord
	for _, rec := range s.records {
		if rec.MigrantID == migrantID {
			out = append(out, rec)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VisitDate > out[j].VisitDate
	})

	return out, nil
}

// ListAll returns every record
func (s *MemoryStore) ListAll(_ context.Context) ([]HealthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.records) == 0 {
		return nil, nil
	}
	out := make([]HealthRecord, len(s.records))
	copy(out, s.records)
	return out, nil
}
