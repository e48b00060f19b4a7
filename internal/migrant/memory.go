package migrant

import (
	"context"
	"sync"

	"github.com/kerala-gov/migrant-health/internal/shared/errors"
)

// MemoryStore keeps migrant profiles in memory. It backs tests and the
// database-less development mode.
type MemoryStore struct {
	mu       sync.RWMutex
	migrants []Migrant
	byID     map[string]int
}

// NewMemoryStore constructs an empty in-memory migrant store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[string]int)}
}

var _ Store = (*MemoryStore)(nil)

// Create inserts a new profile, enforcing migrant health ID uniqueness
func (s *MemoryStore) Create(_ context.Context, m *Migrant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[m.MigrantID]; exists {
		return errors.Conflict("migrant with this health ID already exists")
	}

	s.migrants = append(s.migrants, *m)
	s.byID[m.MigrantID] = len(s.migrants) - 1
	return nil
}

// List returns all profiles in registration order
func (s *MemoryStore) List(_ context.Context) ([]Migrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.migrants) == 0 {
		return nil, nil
	}
	out := make([]Migrant, len(s.migrants))
	copy(out, s.migrants)
	return out, nil
}

// GetByMigrantID retrieves a profile by exact migrant health ID
func (s *MemoryStore) GetByMigrantID(_ context.Context, migrantID string) (*Migrant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[migrantID]
	if !ok {
		return nil, errors.NotFound("migrant", migrantID)
	}
	m := s.migrants[idx]
	return &m, nil
}
