package indicator

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/kerala-gov/migrant-health/internal/shared/types"
)

// MemoryStore keeps indicators in memory. The mutex is held across the
// existence check and the write, so concurrent upserts on the same name
// cannot produce duplicate rows.
type MemoryStore struct {
	mu         sync.RWMutex
	indicators map[string]Indicator
}

// NewMemoryStore constructs an empty in-memory indicator store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{indicators: make(map[string]Indicator)}
}

var _ Store = (*MemoryStore)(nil)

// Upsert writes an indicator value keyed on name
func (s *MemoryStore) Upsert(_ context.Context, name string, value float64) (*Indicator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ind, exists := s.indicators[name]
	if !exists {
		ind = Indicator{ID: types.NewID(), Name: name}
	}
	ind.Value = value
	ind.LastUpdated = time.Now().UTC()

	s.indicators[name] = ind
	return &ind, nil
}

// List returns all indicators ordered by name
func (s *MemoryStore) List(_ context.Context) ([]Indicator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Indicator
	for _, ind := range s.indicators {
		out = append(out, ind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}
