package auth

import (
	"context"
	"sync"
	"time"

	"github.com/kerala-gov/migrant-health/internal/shared/errors"
	"github.com/kerala-gov/migrant-health/internal/shared/types"
)

type memoryUser struct {
	user     User
	password string
}

// MemoryStore keeps operator accounts in memory. It backs tests and the
// database-less development mode.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]memoryUser
}

// NewMemoryStore constructs an empty in-memory user store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]memoryUser)}
}

var _ Store = (*MemoryStore)(nil)

// FindByCredentials looks up a user by exact username/password match
func (s *MemoryStore) FindByCredentials(_ context.Context, username, password string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.users[username]
	if !ok || entry.password != password {
		return nil, errors.Unauthorized("invalid credentials")
	}

	u := entry.user
	return &u, nil
}

// EnsureDefaultAdmin seeds admin/admin if no such account exists
func (s *MemoryStore) EnsureDefaultAdmin(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[DefaultUsername]; ok {
		return nil
	}

	s.users[DefaultUsername] = memoryUser{
		user: User{
			ID:        types.NewID(),
			Username:  DefaultUsername,
			Role:      DefaultRole,
			CreatedAt: time.Now().UTC(),
		},
		password: DefaultPassword,
	}
	return nil
}
