package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory Store implementation used in tests and local
// experiments. It enforces the same uniqueness semantics as the Postgres store.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[uuid.UUID]User
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[uuid.UUID]User)}
}

func (s *MemoryStore) conflictLocked(id uuid.UUID, username, email string) error {
	for _, u := range s.users {
		if u.ID == id {
			continue
		}
		if u.Username == username {
			return ErrUsernameTaken
		}
		if u.Email == email {
			return ErrEmailTaken
		}
	}
	return nil
}

func (s *MemoryStore) Create(ctx context.Context, params CreateParams) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.conflictLocked(uuid.Nil, params.Username, params.Email); err != nil {
		return User{}, err
	}

	now := time.Now()
	u := User{
		ID:           uuid.New(),
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: params.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *MemoryStore) GetByIdentifier(ctx context.Context, identifier string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == identifier || u.Email == identifier {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *MemoryStore) GetByID(ctx context.Context, id uuid.UUID) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemoryStore) UpdateProfile(ctx context.Context, params UpdateProfileParams) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[params.ID]
	if !ok {
		return User{}, ErrNotFound
	}

	if err := s.conflictLocked(params.ID, params.Username, params.Email); err != nil {
		return User{}, err
	}

	u.Username = params.Username
	u.Email = params.Email
	if params.AvatarFile != nil {
		u.AvatarFile = *params.AvatarFile
	}
	u.UpdatedAt = time.Now()
	s.users[params.ID] = u
	return u, nil
}
