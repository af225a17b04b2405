package user

import (
	"context"
	"sync"
)

// MemoryStore keeps users in a slice ordered by insertion.
// Ids come from a counter that only grows, so a deleted id is never issued again.
type MemoryStore struct {
	mu     sync.RWMutex
	users  []User
	lastID int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Insert(_ context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastID++
	u.ID = s.lastID
	s.users = append(s.users, u)
	return u, nil
}

func (s *MemoryStore) FindAll(_ context.Context) ([]User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *MemoryStore) FindByID(_ context.Context, id int) (User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.users[i], true, nil
	}
	return User{}, false, nil
}

func (s *MemoryStore) Update(_ context.Context, id int, u User) (User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return User{}, false, nil
	}
	u.ID = id
	s.users[i] = u
	return u, true, nil
}

func (s *MemoryStore) DeleteByID(_ context.Context, id int) (User, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return User{}, false, nil
	}
	removed := s.users[i]
	s.users = append(s.users[:i], s.users[i+1:]...)
	return removed, true, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

// indexOf expects the caller to hold s.mu.
func (s *MemoryStore) indexOf(id int) int {
	for i := range s.users {
		if s.users[i].ID == id {
			return i
		}
	}
	return -1
}
