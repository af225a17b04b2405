package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Service is the CRUD surface over a Store. Absence is passed through
// untouched so the HTTP layer decides how to report it.
type Service struct {
	store  Store
	logger *slog.Logger
}

func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger.With("component", "user_service")}
}

func (s *Service) FindAll(ctx context.Context) ([]User, error) {
	return s.store.FindAll(ctx)
}

func (s *Service) FindOne(ctx context.Context, id int) (User, bool, error) {
	return s.store.FindByID(ctx, id)
}

// Create stores u and returns it with its assigned id. Any id on input is ignored.
func (s *Service) Create(ctx context.Context, u User) (User, error) {
	u.ID = 0
	saved, err := s.store.Insert(ctx, u)
	if err != nil {
		return User{}, err
	}
	s.logger.InfoContext(ctx, "user created", "id", saved.ID)
	return saved, nil
}

func (s *Service) Update(ctx context.Context, id int, u User) (User, bool, error) {
	updated, found, err := s.store.Update(ctx, id, u)
	if err == nil && found {
		s.logger.InfoContext(ctx, "user updated", "id", id)
	}
	return updated, found, err
}

func (s *Service) DeleteByID(ctx context.Context, id int) (User, bool, error) {
	removed, found, err := s.store.DeleteByID(ctx, id)
	if err == nil && found {
		s.logger.InfoContext(ctx, "user deleted", "id", id)
	}
	return removed, found, err
}

// Ready reports whether the backing store is reachable.
func (s *Service) Ready(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Seed inserts users only when the store is empty.
func (s *Service) Seed(ctx context.Context, users ...User) error {
	existing, err := s.store.FindAll(ctx)
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	for _, u := range users {
		if _, err := s.Create(ctx, u); err != nil {
			return fmt.Errorf("seed user %q: %w", u.Name, err)
		}
	}
	s.logger.InfoContext(ctx, "users seeded", "count", len(users))
	return nil
}

// DefaultUsers returns the starter records loaded when seeding is enabled.
func DefaultUsers(now time.Time) []User {
	return []User{
		{Name: "Kenneth", JoinDate: now, Password: "pass1", SSN: "701010-1111111"},
		{Name: "Alice", JoinDate: now, Password: "pass2", SSN: "801010-2222222"},
		{Name: "Elena", JoinDate: now, Password: "pass3", SSN: "901010-1111111"},
	}
}
