package user

import "context"

// Store holds the authoritative set of users.
//
// A missing id is reported through the boolean result, never as an error.
// Errors are reserved for backend failures.
type Store interface {
	Insert(ctx context.Context, u User) (User, error)
	FindAll(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id int) (User, bool, error)
	Update(ctx context.Context, id int, u User) (User, bool, error)
	DeleteByID(ctx context.Context, id int) (User, bool, error)
	Ping(ctx context.Context) error
}
