package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLStore keeps users in the users table. Queries are written with '?'
// placeholders and rebound for the driver, so the same store serves
// Postgres and SQLite.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Insert(ctx context.Context, u User) (User, error) {
	query := s.db.Rebind(
		`INSERT INTO users (name, join_date, password, ssn)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`)

	if err := s.db.QueryRowxContext(ctx, query, u.Name, u.JoinDate, u.Password, u.SSN).Scan(&u.ID); err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *SQLStore) FindAll(ctx context.Context) ([]User, error) {
	users := []User{}
	if err := s.db.SelectContext(ctx, &users,
		`SELECT id, name, join_date, password, ssn FROM users ORDER BY id`); err != nil {
		return nil, fmt.Errorf("select users: %w", err)
	}
	return users, nil
}

func (s *SQLStore) FindByID(ctx context.Context, id int) (User, bool, error) {
	return s.get(ctx, s.db, id)
}

func (s *SQLStore) Update(ctx context.Context, id int, u User) (User, bool, error) {
	query := s.db.Rebind(
		`UPDATE users
		 SET name = ?, join_date = ?, password = ?, ssn = ?
		 WHERE id = ?`)

	res, err := s.db.ExecContext(ctx, query, u.Name, u.JoinDate, u.Password, u.SSN, id)
	if err != nil {
		return User{}, false, fmt.Errorf("update user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return User{}, false, fmt.Errorf("update user %d: %w", id, err)
	}
	if n == 0 {
		return User{}, false, nil
	}
	u.ID = id
	return u, true, nil
}

func (s *SQLStore) DeleteByID(ctx context.Context, id int) (removed User, found bool, err error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return User{}, false, fmt.Errorf("begin delete user %d: %w", id, err)
	}
	defer func() {
		if err != nil || !found {
			_ = tx.Rollback()
		}
	}()

	removed, found, err = s.get(ctx, tx, id)
	if err != nil || !found {
		return User{}, found, err
	}

	res, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM users WHERE id = ?`), id)
	if err != nil {
		return User{}, false, fmt.Errorf("delete user %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return User{}, false, fmt.Errorf("delete user %d: %w", id, err)
	}
	if n == 0 {
		// removed concurrently between the read and the delete
		return User{}, false, nil
	}

	if err = tx.Commit(); err != nil {
		return User{}, false, fmt.Errorf("commit delete user %d: %w", id, err)
	}
	return removed, true, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) get(ctx context.Context, q sqlx.QueryerContext, id int) (User, bool, error) {
	var u User
	err := sqlx.GetContext(ctx, q, &u, s.db.Rebind(
		`SELECT id, name, join_date, password, ssn FROM users WHERE id = ?`), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, false, nil
		}
		return User{}, false, fmt.Errorf("select user %d: %w", id, err)
	}
	return u, true, nil
}
