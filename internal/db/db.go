package db

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrations embed.FS

// Driver names as registered with database/sql.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"
)

// Open connects to the database and verifies the connection.
func Open(ctx context.Context, driver, dsn string) (*sqlx.DB, error) {
	conn, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	switch driver {
	case DriverSQLite:
		// a single writer keeps SQLite from returning SQLITE_BUSY under load
		conn.SetMaxOpenConns(1)
		for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
			if _, err := conn.ExecContext(ctx, pragma); err != nil {
				conn.Close()
				return nil, fmt.Errorf("%s: %w", pragma, err)
			}
		}
	case DriverPostgres:
		conn.SetMaxOpenConns(25)
		conn.SetMaxIdleConns(10)
		conn.SetConnMaxLifetime(30 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 8*time.Second)
	defer cancel()
	if err := conn.PingContext(pingCtx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s database: %w", driver, err)
	}

	slog.InfoContext(ctx, "database connected", "driver", driver)
	return conn, nil
}

// Migrate applies the embedded schema migrations for the connection's driver.
func Migrate(ctx context.Context, conn *sqlx.DB) error {
	dir, err := prepare(conn)
	if err != nil {
		return err
	}
	if err := goose.UpContext(ctx, conn.DB, dir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

// Rollback reverts the most recently applied migration.
func Rollback(ctx context.Context, conn *sqlx.DB) error {
	dir, err := prepare(conn)
	if err != nil {
		return err
	}
	if err := goose.DownContext(ctx, conn.DB, dir); err != nil {
		return fmt.Errorf("rollback migration: %w", err)
	}
	return nil
}

// Version reports the current schema version.
func Version(ctx context.Context, conn *sqlx.DB) (int64, error) {
	if _, err := prepare(conn); err != nil {
		return 0, err
	}
	v, err := goose.GetDBVersionContext(ctx, conn.DB)
	if err != nil {
		return 0, fmt.Errorf("schema version: %w", err)
	}
	return v, nil
}

func prepare(conn *sqlx.DB) (string, error) {
	var dialect, dir string
	switch conn.DriverName() {
	case DriverPostgres:
		dialect, dir = "pgx", "migrations/postgres"
	case DriverSQLite:
		dialect, dir = "sqlite3", "migrations/sqlite"
	default:
		return "", fmt.Errorf("no migrations for driver %q", conn.DriverName())
	}

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return "", fmt.Errorf("set goose dialect: %w", err)
	}
	return dir, nil
}

// PostgresDSN builds a connection URL from discrete settings.
func PostgresDSN(user, password, host, port, name string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s", user, password, host, port, name)
}
